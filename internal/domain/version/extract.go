package version

import (
	"fmt"
	"regexp"
	"sync"
)

// DefaultConstName is the constant cards declare their version in.
const DefaultConstName = "CARD_VERSION"

var (
	embeddedPatternsMu sync.Mutex
	embeddedPatterns   = map[string]*regexp.Regexp{}
)

// embeddedPattern returns the compiled pattern for `const <name> = "<value>"`.
// Either quote style is accepted but both ends must match.
func embeddedPattern(constName string) *regexp.Regexp {
	embeddedPatternsMu.Lock()
	defer embeddedPatternsMu.Unlock()

	if re, ok := embeddedPatterns[constName]; ok {
		return re
	}
	re := regexp.MustCompile(fmt.Sprintf(
		`\bconst\s+%s\s*=\s*(?:"([^"\r\n]*)"|'([^'\r\n]*)')`,
		regexp.QuoteMeta(constName),
	))
	embeddedPatterns[constName] = re
	return re
}

// ExtractEmbedded finds the first `const <constName> = "<value>"` declaration
// in source and returns the literal value. The boolean is false when no
// declaration is present.
func ExtractEmbedded(source, constName string) (string, bool) {
	if constName == "" {
		constName = DefaultConstName
	}

	m := embeddedPattern(constName).FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	if m[1] != "" || m[2] == "" {
		return m[1], true
	}
	return m[2], true
}
