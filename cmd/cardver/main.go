// Command cardver checks that a dashboard card's manifest, embedded and
// registered versions agree.
package main

import (
	"runtime"

	"github.com/bnema/cardver/internal/cli/cmd"
	"github.com/bnema/cardver/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
