package styles

import (
	"fmt"
	"time"
)

const shortIDLen = 8

// StatusBadge renders the OK / FAILED badge.
func (t *Theme) StatusBadge(ok bool) string {
	if ok {
		return t.Badge.Render("OK")
	}
	return t.BadgeError.Render("FAILED")
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// ShortID returns the first characters of a run ID.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Now(), tm)
}

func relativeTime(now, tm time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return ago(int(diff.Minutes()), "m")
	case diff < 24*time.Hour:
		return ago(int(diff.Hours()), "h")
	case diff < 7*24*time.Hour:
		return ago(int(diff.Hours()/24), "d")
	case diff < 30*24*time.Hour:
		return ago(int(diff.Hours()/(24*7)), "w")
	case diff < 365*24*time.Hour:
		return ago(int(diff.Hours()/(24*30)), "mo")
	default:
		return ago(int(diff.Hours()/(24*365)), "y")
	}
}

func ago(n int, unit string) string {
	return fmt.Sprintf("%d%s ago", n, unit)
}
