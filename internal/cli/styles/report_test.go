package styles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/domain/build"
	"github.com/bnema/cardver/internal/domain/entity"
)

func TestCheckRenderer_Passing(t *testing.T) {
	r := styles.NewCheckRenderer(styles.NewTheme())

	out := r.Render(styles.CheckReport{
		OK:           true,
		CardType:     "demo-card",
		ManifestPath: "package.json",
		ArtifactPath: "dist/demo-card.js",
		Sources: []styles.SourceLine{
			{Source: "manifest", Value: "1.4.0", Read: true},
			{Source: "embedded", Value: "1.4.0", Read: true},
			{Source: "registration", Value: "1.4.0", Read: true},
		},
		RunID:    "0f8fad5b-d9cb-469f-a165-70867728950e",
		Duration: 123 * time.Millisecond,
	})

	assert.Contains(t, out, "demo-card")
	assert.Contains(t, out, "OK")
	assert.NotContains(t, out, "FAILED")
	assert.Contains(t, out, "dist/demo-card.js")
	assert.Contains(t, out, "run 0f8fad5b")
	assert.Contains(t, out, "123ms")
	assert.NotContains(t, out, "problem(s)")
}

func TestCheckRenderer_Failing(t *testing.T) {
	r := styles.NewCheckRenderer(styles.NewTheme())

	out := r.Render(styles.CheckReport{
		Sources: []styles.SourceLine{
			{Source: "manifest", Value: "1.4.0", Read: true},
			{Source: "embedded", Read: false},
			{Source: "registration", Value: "1.3.9", Read: true, Failing: true},
		},
		Problems: []styles.ProblemLine{
			{Kind: "PatternNotFound", Message: "CARD_VERSION not found"},
			{Kind: "VersionMismatch", Message: `registration version "1.3.9" does not match manifest version "1.4.0"`},
		},
	})

	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "(unknown card)")
	assert.Contains(t, out, "(not read)")
	assert.Contains(t, out, "2 problem(s)")
	assert.Contains(t, out, "PatternNotFound:")
	assert.Contains(t, out, "1.3.9")
}

func TestHistoryRenderer_RenderTable(t *testing.T) {
	r := styles.NewHistoryRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderTable(nil), "No check runs recorded yet.")

	out := r.RenderTable([]*entity.CheckRun{
		{ID: "abcdef0123456789", CardType: "demo-card", ManifestVersion: "1.4.0", OK: true, StartedAt: time.Now()},
		{ID: "fedcba9876543210", ManifestVersion: "1.4.0", Problems: []string{"x", "y"}, StartedAt: time.Now()},
	})

	assert.Contains(t, out, "Registration")
	assert.Contains(t, out, "abcdef01")
	assert.NotContains(t, out, "abcdef0123456789")
	assert.Contains(t, out, "FAILED (2)")
	assert.Contains(t, out, "just now")
}

func TestHistoryRenderer_RenderRun(t *testing.T) {
	r := styles.NewHistoryRenderer(styles.NewTheme())

	out := r.RenderRun(&entity.CheckRun{
		ID:           "abcdef0123456789",
		CardType:     "demo-card",
		ManifestPath: "package.json",
		Problems:     []string{`embedded version "1.3.9" does not match manifest version "1.4.0"`},
		StartedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local),
		Duration:     time.Second,
	})

	assert.Contains(t, out, "abcdef0123456789")
	assert.Contains(t, out, "2026-03-01 12:00:00")
	assert.Contains(t, out, "1.3.9")
	assert.Contains(t, out, "FAILED")
}

func TestVersionRenderer(t *testing.T) {
	out := styles.NewVersionRenderer(styles.NewTheme()).Render(build.Info{
		Version: "v0.3.0", Commit: "abc1234", BuildDate: "2026-03-01", GoVersion: "go1.25.3",
	})

	for _, want := range []string{"v0.3.0", "abc1234", "2026-03-01", "go1.25.3", build.RepoURL()} {
		assert.Contains(t, out, want)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", styles.ShortID("abc"))
	assert.Equal(t, "01234567", styles.ShortID("0123456789"))
}
