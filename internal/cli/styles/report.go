package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const sourceLabelWidth = 14

// CheckReport is the display model of one consistency check.
type CheckReport struct {
	OK       bool
	CardType string

	ManifestPath string
	ArtifactPath string

	Sources  []SourceLine
	Problems []ProblemLine

	RunID    string
	Duration time.Duration
}

// SourceLine is one version source and the value read from it.
type SourceLine struct {
	Source string
	Value  string
	// Read is false when the value could not be obtained.
	Read bool
	// Failing marks a value involved in at least one problem.
	Failing bool
}

// ProblemLine is one reported problem.
type ProblemLine struct {
	Kind    string
	Message string
}

// CheckRenderer renders consistency check reports.
type CheckRenderer struct {
	theme *Theme
}

// NewCheckRenderer creates a renderer with the given theme.
func NewCheckRenderer(theme *Theme) *CheckRenderer {
	return &CheckRenderer{theme: theme}
}

// Render renders the whole report.
func (r *CheckRenderer) Render(report CheckReport) string {
	parts := []string{
		r.renderHeader(report),
		r.renderSources(report),
	}
	if len(report.Problems) > 0 {
		parts = append(parts, r.renderProblems(report.Problems))
	}
	parts = append(parts, r.renderFooter(report))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r *CheckRenderer) renderHeader(report CheckReport) string {
	cardType := report.CardType
	if cardType == "" {
		cardType = "(unknown card)"
	}
	title := fmt.Sprintf("%s %s",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconPackage),
		r.theme.Title.Render(cardType),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", r.theme.StatusBadge(report.OK))
}

func (r *CheckRenderer) renderSources(report CheckReport) string {
	label := r.theme.Subtle.Width(sourceLabelWidth)
	lines := make([]string, 0, len(report.Sources)+2)

	for _, s := range report.Sources {
		icon := r.theme.SuccessStyle.Render(IconCheck)
		value := r.theme.Normal.Render(s.Value)
		switch {
		case !s.Read:
			icon = r.theme.ErrorStyle.Render(IconX)
			value = r.theme.Subtle.Render("(not read)")
		case s.Failing:
			icon = r.theme.ErrorStyle.Render(IconX)
			value = r.theme.ErrorStyle.Render(s.Value)
		}
		lines = append(lines, fmt.Sprintf("%s %s%s", icon, label.Render(s.Source), value))
	}

	lines = append(lines, "",
		r.theme.Subtle.Render("manifest "+report.ManifestPath),
		r.theme.Subtle.Render("artifact "+report.ArtifactPath),
	)

	return r.theme.Box.Render(strings.Join(lines, "\n"))
}

func (r *CheckRenderer) renderProblems(problems []ProblemLine) string {
	lines := make([]string, 0, len(problems)+1)
	lines = append(lines, r.theme.BoxHeader.Render(fmt.Sprintf("%s %d problem(s)",
		r.theme.WarningStyle.Render(IconWarning), len(problems))))
	for _, p := range problems {
		lines = append(lines, fmt.Sprintf("  %s %s",
			r.theme.ErrorStyle.Render(p.Kind+":"),
			r.theme.Normal.Render(p.Message),
		))
	}
	return strings.Join(lines, "\n")
}

func (r *CheckRenderer) renderFooter(report CheckReport) string {
	parts := []string{fmt.Sprintf("checked in %s", report.Duration.Round(time.Millisecond))}
	if report.RunID != "" {
		parts = append(parts, "run "+ShortID(report.RunID))
	}
	return r.theme.Subtle.Render(strings.Join(parts, " · "))
}
