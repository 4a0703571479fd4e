package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/cardver/internal/domain/entity"
)

// HistoryRenderer renders recorded check runs.
type HistoryRenderer struct {
	theme *Theme
}

// NewHistoryRenderer creates a history renderer.
func NewHistoryRenderer(theme *Theme) *HistoryRenderer {
	return &HistoryRenderer{theme: theme}
}

// HistoryHeaders are the column titles of the history table.
func HistoryHeaders() []string {
	return []string{"Run", "When", "Card", "Manifest", "Embedded", "Registration", "Status"}
}

// HistoryRow returns the plain cells of a run.
func HistoryRow(run *entity.CheckRun) []string {
	status := "OK"
	if !run.OK {
		status = fmt.Sprintf("FAILED (%d)", len(run.Problems))
	}
	return []string{
		ShortID(run.ID),
		RelativeTime(run.StartedAt),
		orDash(run.CardType),
		orDash(run.ManifestVersion),
		orDash(run.EmbeddedVersion),
		orDash(run.RegistrationVersion),
		status,
	}
}

// RenderTable renders runs as a table, newest first as given.
func (r *HistoryRenderer) RenderTable(runs []*entity.CheckRun) string {
	if len(runs) == 0 {
		return r.theme.Subtle.Render("No check runs recorded yet.")
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		cells := HistoryRow(run)
		last := len(cells) - 1
		if run.OK {
			cells[last] = r.theme.SuccessStyle.Render(cells[last])
		} else {
			cells[last] = r.theme.ErrorStyle.Render(cells[last])
		}
		rows = append(rows, cells)
	}

	header := r.theme.Highlight
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers(HistoryHeaders()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})

	return t.String()
}

// RenderRun renders a single run with its problems.
func (r *HistoryRenderer) RenderRun(run *entity.CheckRun) string {
	label := r.theme.Subtle.Width(sourceLabelWidth)
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center,
			r.theme.Title.Render(orDash(run.CardType)), " ", r.theme.StatusBadge(run.OK)),
		label.Render("run") + run.ID,
		label.Render("started") + run.StartedAt.Format("2006-01-02 15:04:05") +
			r.theme.Subtle.Render(" ("+RelativeTime(run.StartedAt)+")"),
		label.Render("duration") + run.Duration.String(),
		label.Render("manifest") + orDash(run.ManifestVersion) + r.theme.Subtle.Render("  "+run.ManifestPath),
		label.Render("embedded") + orDash(run.EmbeddedVersion) + r.theme.Subtle.Render("  "+run.ArtifactPath),
		label.Render("registration") + orDash(run.RegistrationVersion),
	}
	for _, p := range run.Problems {
		lines = append(lines, r.theme.ErrorStyle.Render(IconX+" "+p))
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
