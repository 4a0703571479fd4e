package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/cardver/internal/cli/model"
	"github.com/bnema/cardver/internal/cli/styles"
)

const defaultHistoryLimit = 20

var (
	historyLimit       int
	historyJSON        bool
	historyInteractive bool
	historyRunID       string
)

var errHistoryDisabled = errors.New("history is disabled; set history.enabled = true in cardver.toml")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded check runs",
	Long: `List recent check runs recorded in the history database, newest first.
Runs are recorded when history.enabled is true.`,
	Example: `  cardver history --limit 5
  cardver history --run 0f8fad5b-d9cb-469f-a165-70867728950e
  cardver history -i`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", defaultHistoryLimit, "maximum runs to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().BoolVarP(&historyInteractive, "interactive", "i", false, "browse runs interactively")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "show a single run by id")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if app.Runs == nil {
		return errHistoryDisabled
	}
	ctx := app.Ctx()
	renderer := styles.NewHistoryRenderer(app.Theme)
	w := cmd.OutOrStdout()

	if historyRunID != "" {
		run, err := app.Runs.FindByID(ctx, historyRunID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no check run with id %q", historyRunID)
		}
		if historyJSON {
			return encodeJSON(w, run)
		}
		_, err = fmt.Fprintln(w, renderer.RenderRun(run))
		return err
	}

	if historyInteractive {
		m := model.NewHistoryModel(ctx, app.Theme, app.Runs, historyLimit)
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}

	runs, err := app.Runs.GetRecent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return encodeJSON(w, runs)
	}
	_, err = fmt.Fprintln(w, renderer.RenderTable(runs))
	return err
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
