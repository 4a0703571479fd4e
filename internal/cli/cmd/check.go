package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/cardver/internal/application/usecase"
	"github.com/bnema/cardver/internal/cli"
	"github.com/bnema/cardver/internal/cli/styles"
)

// errCheckFailed is returned when a check found problems; the report has
// already been written.
var errCheckFailed = errors.New("version check failed")

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify manifest, embedded and registered versions agree",
	Long: `Read the manifest version, extract the embedded version constant from the
artifact, load the artifact to capture its self-registration, and fail unless
all three are the same MAJOR.MINOR.PATCH version other than the placeholder.

Every problem is reported, not only the first one.`,
	Example: `  cardver check
  cardver check --artifact 'dist/*.js' --card-type demo-card
  cardver check --json | jq .problems`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	addTargetFlags(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the report as JSON")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	input, err := cli.CheckInput(app.Config)
	if err != nil {
		return err
	}

	out, err := app.CheckUC.Execute(app.Ctx(), input)
	if out == nil {
		return err
	}
	if werr := writeCheck(cmd.OutOrStdout(), app.Theme, out, checkJSON); werr != nil {
		return werr
	}
	if !out.OK {
		return fmt.Errorf("%w: %d problem(s)", errCheckFailed, len(out.Problems))
	}
	return nil
}

func writeCheck(w io.Writer, theme *styles.Theme, out *usecase.CheckVersionConsistencyOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cli.NewReport(out))
	}
	_, err := fmt.Fprintln(w, styles.NewCheckRenderer(theme).Render(cli.NewCheckReport(out)))
	return err
}
