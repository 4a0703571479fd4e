package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cardver/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), styles.NewVersionRenderer(styles.NewTheme()).Render(buildInfo))
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
