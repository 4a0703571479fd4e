package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cardver/internal/infrastructure/config"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of cardver.toml",
	Long:  `Print the JSON schema of the configuration file, for editor completion and validation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if schemaOutput != "" {
			if err := config.WriteSchemaFile(schemaOutput); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Generated JSON schema: %s\n", schemaOutput)
			return err
		}

		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write the schema to a file instead of stdout")
}
