package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/minedata/minesource/internal"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the base command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minesource [connection-uri]",
		Short: "Explore data warehouses, databases, and CSV trees as uniform tables",
		Long:  "Explore data warehouses, databases, and CSV trees as uniform tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cmd.Flags().GetString("token")
			if err != nil {
				return err
			}

			table, err := cmd.Flags().GetString("table")
			if err != nil {
				return err
			}

			columns, err := cmd.Flags().GetStringSlice("columns")
			if err != nil {
				return err
			}
			if len(columns) > 0 && table == "" {
				return fmt.Errorf("--columns requires --table")
			}

			schema, err := cmd.Flags().GetBool("schema")
			if err != nil {
				return err
			}

			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			newFormatter, found := internal.Formatters[format]
			if !found {
				return fmt.Errorf("Invalid format: %s. Valid formats are %s", format, strings.Join(internal.FormatNames(), ", "))
			}

			if len(args) == 0 {
				cmd.Help()
				os.Exit(1)
			}

			cmd.SilenceUsage = true
			return internal.Main(args[0], token, table, columns, schema, newFormatter(os.Stdout))
		},
	}

	cmd.Flags().String("token", "", "Access token for warehouse services")
	cmd.Flags().String("table", "", "Table to load")
	cmd.Flags().StringSlice("columns", nil, "Columns to show distinct values for")
	cmd.Flags().Bool("schema", false, "Show column dtypes instead of data")
	cmd.Flags().String("format", "text", "Output format")

	return cmd
}

// Execute is called by main.main(). It only needs to happen once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
