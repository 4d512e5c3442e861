package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentledger/reconciler/config"
	"github.com/rentledger/reconciler/internal/application/usecase/export"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a ledger-import CSV from the loaded mortgage statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(config.Load())
			if err != nil {
				return err
			}
			defer a.close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			uc := export.NewUseCase(a.properties, a.mortgages)
			count, err := uc.Execute(cmd.Context(), w)
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", count, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the CSV to a file instead of stdout")
	return cmd
}
