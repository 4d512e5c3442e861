package commands

import (
	"github.com/spf13/cobra"

	"github.com/rentledger/reconciler/config"
	"github.com/rentledger/reconciler/internal/application/usecase/manual"
)

func newManualCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Interactively mark unmatched ledger transactions as reconciled",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("year") {
				cfg.Reconcile.Year = year
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.close()

			uc := manual.NewUseCase(a.properties, a.ledger, a.matches)
			return uc.Execute(cmd.Context(), manual.Input{
				Year: cfg.Reconcile.Year,
				In:   cmd.InOrStdin(),
				Out:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year to work through (0 = all years)")
	return cmd
}
