package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rentledger/reconciler/config"
	"github.com/rentledger/reconciler/internal/application/usecase/reconcile"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
	"github.com/rentledger/reconciler/internal/integration/ingest"
)

func newReconcileCommand() *cobra.Command {
	var (
		year        int
		clearManual bool
		skipLoad    bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reload the source exports and run the matching engine",
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

			ctx := cmd.Context()
			sources, err := a.sources(ctx, skipLoad)
			if err != nil {
				return err
			}

			engine := reconcile.NewEngine(
				a.properties, a.ledger, a.manager, a.reports,
				a.mortgages, a.rentPlatform, a.matches,
				valueobject.DefaultMatchingConfig(),
			)
			out, err := engine.Execute(ctx, reconcile.RunInput{
				Year:                   cfg.Reconcile.Year,
				ClearManual:            clearManual,
				Sources:                sources,
				RentPlatformPayeeToken: cfg.Reconcile.RentPlatformPayeeToken,
			})
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), out.Summary)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year to reconcile (0 = all years)")
	cmd.Flags().BoolVar(&clearManual, "clear-manual", false, "also clear manually recorded matches")
	cmd.Flags().BoolVar(&skipLoad, "skip-load", false, "run against already-loaded data without re-reading the input files")
	return cmd
}

// sources loads the input files unless told to reuse loaded data, in which
// case only the source declarations are read.
func (a *app) sources(ctx context.Context, skipLoad bool) ([]valueobject.ReportSourceConfig, error) {
	if !skipLoad {
		return a.loadAll(ctx)
	}
	specs, err := ingest.LoadSources(a.cfg.Input.SourcesFile)
	if err != nil {
		return nil, err
	}
	configs := make([]valueobject.ReportSourceConfig, 0, len(specs))
	for _, spec := range specs {
		configs = append(configs, spec.Config())
	}
	return configs, nil
}

func printSummary(w io.Writer, summary valueobject.RunSummary) {
	fmt.Fprintf(w, "Reconciliation complete: %d matches", summary.TotalMatches)
	if summary.ManualPreserved > 0 {
		fmt.Fprintf(w, " (%d manual preserved)", summary.ManualPreserved)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Mortgage components: %d/%d matched\n", summary.ComponentsMatched, summary.ComponentsExpected)
	for _, s := range summary.SourceStats {
		if s.Absent {
			fmt.Fprintf(w, "  %s: no data\n", s.Source)
			continue
		}
		fmt.Fprintf(w, "  %s: %d loaded, %d matched\n", s.Source, s.Loaded, s.Matched)
	}
	if len(summary.UnsplitPayments) > 0 {
		fmt.Fprintf(w, "Payments needing split: %d (see report)\n", len(summary.UnsplitPayments))
	}
	if len(summary.ComponentMismatches) > 0 {
		fmt.Fprintf(w, "Component amount mismatches: %d (see report)\n", len(summary.ComponentMismatches))
	}
}
