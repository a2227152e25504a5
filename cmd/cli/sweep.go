package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"bess-degradation/internal/analysis"
	"bess-degradation/internal/config"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/logging"

	"github.com/spf13/cobra"
)

func newSweepCmd(root *rootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "sweep <sweep.yaml>",
		Short: "Simulate several scenarios in parallel and rank them by lifetime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg, err := root.registry()
			if err != nil {
				return err
			}
			files, err := config.LoadSweep(args[0])
			if err != nil {
				return err
			}
			scenarios := make([]lifetime.Scenario, len(files))
			for i := range files {
				scenarios[i] = files[i].Scenario()
			}

			results, err := lifetime.Sweep(ctx, reg, scenarios, lifetime.WithLogger(logging.NopLogger{}))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Scenario.Name, res.Err)
					continue
				}
				if outDir != "" {
					if err := os.MkdirAll(outDir, 0o755); err != nil {
						return err
					}
					path := filepath.Join(outDir, fileName(res.Scenario.Name)+".csv")
					if err := lifetime.WriteRecordsCSV(path, res.Result.Records); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
				}
			}
			return printRanking(w, analysis.RankByLifespan(results))
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write one CSV per scenario into this directory")
	return cmd
}

func printRanking(w io.Writer, ranked []analysis.RankedLifespan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCENARIO\tMODE\tYEARS TO EOL\tFINAL SOH\tFADE %/YR")
	for _, r := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f%%\t%.2f\n", r.Rank, r.Name, r.Mode, r.YearsToEOL, r.FinalSOH*100, r.TrendFadeRate)
	}
	return tw.Flush()
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
