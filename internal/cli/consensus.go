package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/charleschow/loteca-pipeline/internal/adapters/csvfile"
	"github.com/charleschow/loteca-pipeline/internal/core/odds"
	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

const consensusFile = "odds_consensus.csv"

var defaultSources = []string{"theoddsapi", "apifootball"}

func roundDir(dataDir, rodada string) string {
	return filepath.Join(dataDir, rodada)
}

func (a *app) consensusCommand() *cobra.Command {
	var (
		rodada, dataDir, out, aliases string
		sources                       []string
	)
	cmd := &cobra.Command{
		Use:   "consensus",
		Short: "Average provider odds into odds_consensus.csv",
		Long: `Merge per-provider odds files into a consensus table.

Each source S is read from <data-dir>/<rodada>/odds_S.csv. Team names are
canonicalized, rows are joined on the match key, and each outcome is the mean
of the valid prices (> 1.0). Rows with fewer than two valid outcomes are
dropped.

Exit codes: 0 ok, 1 no provider file or no valid row.

Examples:
  loteca consensus --rodada 2025-R10
  loteca consensus --rodada 2025-R10 --sources theoddsapi`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rodada == "" && out == "" {
				return errors.New("--rodada or --out is required")
			}
			dir := roundDir(dataDir, rodada)
			if out == "" {
				out = filepath.Join(dir, consensusFile)
			}
			canon, err := a.canonicalizer(aliases)
			if err != nil {
				return err
			}
			stats, err := runConsensus(cmd.Context(), canon, dir, sources, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[consensus] OK %s  matches=%d kept=%d dropped=%d duplicates=%d\n",
				out, stats.Matches, stats.Kept, stats.Dropped, stats.Duplicates)
			return nil
		},
	}
	cmd.Flags().StringVar(&rodada, "rodada", "", "Round identifier (directory under --data-dir)")
	cmd.Flags().StringVar(&dataDir, "data-dir", a.cfg.DataDir, "Pipeline output root")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV (default <data-dir>/<rodada>/odds_consensus.csv)")
	cmd.Flags().StringVar(&aliases, "aliases", a.cfg.AliasesPath, "Alias file (YAML or CSV); built-in data when empty")
	cmd.Flags().StringSliceVar(&sources, "sources", defaultSources, "Provider names to merge")
	return cmd
}

// loadProviderQuotes reads every odds_<source>.csv in dir concurrently.
// Missing files are skipped; the result keeps source order.
func loadProviderQuotes(ctx context.Context, dir string, sources []string) ([]odds.Quote, int, error) {
	perSource := make([][]odds.Quote, len(sources))
	found := make([]bool, len(sources))

	g, _ := errgroup.WithContext(ctx)
	for i, src := range sources {
		src = strings.TrimSpace(src)
		path := filepath.Join(dir, "odds_"+src+".csv")
		g.Go(func() error {
			quotes, err := csvfile.ReadQuotes(path, src)
			if errors.Is(err, os.ErrNotExist) {
				telemetry.Warnf("consensus: %s not found, skipping", path)
				return nil
			}
			if err != nil {
				return err
			}
			telemetry.Infof("consensus: %s rows=%d valid=%d", src, len(quotes), odds.CountValidRows(quotes))
			perSource[i] = quotes
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var all []odds.Quote
	providers := 0
	for i := range sources {
		if found[i] {
			providers++
			all = append(all, perSource[i]...)
		}
	}
	return all, providers, nil
}

func runConsensus(ctx context.Context, canon *teamname.Canonicalizer, dir string, sources []string, out string) (odds.ConsensusStats, error) {
	quotes, providers, err := loadProviderQuotes(ctx, dir, sources)
	if err != nil {
		return odds.ConsensusStats{}, err
	}
	if providers == 0 {
		return odds.ConsensusStats{}, exitWith(1, "no provider odds file found in %s (%s)", dir, strings.Join(sources, ", "))
	}

	rows, stats := odds.BuildConsensus(quotes, canon)
	telemetry.Metrics.ConsensusRows.Add(float64(stats.Kept))
	telemetry.Metrics.ConsensusDropped.Add(float64(stats.Dropped))
	if len(rows) == 0 {
		return stats, &ExitError{Code: 1, Err: fmt.Errorf("%s: %w", dir, odds.ErrNoValidRows)}
	}
	if err := csvfile.WriteConsensus(out, rows); err != nil {
		return stats, err
	}
	return stats, nil
}
