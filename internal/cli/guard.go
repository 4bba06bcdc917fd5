package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/adapters/csvfile"
	"github.com/charleschow/loteca-pipeline/internal/core/odds"
)

const exitGuardFailed = 10

func (a *app) guardCommand() *cobra.Command {
	var (
		rodada, dataDir, file string
		require, debug        bool
	)
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Check that odds_consensus.csv carries real odds",
		Long: `Count consensus rows with at least two valid odds (> 1.0).

Price columns may be named odds_*, 1/x/2, home/draw/away, home_win/tie/away_win
or price_*. Without --require a missing file or an empty count only warns.

Exit codes: 0 ok or warning, 10 no valid odds with --require.

Examples:
  loteca guard --rodada 2025-R10 --require
  loteca guard --file data/out/2025-R10/odds_consensus.csv --debug`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := file
			if path == "" {
				if rodada == "" {
					return errors.New("--rodada or --file is required")
				}
				path = filepath.Join(roundDir(dataDir, rodada), consensusFile)
			}
			return runGuard(cmd.OutOrStdout(), path, require, debug)
		},
	}
	cmd.Flags().StringVar(&rodada, "rodada", "", "Round identifier (directory under --data-dir)")
	cmd.Flags().StringVar(&dataDir, "data-dir", a.cfg.DataDir, "Pipeline output root")
	cmd.Flags().StringVar(&file, "file", "", "Consensus CSV (overrides --rodada)")
	cmd.Flags().BoolVar(&require, "require", false, "Fail with exit 10 when no valid odds are present")
	cmd.Flags().BoolVar(&debug, "debug", false, "Print columns and sample rows")
	return cmd
}

func runGuard(w io.Writer, path string, require, debug bool) error {
	fail := func(format string, args ...any) error {
		msg := fmt.Sprintf(format, args...)
		if require {
			return exitWith(exitGuardFailed, "[guard] %s, failing", msg)
		}
		fmt.Fprintf(w, "[guard] %s, ok (no-op)\n", msg)
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fail("%s not found", path)
	}
	quotes, err := csvfile.ReadPriceRows(path)
	if err != nil {
		return fail("could not read %s: %v", path, err)
	}

	if debug {
		if t, err := csvfile.Read(path); err == nil {
			fmt.Fprintf(w, "[guard] columns: %v\n", t.Header)
			for i := 0; i < len(t.Rows) && i < 5; i++ {
				fmt.Fprintf(w, "[guard]   %v\n", t.Rows[i])
			}
		}
	}

	valid := odds.CountValidRows(quotes)
	if valid == 0 {
		return fail("no valid odds in %s (rows=%d)", path, len(quotes))
	}
	fmt.Fprintf(w, "[guard] OK valid_rows=%d of %d\n", valid, len(quotes))
	return nil
}
