package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/adapters/csvfile"
	"github.com/charleschow/loteca-pipeline/internal/core/audit"
	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

const exitBadInput = 3

func (a *app) normalizeCommand() *cobra.Command {
	var (
		in, out, aliases string
		dedupe, record   bool
		expect           int
	)
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Canonicalize team names in a fixtures CSV",
		Long: `Canonicalize the home/away team names of a fixtures CSV.

The name columns are team_home/team_away or home/away; the output always uses
team_home/team_away and keeps the provider spellings in team_home_orig and
team_away_orig. A match_id column (1..N) is added when missing.

Exit codes: 0 ok, 3 missing input, missing columns or wrong row count.

Examples:
  loteca normalize --in data/in/matches.csv --out data/out/matches_norm.csv
  loteca normalize --in matches.csv --out norm.csv --dedupe --expect 14`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			canon, err := a.canonicalizer(aliases)
			if err != nil {
				return err
			}
			var store *audit.Store
			if record {
				store = a.openAudit(a.cfg.AuditStorePath)
				defer store.Close()
			}
			n, err := normalizeFile(cmd.Context(), canon, store, in, out, dedupe, expect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[normalize] OK %s (%d rows)\n", out, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Input fixtures CSV")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV")
	cmd.Flags().StringVar(&aliases, "aliases", a.cfg.AliasesPath, "Alias file (YAML or CSV); built-in data when empty")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Drop repeated (match_id, home, away) rows after canonicalization")
	cmd.Flags().BoolVar(&record, "audit", false, "Record unresolved names in the audit store")
	cmd.Flags().IntVar(&expect, "expect", 0, "Required number of rows (0 disables the check)")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}

func normalizeFile(ctx context.Context, canon *teamname.Canonicalizer, store *audit.Store, in, out string, dedupe bool, expect int) (int, error) {
	t, err := csvfile.Read(in)
	if err != nil {
		return 0, &ExitError{Code: exitBadInput, Err: err}
	}
	if expect > 0 && len(t.Rows) != expect {
		return 0, exitWith(exitBadInput, "%s has %d rows, expected %d", in, len(t.Rows), expect)
	}
	hi, ai, err := csvfile.NameColumns(t)
	if err != nil {
		return 0, &ExitError{Code: exitBadInput, Err: fmt.Errorf("%s: %w", in, err)}
	}
	t.Header[hi] = "team_home"
	t.Header[ai] = "team_away"
	for i, row := range t.Rows {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows[i] = row
	}

	mi := t.Index("match_id")
	if mi < 0 {
		n := 0
		t.AppendColumn("match_id", func([]string) string {
			n++
			return strconv.Itoa(n)
		})
		mi = len(t.Header) - 1
	}

	fixtures := make([]teamname.Fixture, len(t.Rows))
	for i, row := range t.Rows {
		fixtures[i] = teamname.Fixture{
			Row:     i,
			MatchID: csvfile.Get(row, mi),
			Home:    csvfile.Get(row, hi),
			Away:    csvfile.Get(row, ai),
		}
	}
	normalized := canon.NormalizeFixtures(fixtures)
	if dedupe {
		before := len(normalized)
		normalized = teamname.DedupeFixtures(normalized)
		if d := before - len(normalized); d > 0 {
			telemetry.Infof("normalize: dropped %d duplicate rows", d)
		}
	}

	width := len(t.Header)
	result := &csvfile.Table{Header: append(t.Header, "team_home_orig", "team_away_orig")}
	for _, f := range normalized {
		row := make([]string, width, width+2)
		copy(row, t.Rows[f.Row])
		row[hi] = f.Home
		row[ai] = f.Away
		result.Rows = append(result.Rows, append(row, f.HomeOrig, f.AwayOrig))
	}
	telemetry.Metrics.RowsNormalized.Add(float64(len(result.Rows)))

	if store != nil {
		recordFallbacks(ctx, canon, store, fixtures)
	}
	if err := csvfile.Write(out, result); err != nil {
		return 0, err
	}
	return len(result.Rows), nil
}

func recordFallbacks(ctx context.Context, canon *teamname.Canonicalizer, store *audit.Store, fixtures []teamname.Fixture) {
	for _, f := range fixtures {
		for _, raw := range []string{f.Home, f.Away} {
			r := canon.Resolve(raw)
			if r.Matched || r.Key == "" {
				continue
			}
			if err := store.RecordUnresolved(ctx, r.Key, raw, r.Name, "normalize"); err != nil {
				telemetry.Warnf("normalize: audit record failed: %v", err)
				return
			}
		}
	}
}
