package csvfile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/loteca-pipeline/internal/core/odds"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_BOMAndShortRows(t *testing.T) {
	t.Parallel()
	tbl, err := Parse(strings.NewReader("\ufeffHome,Away,extra\nRemo,Paysandu\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Index("home"))
	assert.Equal(t, 1, tbl.Index(" AWAY "))
	assert.Equal(t, -1, tbl.Index("missing"))
	assert.Equal(t, "", Get(tbl.Rows[0], 2))
	assert.Equal(t, "", Get(tbl.Rows[0], -1))

	i, name := tbl.FirstIndex("team_home", "home")
	assert.Equal(t, 0, i)
	assert.Equal(t, "home", name)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()
	tbl, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestWriteAndCountRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	tbl := &Table{Header: []string{"home", "away"}, Rows: [][]string{{"a", "b"}, {"c", "d"}}}
	tbl.AppendColumn("pair", func(row []string) string { return row[0] + row[1] })
	require.NoError(t, Write(path, tbl))

	back, err := Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(tbl, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	n, err := CountRows(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = CountRows(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestParsePrice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2.1, ParsePrice("2,10"))
	assert.Equal(t, 3.4, ParsePrice(" 3.4 "))
	assert.True(t, math.IsNaN(ParsePrice("")))
	assert.True(t, math.IsNaN(ParsePrice("n/a")))
}

func TestOddsColumns_SkipsNameColumns(t *testing.T) {
	t.Parallel()
	tbl := &Table{Header: []string{"home", "away", "1", "x", "2"}}
	hi, ai, err := NameColumns(tbl)
	require.NoError(t, err)
	oh, od, oa := OddsColumns(tbl, hi, ai)
	assert.Equal(t, []int{2, 3, 4}, []int{oh, od, oa})

	// Without name columns "home"/"away" are read as prices.
	tbl = &Table{Header: []string{"home", "draw", "away"}}
	oh, od, oa = OddsColumns(tbl)
	assert.Equal(t, []int{0, 1, 2}, []int{oh, od, oa})
}

func TestNameColumns_Missing(t *testing.T) {
	t.Parallel()
	_, _, err := NameColumns(&Table{Header: []string{"team_home", "odds_home"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadQuotes(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "odds.csv",
		"team_home,team_away,home_odds,draw,away_win\n"+
			"Atletico-MG,Sport,\"1,80\",3.5,4.5\n"+
			"Remo,Paysandu,,,\n")

	quotes, err := ReadQuotes(path, "theoddsapi")
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, odds.Quote{Source: "theoddsapi", Home: "Atletico-MG", Away: "Sport", OddsHome: 1.8, OddsDraw: 3.5, OddsAway: 4.5}, quotes[0])
	assert.Equal(t, "Remo", quotes[1].Home)
	assert.True(t, math.IsNaN(quotes[1].OddsHome))
	assert.Equal(t, 1, odds.CountValidRows(quotes))
}

func TestReadQuotes_MissingNames(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "odds.csv", "odds_home,odds_draw,odds_away\n2,3,4\n")
	_, err := ReadQuotes(path, "x")
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadQuotes(filepath.Join(t.TempDir(), "absent.csv"), "x")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteConsensus_ThenReadPriceRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "odds_consensus.csv")
	rows := []odds.ConsensusRow{
		{
			MatchKey: "avai__vs__remo", Home: "Avaí", Away: "Remo",
			OddsHome: 2.5, OddsAway: 2.7, ProbHome: 0.5192, ProbAway: 0.4808,
			Sources: []string{"theoddsapi", "apifootball"},
		},
	}
	require.NoError(t, WriteConsensus(path, rows))

	tbl, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, consensusHeader, tbl.Header)
	want := []string{"avai__vs__remo", "Avaí", "Remo", "2.5", "", "2.7", "0.5192", "", "0.4808", "", "theoddsapi+apifootball"}
	if diff := cmp.Diff(want, tbl.Rows[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}

	quotes, err := ReadPriceRows(path)
	require.NoError(t, err)
	assert.Equal(t, 1, odds.CountValidRows(quotes))
}
