package csvfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/charleschow/loteca-pipeline/internal/core/odds"
)

// Column spellings seen across provider exports. Order is preference.
var (
	homeNameColumns = []string{"team_home", "home_team", "home"}
	awayNameColumns = []string{"team_away", "away_team", "away"}

	homeOddsColumns = []string{"odds_home", "home_odds", "price_home", "home_win", "1", "home"}
	drawOddsColumns = []string{"odds_draw", "draw_odds", "price_draw", "draw", "x", "tie"}
	awayOddsColumns = []string{"odds_away", "away_odds", "price_away", "away_win", "2", "away"}
)

// NameColumns locates the home and away team-name columns.
func NameColumns(t *Table) (home, away int, err error) {
	home, _ = t.FirstIndex(homeNameColumns...)
	away, _ = t.FirstIndex(awayNameColumns...)
	if home < 0 || away < 0 {
		return -1, -1, fmt.Errorf("%w: need team_home/team_away or home/away, have %v", ErrMissingColumn, t.Header)
	}
	return home, away, nil
}

// oddsColumn picks the first candidate that is not already used for names.
func oddsColumn(t *Table, candidates []string, taken ...int) int {
	for _, c := range candidates {
		i := t.Index(c)
		if i < 0 {
			continue
		}
		clash := false
		for _, tk := range taken {
			if tk == i {
				clash = true
			}
		}
		if !clash {
			return i
		}
	}
	return -1
}

// OddsColumns locates the 1X2 price columns; missing ones are -1.
// Name columns, when known, are excluded so that a "home" name column is
// never read as a price.
func OddsColumns(t *Table, nameCols ...int) (home, draw, away int) {
	return oddsColumn(t, homeOddsColumns, nameCols...),
		oddsColumn(t, drawOddsColumns, nameCols...),
		oddsColumn(t, awayOddsColumns, nameCols...)
}

// ParsePrice reads a decimal price; "2,10" is accepted. Unparseable values are NaN.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ReadQuotes loads a provider CSV as quotes tagged with source. Team-name
// columns are required; absent price columns read as NaN.
func ReadQuotes(path, source string) ([]odds.Quote, error) {
	t, err := Read(path)
	if err != nil {
		return nil, err
	}
	if len(t.Header) == 0 {
		return nil, nil
	}
	hi, ai, err := NameColumns(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	oh, od, oa := OddsColumns(t, hi, ai)

	quotes := make([]odds.Quote, 0, len(t.Rows))
	for _, row := range t.Rows {
		quotes = append(quotes, odds.Quote{
			Source:   source,
			Home:     Get(row, hi),
			Away:     Get(row, ai),
			OddsHome: priceAt(row, oh),
			OddsDraw: priceAt(row, od),
			OddsAway: priceAt(row, oa),
		})
	}
	return quotes, nil
}

// ReadPriceRows loads any odds CSV (including a consensus file) for
// validity counting. Name columns are optional here.
func ReadPriceRows(path string) ([]odds.Quote, error) {
	t, err := Read(path)
	if err != nil {
		return nil, err
	}
	var names []int
	if hi, ai, err := NameColumns(t); err == nil {
		names = []int{hi, ai}
	}
	oh, od, oa := OddsColumns(t, names...)

	quotes := make([]odds.Quote, 0, len(t.Rows))
	for _, row := range t.Rows {
		quotes = append(quotes, odds.Quote{
			OddsHome: priceAt(row, oh),
			OddsDraw: priceAt(row, od),
			OddsAway: priceAt(row, oa),
		})
	}
	return quotes, nil
}

func priceAt(row []string, i int) float64 {
	if i < 0 {
		return math.NaN()
	}
	return ParsePrice(Get(row, i))
}

var consensusHeader = []string{
	"match_key", "team_home", "team_away",
	"odds_home", "odds_draw", "odds_away",
	"p_home", "p_draw", "p_away", "margin", "sources",
}

// WriteConsensus writes consensus rows; unavailable values are left blank.
func WriteConsensus(path string, rows []odds.ConsensusRow) error {
	t := &Table{Header: append([]string(nil), consensusHeader...)}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.MatchKey, r.Home, r.Away,
			formatNumber(r.OddsHome, 3), formatNumber(r.OddsDraw, 3), formatNumber(r.OddsAway, 3),
			formatNumber(r.ProbHome, 4), formatNumber(r.ProbDraw, 4), formatNumber(r.ProbAway, 4),
			formatNumber(r.Margin, 4),
			strings.Join(r.Sources, "+"),
		})
	}
	return Write(path, t)
}

func formatNumber(v float64, places int32) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).Round(places).String()
}
