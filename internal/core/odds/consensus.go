package odds

import (
	"errors"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

// ErrNoValidRows is returned when no match keeps at least two valid prices.
var ErrNoValidRows = errors.New("no consensus row with at least two valid odds")

// MinValidPrices is the number of outcomes that must carry a valid price for
// a row to count as real odds.
const MinValidPrices = 2

// Quote is one provider's 1X2 prices for a fixture. Missing prices are NaN or 0.
type Quote struct {
	Source   string
	Home     string
	Away     string
	OddsHome float64
	OddsDraw float64
	OddsAway float64
}

// ValidCount returns how many of the three prices are usable.
func (q Quote) ValidCount() int {
	n := 0
	for _, v := range []float64{q.OddsHome, q.OddsDraw, q.OddsAway} {
		if ValidPrice(v) {
			n++
		}
	}
	return n
}

// CountValidRows counts quotes with at least MinValidPrices usable prices.
func CountValidRows(quotes []Quote) int {
	n := 0
	for _, q := range quotes {
		if q.ValidCount() >= MinValidPrices {
			n++
		}
	}
	return n
}

// MatchKey builds the join key "home-slug__vs__away-slug".
func MatchKey(home, away string) string {
	return teamname.Slug(home) + "__vs__" + teamname.Slug(away)
}

// ConsensusRow is the averaged view of one fixture across providers.
// Prices and probabilities are 0 when unavailable.
type ConsensusRow struct {
	MatchKey string
	Home     string
	Away     string
	OddsHome float64
	OddsDraw float64
	OddsAway float64
	ProbHome float64
	ProbDraw float64
	ProbAway float64
	Margin   float64
	Sources  []string
}

// ConsensusStats summarizes a BuildConsensus run.
type ConsensusStats struct {
	Quotes     int
	Duplicates int
	Matches    int
	Kept       int
	Dropped    int
}

type group struct {
	row    ConsensusRow
	prices [3][]decimal.Decimal
}

// BuildConsensus canonicalizes team names, groups quotes by match key and
// averages each outcome's valid prices. The first quote per (match, source)
// wins and the first quote per match supplies the team names. Rows with
// fewer than MinValidPrices averaged prices are dropped. Output follows the
// order in which matches first appear.
func BuildConsensus(quotes []Quote, canon *teamname.Canonicalizer) ([]ConsensusRow, ConsensusStats) {
	stats := ConsensusStats{Quotes: len(quotes)}
	if canon == nil {
		canon = teamname.New(nil)
	}

	groups := make(map[string]*group)
	var order []string
	seen := make(map[[2]string]struct{})

	for _, q := range quotes {
		home := canon.Canonicalize(q.Home)
		away := canon.Canonicalize(q.Away)
		key := MatchKey(home, away)

		dedupe := [2]string{key, q.Source}
		if _, dup := seen[dedupe]; dup {
			stats.Duplicates++
			continue
		}
		seen[dedupe] = struct{}{}

		g, ok := groups[key]
		if !ok {
			g = &group{row: ConsensusRow{MatchKey: key, Home: home, Away: away}}
			groups[key] = g
			order = append(order, key)
		}
		if !slices.Contains(g.row.Sources, q.Source) {
			g.row.Sources = append(g.row.Sources, q.Source)
		}
		for i, v := range []float64{q.OddsHome, q.OddsDraw, q.OddsAway} {
			if ValidPrice(v) {
				g.prices[i] = append(g.prices[i], decimal.NewFromFloat(v))
			}
		}
	}

	stats.Matches = len(order)
	out := make([]ConsensusRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := g.row
		row.OddsHome = mean(g.prices[0])
		row.OddsDraw = mean(g.prices[1])
		row.OddsAway = mean(g.prices[2])

		valid := 0
		for _, v := range []float64{row.OddsHome, row.OddsDraw, row.OddsAway} {
			if ValidPrice(v) {
				valid++
			}
		}
		if valid < MinValidPrices {
			stats.Dropped++
			continue
		}
		fillProbabilities(&row)
		out = append(out, row)
	}
	stats.Kept = len(out)
	return out, stats
}

func fillProbabilities(row *ConsensusRow) {
	h, d, a := ValidPrice(row.OddsHome), ValidPrice(row.OddsDraw), ValidPrice(row.OddsAway)
	switch {
	case h && d && a:
		row.ProbHome, row.ProbDraw, row.ProbAway = RemoveVig3(row.OddsHome, row.OddsDraw, row.OddsAway)
		row.Margin = Overround(row.OddsHome, row.OddsDraw, row.OddsAway)
	case h && a:
		row.ProbHome, row.ProbAway = RemoveVig2(row.OddsHome, row.OddsAway)
	}
	row.ProbHome = round(row.ProbHome, 4)
	row.ProbDraw = round(row.ProbDraw, 4)
	row.ProbAway = round(row.ProbAway, 4)
	row.Margin = round(row.Margin, 4)
}

// mean averages prices with decimal arithmetic and rounds to 3 places.
func mean(prices []decimal.Decimal) float64 {
	if len(prices) == 0 {
		return 0
	}
	avg := decimal.Sum(prices[0], prices[1:]...).Div(decimal.NewFromInt(int64(len(prices))))
	return avg.Round(3).InexactFloat64()
}

func round(v float64, places int32) float64 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
