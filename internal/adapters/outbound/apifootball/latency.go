package apifootball

import (
	"context"
	"math"
	"sort"
)

// LatencyStats summarizes a set of round trips, in milliseconds.
type LatencyStats struct {
	Count  int
	Failed int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Stdev  float64
	P95    float64
	P99    float64
}

// ProbeLatency sends one warm-up request to /status followed by n timed
// requests over the same keep-alive connection. Only the HTTP exchange is
// timed, not the limiter wait. Non-2xx replies still count as round trips;
// transport errors count as failures.
func ProbeLatency(ctx context.Context, c *Client, n int) (LatencyStats, error) {
	if _, _, err := c.Get(ctx, "status", nil); err != nil {
		return LatencyStats{}, err
	}
	samples := make([]float64, 0, n)
	failed := 0
	for i := 0; i < n; i++ {
		_, _, elapsed, err := c.get(ctx, "status", nil)
		if err != nil {
			if ctx.Err() != nil {
				return LatencyStats{}, ctx.Err()
			}
			failed++
			continue
		}
		samples = append(samples, float64(elapsed.Microseconds())/1000)
	}
	stats := Summarize(samples)
	stats.Failed = failed
	return stats, nil
}

// Summarize computes order statistics over latencies (ms).
func Summarize(latencies []float64) LatencyStats {
	stats := LatencyStats{Count: len(latencies)}
	if len(latencies) == 0 {
		return stats
	}
	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	for _, v := range sorted {
		stats.Mean += v
	}
	stats.Mean /= float64(len(sorted))
	if len(sorted) > 1 {
		variance := 0.0
		for _, v := range sorted {
			variance += (v - stats.Mean) * (v - stats.Mean)
		}
		stats.Stdev = math.Sqrt(variance / float64(len(sorted)-1))
	}

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Median = sorted[len(sorted)/2]
	stats.P95 = sorted[rankIndex(len(sorted), 0.95)]
	stats.P99 = sorted[rankIndex(len(sorted), 0.99)]
	return stats
}

func rankIndex(n int, p float64) int {
	i := int(float64(n) * p)
	if i >= n {
		i = n - 1
	}
	return i
}
