package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/adapters/outbound/apifootball"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

func (a *app) checkAPICommand() *cobra.Command {
	var (
		key, host, baseURL, country string
		timeoutSec, season, latency int
	)
	cmd := &cobra.Command{
		Use:   "check-api",
		Short: "Validate the RapidAPI key for API-Football",
		Long: `Call /status and then /leagues?season=&country= with the configured key
and explain any failure.

Exit codes: 0 ok, 2 key missing, 3 unauthorized, invalid key or rate limited,
4 not subscribed, 5 timeout or network, 6 unexpected.

Examples:
  loteca check-api
  loteca check-api --key XXXX --host api-football-v1.p.rapidapi.com
  loteca check-api --latency 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("key") {
				key = a.cfg.RapidAPIKey
			}
			c := apifootball.NewClient(apifootball.Options{
				BaseURL: baseURL,
				Host:    host,
				Key:     key,
				Timeout: time.Duration(timeoutSec) * time.Second,
				RPS:     a.cfg.ProviderRPS,
			})
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "[check-api] host: %s\n", c.Host())

			res := apifootball.CheckKey(cmd.Context(), c, season, country)
			telemetry.Metrics.ProviderChecks.WithLabelValues(res.Outcome()).Inc()
			printCheck(w, res)
			if !res.OK() {
				return &ExitError{Code: res.Code}
			}

			if latency > 0 {
				stats, err := apifootball.ProbeLatency(cmd.Context(), c, latency)
				if err != nil {
					fmt.Fprintf(w, "[check-api] latency probe failed: %v\n", err)
					return nil
				}
				printLatency(w, stats)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "RapidAPI key (default RAPIDAPI_KEY)")
	cmd.Flags().StringVar(&host, "host", a.cfg.RapidAPIHost, "x-rapidapi-host header")
	cmd.Flags().StringVar(&baseURL, "base-url", a.cfg.RapidAPIBaseURL, "API-Football base URL")
	cmd.Flags().IntVar(&timeoutSec, "timeout", int(a.cfg.ProviderTimeout/time.Second), "Request timeout in seconds")
	cmd.Flags().IntVar(&season, "season", time.Now().Year(), "Season for the /leagues smoke test")
	cmd.Flags().StringVar(&country, "country", "Brazil", "Country for the /leagues smoke test")
	cmd.Flags().IntVar(&latency, "latency", 0, "After a successful check, time N /status round trips")
	return cmd
}

func printCheck(w io.Writer, res apifootball.CheckResult) {
	if res.Endpoint != "" && res.Status != 0 {
		fmt.Fprintf(w, "[check-api] HTTP %d on /%s\n", res.Status, res.Endpoint)
	}
	if res.OK() {
		fmt.Fprintf(w, "[check-api] OK leagues=%d\n", res.Leagues)
		return
	}
	if res.Payload != "" {
		fmt.Fprintf(w, "[check-api] response: %s\n", res.Payload)
	}
	fmt.Fprintf(w, "[check-api] DIAGNOSIS (exit %d): %s\n", res.Code, res.Message)
}

func printLatency(w io.Writer, s apifootball.LatencyStats) {
	fmt.Fprintf(w, "\n  --- API-Football latency (%d requests, %d failed) ---\n", s.Count, s.Failed)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "  Min:    %7.1f ms\n", s.Min)
	fmt.Fprintf(w, "  Max:    %7.1f ms\n", s.Max)
	fmt.Fprintf(w, "  Mean:   %7.1f ms\n", s.Mean)
	fmt.Fprintf(w, "  Median: %7.1f ms\n", s.Median)
	fmt.Fprintf(w, "  Stdev:  %7.1f ms\n", s.Stdev)
	fmt.Fprintf(w, "  p95:    %7.1f ms\n", s.P95)
	fmt.Fprintf(w, "  p99:    %7.1f ms\n", s.P99)
}
