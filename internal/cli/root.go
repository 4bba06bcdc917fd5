package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/config"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

// ExitError carries a process exit code through cobra's RunE.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitWith(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

type app struct {
	cfg *config.Config
}

// NewRootCommand builds the loteca command tree around cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	var logLevel, logFile string
	cmd := &cobra.Command{
		Use:   "loteca",
		Short: "Odds pipeline tooling: team names, consensus odds, provider checks",
		Long: `loteca gathers the pipeline steps that prepare a Loteca round:
team-name canonicalization, multi-provider consensus odds, the consensus
guard, the API-Football key check and the team resolver service.

Quick start:
  loteca normalize --in matches.csv --out matches_norm.csv
  loteca consensus --rodada 2025-R10
  loteca guard --rodada 2025-R10 --require
  loteca check-api
  loteca serve --port 8088`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := telemetry.ParseLogLevel(logLevel)
			if logFile != "" {
				telemetry.InitWithFile(level, telemetry.FileOptions{Path: logFile})
			} else {
				telemetry.Init(level)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", cfg.LogFile, "Also write logs to this file (rotated)")

	cmd.AddCommand(a.normalizeCommand())
	cmd.AddCommand(a.consensusCommand())
	cmd.AddCommand(a.guardCommand())
	cmd.AddCommand(a.checkAPICommand())
	cmd.AddCommand(a.serveCommand())
	cmd.AddCommand(a.resolveCommand())
	cmd.AddCommand(a.aliasesCommand())

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand(config.Load())
	return exitCode(root.Execute())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			telemetry.Errorf("%v", ee.Err)
		}
		return ee.Code
	}
	telemetry.Errorf("%v", err)
	return 1
}
