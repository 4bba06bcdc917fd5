package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/adapters/inbound/resolver_http"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

func (a *app) serveCommand() *cobra.Command {
	var (
		host, aliases string
		port          int
		remote        bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the team resolver HTTP/WebSocket service",
		Long: `Serve team-name resolution over HTTP.

Routes: GET /health, GET /resolve?name=, POST /bulk_resolve, GET /ws,
GET /metrics. Names missing from the alias table are looked up on
API-Football when a key is configured; answers are learned and persisted in
the audit store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			canon, err := a.canonicalizer(aliases)
			if err != nil {
				return err
			}
			store := a.openAudit(a.cfg.AuditStorePath)
			defer store.Close()

			svc := a.newResolver(ctx, canon, store, remote, "resolver")
			mux := http.NewServeMux()
			resolver_http.NewHandler(svc).RegisterRoutes(mux)

			addr := fmt.Sprintf("%s:%d", host, port)
			server := &http.Server{
				Addr:         addr,
				Handler:      mux,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()
			telemetry.Infof("Resolver listening on %q  aliases=%d", addr, svc.Aliases())

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			telemetry.Infof("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&host, "host", a.cfg.ResolverHost, "Listen host")
	cmd.Flags().IntVar(&port, "port", a.cfg.ResolverPort, "Listen port")
	cmd.Flags().StringVar(&aliases, "aliases", a.cfg.AliasesPath, "Alias file (YAML or CSV); built-in data when empty")
	cmd.Flags().BoolVar(&remote, "remote", true, "Look up unknown names on API-Football")
	return cmd
}
