package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/core/audit"
)

func (a *app) resolveCommand() *cobra.Command {
	var (
		aliases             string
		remote, record, raw bool
	)
	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Resolve team names from the command line",
		Long: `Resolve each NAME the way the resolver service does and print one line
per name, or one JSON object per line with --json.

Examples:
  loteca resolve "Atletico-MG" "sport recife"
  loteca resolve --remote --audit "Gremio Novorizontino"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canon, err := a.canonicalizer(aliases)
			if err != nil {
				return err
			}
			var store *audit.Store
			if record {
				store = a.openAudit(a.cfg.AuditStorePath)
				defer store.Close()
			}
			svc := a.newResolver(cmd.Context(), canon, store, remote, "cli")

			w := cmd.OutOrStdout()
			enc := json.NewEncoder(w)
			for _, res := range svc.ResolveMany(cmd.Context(), args) {
				if raw {
					if err := enc.Encode(res); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(w, "%s -> %s (%s)\n", res.Input, res.Canonical, res.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&aliases, "aliases", a.cfg.AliasesPath, "Alias file (YAML or CSV); built-in data when empty")
	cmd.Flags().BoolVar(&remote, "remote", false, "Look up unknown names on API-Football")
	cmd.Flags().BoolVar(&record, "audit", false, "Use the audit store for learned aliases and unresolved names")
	cmd.Flags().BoolVar(&raw, "json", false, "Print JSON lines")
	return cmd
}
