package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charleschow/loteca-pipeline/internal/config"
	"github.com/charleschow/loteca-pipeline/internal/core/audit"
	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

func (a *app) aliasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Inspect and grow the alias table",
	}
	cmd.AddCommand(a.aliasesCheckCommand())
	cmd.AddCommand(a.aliasesHarvestCommand())
	return cmd
}

func (a *app) aliasesCheckCommand() *cobra.Command {
	var (
		path   string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report spellings that map to more than one canonical name",
		Long: `Load the alias file and list every normalized key claimed by two different
canonical names. The table keeps the last registration; this only reports.

Exit codes: 0 ok, 1 collisions found with --strict.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := config.LoadAliases(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			collisions := teamname.FindCollisions(entries)
			for _, c := range collisions {
				fmt.Fprintf(w, "[aliases] key %q: %q overrides %q (spelling %q)\n", c.Key, c.Canonical, c.Previous, c.Spelling)
			}
			table := teamname.NewAliasTable(entries...)
			fmt.Fprintf(w, "[aliases] entries=%d keys=%d collisions=%d\n", len(entries), table.Len(), len(collisions))
			if strict && len(collisions) > 0 {
				return exitWith(1, "%d alias collisions", len(collisions))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "aliases", a.cfg.AliasesPath, "Alias file (YAML or CSV); built-in data when empty")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when collisions exist")
	return cmd
}

func (a *app) aliasesHarvestCommand() *cobra.Command {
	var (
		out     string
		limit   int
		learned bool
	)
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Export unresolved names as an alias skeleton",
		Long: `Write names that fell back to the formatter (most frequent first) as a YAML
alias document for review. With --learned, aliases learned from the provider
are exported under teams as well.

Examples:
  loteca aliases harvest --out data/aliases_harvest.yaml --limit 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := audit.OpenStore(a.cfg.AuditStorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			obs, err := store.Unresolved(cmd.Context(), limit)
			if err != nil {
				return err
			}
			doc := config.AliasFile{Teams: audit.Skeleton(obs)}
			if learned {
				la, err := store.LearnedAliases(cmd.Context())
				if err != nil {
					return err
				}
				doc.Teams = append(audit.LearnedEntries(la), doc.Teams...)
			}
			if err := config.SaveAliases(out, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[aliases] harvested %d entries (%d unresolved names) into %s\n",
				len(doc.Teams), len(obs), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "aliases_harvest.yaml", "Output YAML file")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum unresolved names (0 = all)")
	cmd.Flags().BoolVar(&learned, "learned", false, "Include aliases learned from the provider")
	return cmd
}
