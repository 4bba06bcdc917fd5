package cli

import (
	"context"

	"github.com/charleschow/loteca-pipeline/internal/adapters/outbound/apifootball"
	"github.com/charleschow/loteca-pipeline/internal/config"
	"github.com/charleschow/loteca-pipeline/internal/core/audit"
	"github.com/charleschow/loteca-pipeline/internal/core/resolver"
	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

// canonicalizer loads the alias file at path (built-in data when empty).
func (a *app) canonicalizer(path string) (*teamname.Canonicalizer, error) {
	entries, err := config.LoadAliases(path)
	if err != nil {
		return nil, err
	}
	table := teamname.NewAliasTable(entries...)
	src := path
	if src == "" {
		src = "built-in"
	}
	telemetry.Infof("aliases: %d keys from %s", table.Len(), src)
	return teamname.New(table), nil
}

// openAudit opens the audit store, or returns nil with a warning when the
// store cannot be opened. Callers treat a nil store as disabled.
func (a *app) openAudit(path string) *audit.Store {
	if path == "" {
		return nil
	}
	store, err := audit.OpenStore(path)
	if err != nil {
		telemetry.Warnf("Audit store disabled: %v", err)
		return nil
	}
	return store
}

func (a *app) providerClient(key, host, baseURL string) *apifootball.Client {
	return apifootball.NewClient(apifootball.Options{
		BaseURL: baseURL,
		Host:    host,
		Key:     key,
		Timeout: a.cfg.ProviderTimeout,
		RPS:     a.cfg.ProviderRPS,
	})
}

// newResolver wires a resolver service. The provider is consulted only when
// remote is set and a key is configured.
func (a *app) newResolver(ctx context.Context, canon *teamname.Canonicalizer, store *audit.Store, remote bool, origin string) *resolver.Service {
	var lookup resolver.RemoteLookup
	if remote {
		client := a.providerClient(a.cfg.RapidAPIKey, a.cfg.RapidAPIHost, a.cfg.RapidAPIBaseURL)
		if client.HasKey() {
			lookup = client
		} else {
			telemetry.Warnf("RAPIDAPI_KEY not set, remote team lookup disabled")
		}
	}

	var rec resolver.Recorder
	if store != nil {
		rec = store
	}
	svc := resolver.NewService(canon, lookup, rec, origin)

	if store != nil {
		learned, err := store.LearnedAliases(ctx)
		if err != nil {
			telemetry.Warnf("Learned aliases not loaded: %v", err)
		} else {
			svc.Seed(learned)
			telemetry.Infof("aliases: %d learned aliases loaded", len(learned))
		}
	}
	return svc
}
