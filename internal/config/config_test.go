package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", " abc\r\n")
	t.Setenv("RESOLVER_PORT", "9099")
	t.Setenv("PROVIDER_TIMEOUT_SEC", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "abc", cfg.RapidAPIKey)
	assert.Equal(t, 9099, cfg.ResolverPort)
	assert.Equal(t, 7*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "api-football-v1.p.rapidapi.com", cfg.RapidAPIHost)
}

func TestLoad_FallbackKeyAndBadInts(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")
	t.Setenv("X_RAPIDAPI_KEY", "legacy")
	t.Setenv("RESOLVER_PORT", "not-a-number")
	t.Setenv("PROVIDER_TIMEOUT_SEC", "0")

	cfg := Load()
	assert.Equal(t, "legacy", cfg.RapidAPIKey)
	assert.Equal(t, 8088, cfg.ResolverPort)
	assert.Equal(t, 20*time.Second, cfg.ProviderTimeout)
}

func TestLoadAliases_DefaultWhenEmptyPath(t *testing.T) {
	entries, err := LoadAliases("")
	require.NoError(t, err)
	assert.Equal(t, teamname.DefaultEntries(), entries)
}

func TestLoadAliases_YAMLListAndMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	doc := `
teams:
  - canonical: Athletico Paranaense
    variants: [Athletico-PR, Atletico-PR]
  - canonical: Remo
    variants: ["Remo (PA)"]
countries:
  Switzerland: [Suíça, Suica]
  Germany: Alemanha
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	entries, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []teamname.Entry{
		{Canonical: "Athletico Paranaense", Variants: []string{"Athletico-PR", "Atletico-PR"}},
		{Canonical: "Remo", Variants: []string{"Remo (PA)"}},
		{Canonical: "Switzerland", Variants: []string{"Suíça", "Suica"}},
		{Canonical: "Germany", Variants: []string{"Alemanha"}},
	}, entries)
}

func TestLoadAliases_JSONFromBuildAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	doc := `{"teams": {"Ponte Preta/SP": ["Ponte Preta", "ponte preta"]}, "countries": null}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	entries, err := LoadAliases(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ponte Preta/SP", entries[0].Canonical)
}

func TestLoadAliases_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team_aliases.csv")
	doc := "canonical,alias\n# comment\nAvai,Avaí\nAvai,Avai FC\n,empty\nRemo\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	entries, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []teamname.Entry{
		{Canonical: "Avai", Variants: []string{"Avaí"}},
		{Canonical: "Avai", Variants: []string{"Avai FC"}},
	}, entries)
}

func TestLoadAliases_CSVWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team_aliases.csv")
	require.NoError(t, os.WriteFile(path, []byte("avaí,Avai\n"), 0o644))

	entries, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []teamname.Entry{{Canonical: "Avai", Variants: []string{"avaí"}}}, entries)
}

func TestLoadAliases_Errors(t *testing.T) {
	_, err := LoadAliases(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read aliases")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teams: 42\n"), 0o644))
	_, err = LoadAliases(path)
	assert.ErrorContains(t, err, "parse aliases")
}

func TestSaveAliases_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aliases.yaml")
	doc := AliasFile{Teams: AliasGroup{{Canonical: "Remo", Variants: []string{"Remo-PA"}}}}
	require.NoError(t, SaveAliases(path, doc))

	entries, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []teamname.Entry{{Canonical: "Remo", Variants: []string{"Remo-PA"}}}, entries)
}
