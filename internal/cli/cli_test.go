package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/loteca-pipeline/internal/adapters/csvfile"
	"github.com/charleschow/loteca-pipeline/internal/config"
	"github.com/charleschow/loteca-pipeline/internal/core/resolver"
)

// Commands reinitialize the global logger, so these tests run serially.

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:         filepath.Join(dir, "out"),
		AuditStorePath:  filepath.Join(dir, "audit", "names.db"),
		RapidAPIHost:    "test-host",
		RapidAPIBaseURL: "http://127.0.0.1:1",
		ProviderTimeout: 2 * time.Second,
		ProviderRPS:     50,
		LogLevel:        "error",
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(cfg)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), exitCode(err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNormalize_DedupeAuditHarvest(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "matches.csv")
	out := filepath.Join(dir, "norm", "matches_norm.csv")
	writeFile(t, in, "match_id,home,away,date\n"+
		"1,Atletico-MG,Sport,2025-05-01\n"+
		"1,atletico mg,sport recife,2025-05-01\n"+
		"2,real noroeste,Remo,2025-05-02\n")

	stdout, code := run(t, cfg, "normalize", "--in", in, "--out", out, "--dedupe", "--audit")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "(2 rows)")

	tbl, err := csvfile.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"match_id", "team_home", "team_away", "date", "team_home_orig", "team_away_orig"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1", "Atlético Mineiro", "Sport Recife", "2025-05-01", "Atletico-MG", "Sport"}, tbl.Rows[0])
	assert.Equal(t, []string{"2", "Real Noroeste", "Remo", "2025-05-02", "real noroeste", "Remo"}, tbl.Rows[1])

	harvest := filepath.Join(dir, "harvest.yaml")
	stdout, code = run(t, cfg, "aliases", "harvest", "--out", harvest)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "harvested 1 entries")

	data, err := os.ReadFile(harvest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "canonical: Real Noroeste")
	assert.Contains(t, string(data), "real noroeste")
}

func TestNormalize_AddsMatchIDAndChecksInput(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "matches.csv")
	out := filepath.Join(dir, "norm.csv")
	writeFile(t, in, "team_home,team_away\nAvaí,remo pa\n")

	_, code := run(t, cfg, "normalize", "--in", in, "--out", out)
	require.Equal(t, 0, code)
	tbl, err := csvfile.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"team_home", "team_away", "match_id", "team_home_orig", "team_away_orig"}, tbl.Header)
	assert.Equal(t, []string{"Avai", "Remo PA", "1", "Avaí", "remo pa"}, tbl.Rows[0])

	_, code = run(t, cfg, "normalize", "--in", in, "--out", out, "--expect", "14")
	assert.Equal(t, exitBadInput, code)

	_, code = run(t, cfg, "normalize", "--in", filepath.Join(dir, "missing.csv"), "--out", out)
	assert.Equal(t, exitBadInput, code)

	writeFile(t, in, "mandante,visitante\nA,B\n")
	_, code = run(t, cfg, "normalize", "--in", in, "--out", out)
	assert.Equal(t, exitBadInput, code)
}

func TestConsensusThenGuard(t *testing.T) {
	cfg := testConfig(t)
	round := filepath.Join(cfg.DataDir, "2025-R10")
	writeFile(t, filepath.Join(round, "odds_theoddsapi.csv"),
		"team_home,team_away,odds_home,odds_draw,odds_away\n"+
			"Atletico-MG,Sport,1.80,3.50,4.50\n"+
			"America-MG,Vila Nova,2.0,,\n")
	writeFile(t, filepath.Join(round, "odds_apifootball.csv"),
		"home,away,1,x,2\n"+
			"Atlético Mineiro,Sport Recife,1.90,3.30,\n")

	stdout, code := run(t, cfg, "consensus", "--rodada", "2025-R10")
	require.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "kept=1 dropped=1")

	tbl, err := csvfile.Read(filepath.Join(round, consensusFile))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "atletico-mineiro__vs__sport-recife", tbl.Rows[0][0])
	assert.Equal(t, []string{"1.85", "3.4", "4.5"}, tbl.Rows[0][3:6])
	assert.Equal(t, "theoddsapi+apifootball", tbl.Rows[0][10])

	stdout, code = run(t, cfg, "guard", "--rodada", "2025-R10", "--require")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "OK valid_rows=1 of 1")
}

func TestConsensus_Failures(t *testing.T) {
	cfg := testConfig(t)

	_, code := run(t, cfg, "consensus", "--rodada", "empty")
	assert.Equal(t, 1, code)

	writeFile(t, filepath.Join(cfg.DataDir, "novalid", "odds_theoddsapi.csv"),
		"team_home,team_away,odds_home,odds_draw,odds_away\nRemo,Paysandu,2.1,,\n")
	_, code = run(t, cfg, "consensus", "--rodada", "novalid")
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, filepath.Join(cfg.DataDir, "novalid", consensusFile))
}

func TestGuard(t *testing.T) {
	cfg := testConfig(t)

	_, code := run(t, cfg, "guard", "--rodada", "missing", "--require")
	assert.Equal(t, exitGuardFailed, code)

	stdout, code := run(t, cfg, "guard", "--rodada", "missing")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "ok (no-op)")

	path := filepath.Join(cfg.DataDir, "r", consensusFile)
	writeFile(t, path, "team_home,team_away,home,draw,away\nRemo,Paysandu,2.1,1.0,\n")
	_, code = run(t, cfg, "guard", "--file", path, "--require")
	assert.Equal(t, exitGuardFailed, code)

	writeFile(t, path, "1,x,2\n2.1,3.2,\n")
	stdout, code = run(t, cfg, "guard", "--file", path, "--require", "--debug")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "columns: [1 x 2]")
}

func TestCheckAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("x-rapidapi-key") {
		case "good":
			w.Write([]byte(`{"results":3}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
		}
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.RapidAPIBaseURL = srv.URL

	_, code := run(t, cfg, "check-api")
	assert.Equal(t, 2, code)

	stdout, code := run(t, cfg, "check-api", "--key", "bad")
	assert.Equal(t, 4, code)
	assert.Contains(t, stdout, "HTTP 403 on /status")

	cfg.RapidAPIKey = "good"
	stdout, code = run(t, cfg, "check-api", "--latency", "2")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "OK leagues=3")
	assert.Contains(t, stdout, "2 requests, 0 failed")

	cfg.RapidAPIBaseURL = "http://127.0.0.1:1"
	_, code = run(t, cfg, "check-api")
	assert.Equal(t, 5, code)
}

func TestAliasesCheck(t *testing.T) {
	cfg := testConfig(t)

	stdout, code := run(t, cfg, "aliases", "check", "--strict")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "collisions=0")

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	writeFile(t, path, "teams:\n  Atlético Mineiro: [Atletico]\n  Atlético Goianiense: [Atletico]\n")
	stdout, code = run(t, cfg, "aliases", "check", "--aliases", path, "--strict")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, `key "atletico"`)
}

func TestResolveCommand(t *testing.T) {
	cfg := testConfig(t)

	stdout, code := run(t, cfg, "resolve", "Atletico-MG", "some random fc")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Atletico-MG -> Atlético Mineiro (alias)")
	assert.Contains(t, stdout, "some random fc -> Some Random FC (fallback)")

	stdout, code = run(t, cfg, "resolve", "--json", "sport")
	require.Equal(t, 0, code)
	var res resolver.Result
	require.NoError(t, json.NewDecoder(strings.NewReader(stdout)).Decode(&res))
	assert.Equal(t, "Sport Recife", res.Canonical)

	_, code = run(t, cfg, "resolve")
	assert.Equal(t, 1, code)
}
