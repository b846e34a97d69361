package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/tripcost/budget/budgettest"
	"github.com/kbukum/tripcost/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command against srv with a key and an explicit config file.
func runCLI(t *testing.T, srv *budgettest.Server, configYAML string, args ...string) (string, string, error) {
	t.Helper()
	base := []string{
		"--config", writeConfig(t, configYAML),
		"--base-url", srv.BaseURL(),
		"--api-key", budgettest.APIKey,
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(base, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func newServer(t *testing.T) *budgettest.Server {
	t.Helper()
	srv := budgettest.New()
	t.Cleanup(srv.Close)
	return srv
}

func TestCategory_JSON(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "category", "1")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(1), got["id_"])
	assert.Equal(t, "Accommodation", got["name"])
}

func TestCategories_Query(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "categories", "--query", "$[1].name")
	require.NoError(t, err)
	assert.Equal(t, "\"Local Transportation\"\n", out)
}

func TestCategories_Text(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "-o", "text", "categories")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "Category{"), l)
	}
}

func TestCurrency_YAML(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "currency", "aud", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id_: AUD")
	assert.Contains(t, out, "symbol: AU$")
}

func TestCountry_QueryCosts(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "country", "US", "-q", "$.costs[0].budget", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "45.12\n", out)
}

func TestSearchLocations_Text(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "search-locations", "Georgia", "-o", "text")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `admin1_code: "GA"`)
	assert.Contains(t, lines[1], `country_code: "GE"`)
}

func TestLocationInfo(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "location-info", "4167147", "-q", "$.costs[*].id_")
	require.NoError(t, err)

	var ids []float64
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	assert.Equal(t, []float64{1, 3}, ids)
}

func TestCosts_Dump(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "costs", "country", "us", "-o", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, `"budget": (float64) 45.12`)
	assert.Equal(t, 1, srv.Count("costs/country/us"))
}

func TestCostsLocation(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "costs", "location", "4167147", "-q", "$[1].luxury", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "99.9\n", out)
}

func TestConvert(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "convert", "15", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "13.8\n", out)

	out, _, err = runCLI(t, srv, "", "convert", "15", "--from", "usd", "--to", "aud")
	require.NoError(t, err)
	assert.Equal(t, "22.5\n", out)

	_, _, err = runCLI(t, srv, "", "convert", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestRaw(t *testing.T) {
	srv := newServer(t)

	out, _, err := runCLI(t, srv, "", "raw", "categories/1", "-p", "lang=en", "-q", "$.name")
	require.NoError(t, err)
	assert.Equal(t, "\"Accommodation\"\n", out)

	reqs := srv.Requests()
	assert.Equal(t, "lang=en", reqs[len(reqs)-1].Query)

	_, _, err = runCLI(t, srv, "", "raw", "categories/1", "-p", "novalue")
	require.Error(t, err)
}

func TestNotFound(t *testing.T) {
	srv := newServer(t)

	_, _, err := runCLI(t, srv, "", "category", "999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = runCLI(t, srv, "", "search-countries", "Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidArguments(t *testing.T) {
	srv := newServer(t)

	_, _, err := runCLI(t, srv, "", "location", "orlando")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geonameid")

	_, _, err = runCLI(t, srv, "", "categories", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output format")

	_, _, err = runCLI(t, srv, "", "currency", " ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	assert.Empty(t, srv.Requests())
}

func TestUnauthorized(t *testing.T) {
	srv := newServer(t)

	_, stderr, err := runCLI(t, srv, "", "categories", "--api-key", "wrong")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	assert.Contains(t, stderr, "request failed")

	var out bytes.Buffer
	reportError(&out, err)
	assert.Contains(t, out.String(), "UNAUTHORIZED")
	assert.Contains(t, out.String(), "hint: check --api-key")
}

func TestHint(t *testing.T) {
	srv := newServer(t)
	srv.SetResponse("categories/", http.StatusBadGateway, `{"error":"down"}`)
	srv.SetResponse("currencies/", http.StatusTooManyRequests, `{"error":"slow down"}`)

	_, _, err := runCLI(t, srv, "", "categories")
	require.Error(t, err)
	assert.Equal(t, "the service is failing, try again later", hint(err))

	_, _, err = runCLI(t, srv, "", "currencies")
	require.Error(t, err)
	assert.Contains(t, hint(err), "api.rate_limit.rate")

	closed := budgettest.New()
	closed.Close()
	_, _, err = runCLI(t, closed, "", "categories")
	require.Error(t, err)
	assert.Equal(t, "check --base-url and the network", hint(err))

	assert.Empty(t, hint(ErrNotFound))

	var out bytes.Buffer
	reportError(&out, ErrNotFound)
	assert.Equal(t, "not found\n", out.String())
}

func TestMissingAPIKey(t *testing.T) {
	srv := newServer(t)
	t.Setenv("API_KEY", "")

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", writeConfig(t, ""), "--base-url", srv.BaseURL(), "categories"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), "api.key")
}

func TestAPIKeyFromEnv(t *testing.T) {
	srv := newServer(t)
	t.Setenv("API_KEY", budgettest.APIKey)
	t.Setenv("API_BASE_URL", srv.BaseURL())

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", writeConfig(t, ""), "currencies", "-q", "$[0].id_"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "\"USD\"\n", stdout.String())
}

func TestRedisCache(t *testing.T) {
	srv := newServer(t)
	mr := miniredis.RunT(t)
	cfg := "cache:\n  backend: redis\n  ttl: 5m\n  redis:\n    addr: " + mr.Addr() + "\n"

	for i := 0; i < 2; i++ {
		_, _, err := runCLI(t, srv, cfg, "categories")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, srv.Count("categories/"))
	assert.NotEmpty(t, mr.Keys())

	_, _, err := runCLI(t, srv, cfg, "categories", "--no-cache")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Count("categories/"))
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), `"version": "dev"`)
}

func TestRenderText_Scalars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, []any{"a", 1.5, true, map[string]any{"k": "v"}}, FormatText, ""))
	assert.Equal(t, "a\n1.5\ntrue\n{\"k\":\"v\"}\n", buf.String())
}

func TestRender_BadQuery(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, map[string]any{"a": 1}, FormatJSON, "$[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
