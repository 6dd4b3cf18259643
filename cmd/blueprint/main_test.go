package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponses = `{
	"1": "SaaS / B2B Tool",
	"2": "Invoicing for small agencies",
	"4": {"feature1": "user_auth", "feature2": "payments", "feature3": "analytics_dashboard"},
	"5": "Web only",
	"6": "No-code",
	"7": "Under $5,000",
	"8": "ASAP (under 4 weeks)",
	"9": "1 developer",
	"15": {"email": "Founder@Example.com", "project_name": "Ledgerly"}
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"blueprint"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestAssess_JSON(t *testing.T) {
	path := writeFile(t, "responses.json", sampleResponses)
	out, err := run(t, "", "assess", "--responses", path, "--format", "json", "--enrich")
	require.NoError(t, err)

	var doc struct {
		Report struct {
			Result struct {
				Route string `json:"route"`
			} `json:"result"`
		} `json:"report"`
		Enrichment struct {
			Source string `json:"source"`
		} `json:"enrichment"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.Report.Result.Route)
	assert.Equal(t, "template", doc.Enrichment.Source)
}

func TestAssess_StdinEnvelopeAndFormats(t *testing.T) {
	envelope := `{"responses": ` + sampleResponses + `}`

	out, err := run(t, envelope, "assess", "-r", "-", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "HIRING BLUEPRINT")
	assert.Contains(t, out, "TEAM OPTIONS")

	out, err = run(t, envelope, "assess", "-r", "-", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Hiring Blueprint")
	assert.Contains(t, out, "### MVP Phasing")

	_, err = run(t, envelope, "assess", "-r", "-", "-f", "yaml")
	assert.Error(t, err)
}

func TestAssess_BadInput(t *testing.T) {
	_, err := run(t, "", "assess", "--responses", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, `["not", "a", "map"]`, "assess", "-r", "-")
	assert.Error(t, err)
}

func TestQuestionsAndVerticals(t *testing.T) {
	out, err := run(t, "", "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "Section A")
	assert.Contains(t, out, "fields: selected, other")

	out, err = run(t, "", "verticals")
	require.NoError(t, err)
	assert.Contains(t, out, "fintech")
	assert.Contains(t, out, "compliance-heavy")

	out, err = run(t, "", "verticals", "--json")
	require.NoError(t, err)
	var vs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &vs))
	assert.Len(t, vs, 11)
}

func TestPolicyCommands(t *testing.T) {
	out, err := run(t, "", "policy", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "no_code_threshold:")

	out, err = run(t, "", "policy", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults")

	bad := writeFile(t, "policy.yaml", "route:\n  no_code_threshold: 1\n  hybrid_threshold: 5\n")
	_, err = run(t, "", "--policy-file", bad, "policy", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLICY_INVALID")
}

func TestMigrate_RequiresTarget(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CLICKHOUSE_HOST", "")
	_, err := run(t, "", "migrate")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
