package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
filters:
  title_keywords: ["engineering manager"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 38471, cfg.App.Port)
	assert.Equal(t, 7, cfg.Run.DaysThreshold)
	assert.Equal(t, 7, cfg.Run.LookbackDays)
	assert.Equal(t, 993, cfg.Email.IMAPPort)
	assert.Equal(t, "INBOX", cfg.Email.Mailbox)
	assert.Equal(t, []string{"engineering manager"}, cfg.Filters.TitleKeywords)
}

func TestOverlaySources(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Sources = []Source{{ID: "old", URL: "https://old.test", Parser: "consider", Enabled: true}}

	path := writeFile(t, dir, "sources.yml", `
sources:
  - id: a16z
    name: Andreessen Horowitz
    url: https://jobs.a16z.com/jobs
    parser: consider
    enabled: true
`)
	require.NoError(t, OverlaySources(&cfg, path))
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "a16z", cfg.Sources[0].ID)

	// missing file keeps whatever the main config carried
	require.NoError(t, OverlaySources(&cfg, filepath.Join(dir, "nope.yml")))
	assert.Equal(t, "a16z", cfg.Sources[0].ID)
}

func TestApplyURLFilter(t *testing.T) {
	cfg := Default()
	cfg.URLFilters = map[string]string{"consider": "jobFunctions=Engineering"}

	assert.Equal(t, "https://x.test/jobs?jobFunctions=Engineering",
		ApplyURLFilter(cfg, "https://x.test/jobs", "consider"))
	assert.Equal(t, "https://x.test/jobs?a=1&jobFunctions=Engineering",
		ApplyURLFilter(cfg, "https://x.test/jobs?a=1", "consider"))

	// already present: applied once only
	withFilter := ApplyURLFilter(cfg, "https://x.test/jobs", "consider")
	assert.Equal(t, withFilter, ApplyURLFilter(cfg, withFilter, "consider"))

	// no filter configured for this parser kind
	assert.Equal(t, "https://y.test/jobs", ApplyURLFilter(cfg, "https://y.test/jobs", "getro"))
}

func TestEnabledSources(t *testing.T) {
	cfg := Default()
	cfg.Sources = []Source{
		{ID: "a16z", URL: "https://a.test", Parser: "consider", Enabled: true},
		{ID: "seq", URL: "https://s.test", Parser: "consider", Enabled: true},
		{ID: "yc", URL: "https://y.test", Parser: "yc", Enabled: false},
	}

	all, unknown := EnabledSources(cfg, nil)
	assert.Len(t, all, 2)
	assert.Empty(t, unknown)

	some, unknown := EnabledSources(cfg, []string{"seq", "ghost"})
	require.Len(t, some, 1)
	assert.Equal(t, "seq", some[0].ID)
	assert.Equal(t, []string{"ghost"}, unknown)

	// disabled sources stay excluded even when named
	none, unknown := EnabledSources(cfg, []string{"yc"})
	assert.Empty(t, none)
	assert.Empty(t, unknown)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Sources = []Source{{ID: "a16z", URL: "https://a.test", Parser: "consider", Enabled: true}}
	assert.NoError(t, Validate(cfg))

	bad := cfg
	bad.Sources = []Source{
		{ID: "a16z", URL: "https://a.test", Parser: "consider"},
		{ID: "a16z", URL: "", Parser: ""},
	}
	bad.Run.DaysThreshold = -1
	err := Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days_threshold")
	assert.Contains(t, err.Error(), "duplicated")

	email := cfg
	email.Email.Enabled = true
	assert.Error(t, Validate(email))
}
