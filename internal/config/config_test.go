package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "settings.yml", `
upwork:
  searchUrlTemplate: "https://example.com/jobs?q=go&page={page}"
  maxItems: 50
  delaySeconds: 1.5
export:
  format: csv
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs?q=go&page={page}", cfg.Upwork.SearchURLTemplate)
	assert.Equal(t, 50, cfg.Upwork.MaxItems)
	assert.Equal(t, 1.5, cfg.Upwork.DelaySeconds)
	assert.Equal(t, "csv", cfg.Export.Format)
}

func TestLoadLegacyJSON(t *testing.T) {
	path := writeTemp(t, "settings.json", `{
  "upwork": {
    "searchUrlTemplate": "https://example.com/jobs?page={page}",
    "maxItems": 25
  },
  "export": {"format": "json", "filePrefix": "jobs"}
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Upwork.MaxItems)
	assert.Equal(t, "jobs", cfg.Export.FilePrefix)
}

func TestNormalizeAndValidateDefaults(t *testing.T) {
	var cfg Config
	cfg.Upwork.SearchURLTemplate = "https://example.com/jobs"

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, 100, out.Upwork.MaxItems)
	assert.Equal(t, 1, out.Upwork.MaxPages)
	assert.Equal(t, 2.0, out.Upwork.DelaySeconds)
	assert.Equal(t, "json", out.Export.Format)
	assert.Equal(t, "data", out.Export.OutputDir)
	assert.Equal(t, "upwork_jobs", out.Export.FilePrefix)
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	var cfg Config

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK(), "missing template must be fatal")

	cfg.Upwork.SearchURLTemplate = "https://example.com/jobs"
	cfg.Export.Format = "parquet"
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK(), "unknown export format must be fatal")
}

func TestNormalizeAndValidateWarnings(t *testing.T) {
	var cfg Config
	cfg.Upwork.SearchURLTemplate = "https://example.com/jobs"
	cfg.Upwork.DelaySeconds = 0.1

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.NotEmpty(t, res.Warnings)
}

func TestTemplatesMergeAndDedup(t *testing.T) {
	u := Upwork{
		SearchURLTemplate: "https://example.com/a",
		SearchURLTemplates: []string{
			" https://example.com/b ",
			"https://example.com/a",
			"",
		},
	}
	assert.Equal(t,
		[]string{"https://example.com/a", "https://example.com/b"},
		u.Templates())
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeTemp(t, "default.yml", "upwork:\n  maxItems: 5\n")

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "settings.yml"), userPath)

	cfg, err := Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Upwork.MaxItems)

	// second call leaves the user copy alone
	require.NoError(t, os.WriteFile(userPath, []byte("upwork:\n  maxItems: 9\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	cfg, err = Load(again)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Upwork.MaxItems)
}
