package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`
source: src
output: /tmp/site-out
ignore:
  - \.DS_Store$
  - /drafts
languages: [en, sr-Latn]
minify:
  html: true
  xml: true
log-level: 3
`), 0o644))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.SourceDir)
	assert.Equal(t, filepath.Clean("/tmp/site-out"), cfg.OutputDir)
	assert.Equal(t, []string{`\.DS_Store$`, "/drafts"}, cfg.Ignore)
	assert.Equal(t, []string{"en", "sr-Latn"}, cfg.Languages)
	assert.Equal(t, Minify{HTML: true, XML: true}, cfg.Minify)
	assert.Equal(t, LogWarning, cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	fn := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("languages: {"), 0o644))
	_, err = LoadConfig(fn)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNormalize(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		SourceDir: filepath.Join(root, "src"),
		OutputDir: filepath.Join(root, "out"),
		Ignore:    []string{`/drafts(/|$)`, `\.bak$`},
	}
	require.NoError(t, cfg.Normalize())

	assert.Equal(t, LogInfo, cfg.LogLevel)
	assert.True(t, cfg.Ignored(filepath.Join(root, "src", "drafts")))
	assert.True(t, cfg.Ignored(filepath.Join(root, "src", "drafts", "a.hb")))
	assert.True(t, cfg.Ignored(filepath.Join(root, "src", "index.hb.bak")))
	assert.False(t, cfg.Ignored(filepath.Join(root, "src", "draftsman.hb")))
	assert.Equal(t, []string{""}, cfg.Targets())
}

func TestNormalizeRejects(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing source", Config{OutputDir: out}},
		{"missing output", Config{SourceDir: src}},
		{"output equals source", Config{SourceDir: src, OutputDir: src}},
		{"output contains source", Config{SourceDir: src, OutputDir: root}},
		{"bad ignore pattern", Config{SourceDir: src, OutputDir: out, Ignore: []string{"("}}},
		{"bad language", Config{SourceDir: src, OutputDir: out, Languages: []string{"not a language"}}},
		{"duplicate language", Config{SourceDir: src, OutputDir: out, Languages: []string{"en", "en"}}},
		{"free-form language name", Config{SourceDir: src, OutputDir: out, Languages: []string{"english"}}},
		{"log level too high", Config{SourceDir: src, OutputDir: out, LogLevel: 5}},
		{"log format", Config{SourceDir: src, OutputDir: out, LogFormat: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.ErrorIs(t, cfg.Normalize(), ErrInvalidConfig)
		})
	}
}

func TestNormalizeAllowsOutputInsideSource(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{SourceDir: root, OutputDir: filepath.Join(root, "_site")}
	assert.NoError(t, cfg.Normalize())
}

func TestTargets(t *testing.T) {
	cfg := &Config{Languages: []string{"en", "de"}}
	assert.Equal(t, []string{"en", "de"}, cfg.Targets())
}
