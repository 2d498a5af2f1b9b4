package builder

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/MarkoPapic/static-website-builder/logging"
	"github.com/MarkoPapic/static-website-builder/model"
	"github.com/stretchr/testify/require"
)

// writeTree creates files below dir; keys are slash separated paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for fn, content := range files {
		fn = filepath.Join(dir, filepath.FromSlash(fn))
		require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0o755))
		require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	}
}

// readTree returns every file below dir keyed by its slash separated
// relative path.
func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	ret := map[string]string{}
	err := filepath.WalkDir(dir, func(fn string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		buf, err := os.ReadFile(fn)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, fn)
		if err != nil {
			return err
		}
		ret[filepath.ToSlash(rel)] = string(buf)
		return nil
	})
	require.NoError(t, err)
	return ret
}

// newConfig returns a normalized config for a src/out pair below a temp dir.
func newConfig(t *testing.T, mutate func(*model.Config)) *model.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &model.Config{
		SourceDir: filepath.Join(root, "src"),
		OutputDir: filepath.Join(root, "out"),
		LogLevel:  model.LogDebug,
	}
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o755))
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Normalize())
	return cfg
}

// build runs a build and returns the report together with the log output.
func build(t *testing.T, cfg *model.Config) (*Report, string, error) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: cfg.LogLevel, Output: &buf})
	report, err := Build(cfg, log)
	return report, buf.String(), err
}
