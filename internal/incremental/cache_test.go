package incremental

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "metadata.json")
	m := PackageMetadata{{Name: "@zowe/cli", Version: "7.18.0"}}

	require.NoError(t, SaveCache(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"@zowe/cli","version":"7.18.0"}]`, string(data))

	loaded := LoadCache(path, nil)
	assert.False(t, ShouldRebuild(loaded, m))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestLoadCache_MissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, LoadCache(filepath.Join(dir, "missing.json"), nil))

	corrupt := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))

	var logs bytes.Buffer
	got := LoadCache(corrupt, slog.New(slog.NewTextHandler(&logs, nil)))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "treating as empty")
	assert.Contains(t, logs.String(), string(errors.CategoryCache))
}

func TestLoadPlugins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugins.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "@zowe/zos-ftp-for-zowe-cli": {"package": "@zowe/zos-ftp-for-zowe-cli", "registry": "https://registry.npmjs.org/", "version": "2.1.0"},
  "@zowe/cics-for-zowe-cli": {"package": "@zowe/cics-for-zowe-cli", "version": "5.0.0"}
}`), 0o600))

	plugins, err := LoadPlugins(path)
	require.NoError(t, err)
	assert.Equal(t, []Package{
		{Name: "@zowe/cics-for-zowe-cli", Version: "5.0.0"},
		{Name: "@zowe/zos-ftp-for-zowe-cli", Version: "2.1.0"},
	}, plugins)

	none, err := LoadPlugins(filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	_, err = LoadPlugins(path)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
}
