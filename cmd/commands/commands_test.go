package commands

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggestbox/internal/config"
	"suggestbox/internal/domain"
	"suggestbox/internal/server"
	"suggestbox/internal/source"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewConfigCommand()
	root.Use = "suggestbox"
	root.AddCommand(NewQueryCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.True(t, cfg.UI.AutoSelectFirst)

	_, err = execute(t, "init", "--config", path)
	require.Error(t, err, "existing file must not be overwritten without --force")

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestQueryPrintsSuggestions(t *testing.T) {
	t.Setenv(config.EnvEndpoint, "")
	src := source.NewStaticSource([]domain.Suggestion{
		{Text: "apple", ID: "1"},
		{Text: "apricot"},
		{Text: "banana"},
	}, domain.ModeList, 0)
	srv := httptest.NewServer(server.NewHandler(src).Routes())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n"), 0644))

	out, err := execute(t, "query", "ap", "--config", path, "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "apple\napricot\n", out)

	out, err = execute(t, "query", "ap", "--config", path, "--endpoint", srv.URL, "--ids")
	require.NoError(t, err)
	assert.Equal(t, "1\tapple\napricot\n", out)
}

func TestQueryRejectsInvalidEndpoint(t *testing.T) {
	t.Setenv(config.EnvEndpoint, "")
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "query", "ap", "--config", path, "--endpoint", "ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}
