package config_test

import (
	"testing"
	"time"

	"cascloc/internal/config"
	"cascloc/internal/errors"
	"cascloc/internal/log"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const luaYAML = `languages:
  - name: Lua
    extensions: [lua]
    lineComment: "--"
    blockCommentBegin: "--[["
    blockCommentEnd: "]]"
ignore:
  - build/
  - "!build/keep.txt"
ignoreHidden: false
`

const luaJSON = `{
  "languages": [{"name": "Lua", "extensions": ["lua"], "lineComment": "--"}],
  "ignore": ["dist/"]
}`

func TestLoaderLoadYAMLAndJSON(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.cascloc.yml", []byte(luaYAML), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/extra.json", []byte(luaJSON), 0o644))

	loader := config.NewLoader(fs, log.Discard())

	ctx, found, err := loader.LoadDir("/repo")
	require.NoError(t, err)
	require.True(t, found)
	lua, ok := ctx.Catalog().Lookup(".lua")
	require.True(t, ok)
	assert.Equal(t, "]]", lua.BlockCommentEnd)
	assert.False(t, ctx.IgnoreHidden())
	assert.Len(t, ctx.Rules(), 2)

	ctx, err = loader.Load("/repo/extra.json")
	require.NoError(t, err)
	assert.Equal(t, "dist/", ctx.Rules()[0].Pattern)
	assert.True(t, ctx.IgnoreHidden())
}

func TestLoaderLoadDirMissing(t *testing.T) {
	t.Parallel()

	loader := config.NewLoader(afero.NewMemMapFs(), log.Discard())

	ctx, found, err := loader.LoadDir("/nowhere")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, ctx)
}

func TestLoaderErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("languages: [\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/list.yml", []byte("- a\n- b\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/dir.yml", 0o755))

	loader := config.NewLoader(fs, log.Discard())

	for _, path := range []string{"/bad.yml", "/list.yml", "/dir.yml", "/missing.yml"} {
		_, err := loader.Load(path)
		require.Error(t, err, path)

		var configErr config.ConfigError
		require.True(t, errors.As(err, &configErr), path)
		assert.Equal(t, path, configErr.Path)
	}
}

func TestLoaderCacheInvalidation(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yml", []byte("ignore: [a/]\n"), 0o644))

	loader := config.NewLoader(fs, log.Discard())

	first, err := loader.Load("/c.yml")
	require.NoError(t, err)
	again, err := loader.Load("/c.yml")
	require.NoError(t, err)
	assert.Same(t, first, again)

	require.NoError(t, afero.WriteFile(fs, "/c.yml", []byte("ignore: [a/, bb/]\n"), 0o644))
	require.NoError(t, fs.Chtimes("/c.yml", time.Now(), time.Now().Add(time.Minute)))

	updated, err := loader.Load("/c.yml")
	require.NoError(t, err)
	assert.Len(t, updated.Rules(), 2)
}

func TestEnsureGlobalAndLoadBase(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	loader := config.NewLoader(fs, log.Discard())

	created, err := config.EnsureGlobal(fs, "/home/u/.cascloc.yml")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = config.EnsureGlobal(fs, "/home/u/.cascloc.yml")
	require.NoError(t, err)
	assert.False(t, created)

	// 生成的默认配置可以被重新解析，且与内置配置一致。
	global, err := loader.Load("/home/u/.cascloc.yml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Catalog().Languages(), global.Catalog().Languages())
	assert.Equal(t, patterns(config.Default()), patterns(global))

	require.NoError(t, afero.WriteFile(fs, "/home/v/.cascloc.yml", []byte("ignoreHidden: false\n"), 0o644))
	base, err := loader.LoadBase("/home/v/.cascloc.yml")
	require.NoError(t, err)
	assert.False(t, base.IgnoreHidden())
	_, ok := base.Catalog().Lookup(".py")
	assert.True(t, ok, "builtin languages stay available")
}

func TestGlobalPathEnv(t *testing.T) {
	t.Setenv(config.GlobalPathEnv, "/etc/cascloc.yml")

	path, err := config.GlobalPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/cascloc.yml", path)
}
