package config

import (
	"os"
	"path/filepath"
	"testing"

	"resp-go/resp/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redis.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	props, err := Load(writeConfig(t, `port = 7000`))
	require.NoError(t, err)
	assert.Equal(t, 7000, props.Port)
	assert.Equal(t, "0.0.0.0", props.Bind)
	assert.Equal(t, 16, props.Databases)
	assert.Equal(t, HandlerResp, props.Handler)
	assert.Equal(t, "0.0.0.0:7000", props.Address())
	assert.False(t, props.ClusterEnabled())
	assert.Equal(t, parser.DefaultLimits, props.Limits())
}

func TestLoadFull(t *testing.T) {
	props, err := Load(writeConfig(t, `
bind = "127.0.0.1"
port = 6380
databases = 4
handler = "echo"
self = "127.0.0.1:6380"
peers = ["127.0.0.1:6381", "127.0.0.1:6382"]
proto_max_depth = 8
proto_max_bulk_len = 1024
proto_max_multibulk_len = -1

[log]
path = "/tmp/logs"
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 4, props.Databases)
	assert.Equal(t, HandlerEcho, props.Handler)
	assert.True(t, props.ClusterEnabled())
	assert.Equal(t, "debug", props.Log.Level)
	assert.Equal(t, "resp-go", props.Log.Name)

	limits := props.Limits()
	assert.Equal(t, 8, limits.MaxDepth)
	assert.EqualValues(t, 1024, limits.MaxBulkLen)
	assert.Zero(t, limits.MaxMultiBulkLen)
	assert.Equal(t, parser.DefaultLimits.MaxBuffered, limits.MaxBuffered)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"port":     `port = 70000`,
		"handler":  `handler = "nope"`,
		"self":     `peers = ["a:1"]`,
		"database": `databases = 0`,
		"syntax":   `port = `,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestSetupConfigMissingFile(t *testing.T) {
	before := Properties
	err := SetupConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Same(t, before, Properties)
}
