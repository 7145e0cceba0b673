package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	Setup(&Settings{
		Path:       dir,
		Name:       "resp-go",
		Ext:        ".log",
		TimeFormat: "2006-01-02",
		Level:      "debug",
	})
	Info("hello from test")
	Debug("debug line")
	// stdout 是管道时 Sync 会返回 EINVAL，这里只关心文件内容
	_ = Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "resp-go-"))
	assert.True(t, strings.HasSuffix(name, ".log"))
	assert.False(t, strings.HasSuffix(name, "..log"))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "debug line")
}
