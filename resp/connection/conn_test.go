package connection

import (
	"io"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIsSerialised(t *testing.T) {
	server, peer := net.Pipe()
	c := NewConn(server)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Write([]byte("+OK\r\n"))
		}()
	}
	go func() {
		wg.Wait()
		_ = c.Close()
	}()

	got, err := io.ReadAll(peer)
	require.NoError(t, err)
	// 每条回复都是完整的，不会互相穿插
	assert.Equal(t, "+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n", string(got))
}

func TestSelectDBAndEmptyWrite(t *testing.T) {
	server, peer := net.Pipe()
	defer peer.Close()
	c := NewConn(server)
	assert.Equal(t, 0, c.GetDBIndex())
	c.SelectDB(3)
	assert.Equal(t, 3, c.GetDBIndex())
	assert.NoError(t, c.Write(nil))
	assert.NotNil(t, c.RemoteAddr())
	require.NoError(t, c.Close())
}
