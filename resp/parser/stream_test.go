package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"resp-go/resp/protocol"
	"resp-go/resp/reply"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader 每次 Read 只返回一个分片，模拟网络上的分包
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if r.chunks[0] == "" {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func collect(ch <-chan *Payload) []*Payload {
	var out []*Payload
	for p := range ch {
		out = append(out, p)
	}
	return out
}

func TestParseStreamOneByteAtATime(t *testing.T) {
	in := "*2\r\n$5\r\nhello\r\n$5\r\nworld\r\n+OK\r\n:-3\r\n$-1\r\n"
	payloads := collect(ParseStream(iotest.OneByteReader(strings.NewReader(in))))
	require.Len(t, payloads, 5)
	assert.Equal(t, reply.MakeMultiBulkReply([][]byte{[]byte("hello"), []byte("world")}), payloads[0].Data)
	assert.Equal(t, reply.MakeStatusReply("OK"), payloads[1].Data)
	assert.Equal(t, reply.MakeIntReply(-3), payloads[2].Data)
	assert.Equal(t, reply.MakeNullBulkReply(), payloads[3].Data)
	assert.Nil(t, payloads[4].Data)
	assert.Equal(t, io.EOF, payloads[4].Err)
}

func TestParseStreamSplitAcrossTerminator(t *testing.T) {
	r := &chunkReader{chunks: []string{"+PO", "NG\r", "\n$3\r\nfo", "o\r\n"}}
	payloads := collect(ParseStream(r))
	require.Len(t, payloads, 3)
	assert.Equal(t, reply.MakeStatusReply("PONG"), payloads[0].Data)
	assert.Equal(t, reply.MakeBulkReply([]byte("foo")), payloads[1].Data)
	assert.Equal(t, io.EOF, payloads[2].Err)
}

func TestParseStreamContinuesAfterProtocolError(t *testing.T) {
	r := &chunkReader{chunks: []string{"+OK\r\n?bad\r\n:1\r\n", ":2\r\n"}}
	payloads := collect(ParseStream(r))
	require.Len(t, payloads, 4)
	assert.Equal(t, reply.MakeOkReply(), payloads[0].Data)

	require.Error(t, payloads[1].Err)
	assert.ErrorIs(t, payloads[1].Err, protocol.ErrUnknownTag)
	assert.False(t, protocol.IsIncomplete(payloads[1].Err))

	// 出错那一批剩下的 ":1" 被丢弃，下一次读到的数据正常解析
	assert.Equal(t, reply.MakeIntReply(2), payloads[2].Data)
	assert.Equal(t, io.EOF, payloads[3].Err)
}

func TestParseStreamTruncatedAtEOF(t *testing.T) {
	payloads := collect(ParseStream(strings.NewReader("+OK\r\n$5\r\nhel")))
	require.Len(t, payloads, 2)
	assert.Equal(t, reply.MakeOkReply(), payloads[0].Data)
	assert.Equal(t, io.ErrUnexpectedEOF, payloads[1].Err)
}

func TestParseStreamReaderError(t *testing.T) {
	boom := errors.New("boom")
	payloads := collect(ParseStream(iotest.ErrReader(boom)))
	require.Len(t, payloads, 1)
	assert.Equal(t, boom, payloads[0].Err)
}

func TestParseStreamLargeBulkGrowsBuffer(t *testing.T) {
	body := strings.Repeat("x", 3*initBufSize+7)
	in := "$" + strconv.Itoa(len(body)) + "\r\n" + body + "\r\n"
	payloads := collect(ParseStream(strings.NewReader(in)))
	require.Len(t, payloads, 2)
	assert.Equal(t, reply.MakeBulkReply([]byte(body)), payloads[0].Data)
	assert.Equal(t, io.EOF, payloads[1].Err)
}

func TestParseStreamBufferOverflow(t *testing.T) {
	p := New(Limits{MaxBuffered: initBufSize})
	in := "$100000\r\n" + strings.Repeat("x", 2*initBufSize)
	payloads := collect(p.ParseStream(strings.NewReader(in)))
	require.Len(t, payloads, 1)
	assert.Equal(t, ErrBufferOverflow, payloads[0].Err)
}

func TestParseRequestStream(t *testing.T) {
	r := &chunkReader{chunks: []string{"*1\r\n$4\r\nPING\r\n", ":1\r\n", "*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"}}
	payloads := collect(ParseRequestStream(r))
	require.Len(t, payloads, 4)
	assert.Equal(t, reply.MakeMultiBulkReply([][]byte{[]byte("PING")}), payloads[0].Data)

	var pe *protocol.ParseError
	require.True(t, errors.As(payloads[1].Err, &pe))
	assert.Equal(t, protocol.KindUnexpectedTag, pe.Kind)

	assert.Equal(t, reply.MakeMultiBulkReply([][]byte{[]byte("GET"), []byte("k")}), payloads[2].Data)
	assert.Equal(t, io.EOF, payloads[3].Err)
}

func TestParseStreamSkipsDecodeInsideBulk(t *testing.T) {
	body := strings.Repeat("y", 100000)
	in := "$" + strconv.Itoa(len(body)) + "\r\n" + body + "\r\n"
	var chunks []string
	for len(in) > 0 {
		n := min(1000, len(in))
		chunks = append(chunks, in[:n])
		in = in[n:]
	}
	require.Greater(t, len(chunks), 100)

	p := New(DefaultLimits)
	calls := 0
	decode := func(data []byte) (reply.Value, []byte, error) {
		calls++
		return p.Parse(data)
	}
	ch := make(chan *Payload)
	go p.parse0(&chunkReader{chunks: chunks}, ch, decode)
	payloads := collect(ch)
	require.Len(t, payloads, 2)
	assert.Equal(t, reply.MakeBulkReply([]byte(body)), payloads[0].Data)
	assert.Equal(t, io.EOF, payloads[1].Err)
	// 第一次拿到长度，之后等内容收齐再解析一次
	assert.Equal(t, 2, calls)
}
