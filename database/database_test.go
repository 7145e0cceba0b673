package database

import (
	"testing"

	"resp-go/lib/utils"
	"resp-go/resp/reply"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	dbIndex int
}

func (c *fakeConn) Write([]byte) error { return nil }
func (c *fakeConn) GetDBIndex() int    { return c.dbIndex }
func (c *fakeConn) SelectDB(i int)     { c.dbIndex = i }
func (c *fakeConn) Name() string       { return "fake" }

func exec(db *StandaloneDatabase, conn *fakeConn, cmd ...string) reply.Value {
	return db.Exec(conn, utils.ToCmdLine(cmd...))
}

func TestPingAndEcho(t *testing.T) {
	db := NewStandaloneDatabase()
	conn := &fakeConn{}
	assert.Equal(t, reply.MakePongReply(), exec(db, conn, "PING"))
	assert.Equal(t, reply.MakeBulkReply([]byte("hi")), exec(db, conn, "ping", "hi"))
	assert.True(t, reply.IsErrReply(exec(db, conn, "ping", "a", "b")))
	assert.Equal(t, reply.MakeBulkReply([]byte("hello")), exec(db, conn, "ECHO", "hello"))
	assert.Equal(t, reply.MakeArgNumErrReply("echo"), exec(db, conn, "echo"))
}

func TestStringCommands(t *testing.T) {
	db := NewStandaloneDatabase()
	conn := &fakeConn{}

	assert.Equal(t, reply.MakeNullBulkReply(), exec(db, conn, "GET", "k"))
	assert.Equal(t, reply.MakeOkReply(), exec(db, conn, "SET", "k", "v1"))
	assert.Equal(t, reply.MakeBulkReply([]byte("v1")), exec(db, conn, "GET", "k"))

	assert.Equal(t, reply.MakeIntReply(0), exec(db, conn, "SETNX", "k", "v2"))
	assert.Equal(t, reply.MakeIntReply(1), exec(db, conn, "SETNX", "k2", "v2"))

	assert.Equal(t, reply.MakeBulkReply([]byte("v1")), exec(db, conn, "GETSET", "k", "value"))
	assert.Equal(t, reply.MakeBulkReply([]byte("value")), exec(db, conn, "GET", "k"))
	assert.Equal(t, reply.MakeNullBulkReply(), exec(db, conn, "GETSET", "new", "x"))

	assert.Equal(t, reply.MakeIntReply(5), exec(db, conn, "STRLEN", "k"))
	assert.Equal(t, reply.MakeIntReply(0), exec(db, conn, "STRLEN", "missing"))

	// 空字符串和不存在是两回事
	exec(db, conn, "SET", "empty", "")
	assert.Equal(t, reply.MakeBulkReply([]byte{}), exec(db, conn, "GET", "empty"))
}

func TestKeyCommands(t *testing.T) {
	db := NewStandaloneDatabase()
	conn := &fakeConn{}
	exec(db, conn, "SET", "a", "1")
	exec(db, conn, "SET", "b", "2")

	assert.Equal(t, reply.MakeIntReply(3), exec(db, conn, "EXISTS", "a", "b", "a", "c"))
	assert.Equal(t, reply.MakeIntReply(2), exec(db, conn, "DBSIZE"))
	assert.Equal(t, reply.MakeStatusReply("string"), exec(db, conn, "TYPE", "a"))
	assert.Equal(t, reply.MakeStatusReply("none"), exec(db, conn, "TYPE", "zzz"))

	assert.Equal(t, reply.MakeIntReply(0), exec(db, conn, "RENAMENX", "a", "b"))
	assert.Equal(t, reply.MakeIntReply(1), exec(db, conn, "RENAMENX", "a", "c"))
	assert.Equal(t, reply.MakeOkReply(), exec(db, conn, "RENAME", "c", "b"))
	assert.Equal(t, reply.MakeBulkReply([]byte("1")), exec(db, conn, "GET", "b"))
	assert.Equal(t, reply.MakeErrReply("ERR no such key"), exec(db, conn, "RENAME", "nope", "x"))

	assert.Equal(t, reply.MakeIntReply(1), exec(db, conn, "DEL", "b", "nope"))
	assert.Equal(t, reply.MakeOkReply(), exec(db, conn, "FLUSHDB"))
	assert.Equal(t, reply.MakeIntReply(0), exec(db, conn, "DBSIZE"))
}

func TestSelectIsolatesDatabases(t *testing.T) {
	db := NewStandaloneDatabase()
	conn := &fakeConn{}
	exec(db, conn, "SET", "k", "zero")

	assert.Equal(t, reply.MakeOkReply(), exec(db, conn, "SELECT", "1"))
	assert.Equal(t, 1, conn.GetDBIndex())
	assert.Equal(t, reply.MakeNullBulkReply(), exec(db, conn, "GET", "k"))

	assert.Equal(t, reply.MakeErrReply("ERR invalid DB index"), exec(db, conn, "SELECT", "a"))
	assert.Equal(t, reply.MakeErrReply("ERR DB index is out of range"), exec(db, conn, "SELECT", "16"))
	assert.Equal(t, reply.MakeErrReply("ERR DB index is out of range"), exec(db, conn, "SELECT", "-1"))
	assert.Equal(t, reply.MakeArgNumErrReply("select"), exec(db, conn, "SELECT"))

	exec(db, conn, "SELECT", "0")
	assert.Equal(t, reply.MakeBulkReply([]byte("zero")), exec(db, conn, "GET", "k"))
}

func TestUnknownCommandAndArity(t *testing.T) {
	db := NewStandaloneDatabase()
	conn := &fakeConn{}
	r := exec(db, conn, "NOPE", "x")
	require.True(t, reply.IsErrReply(r))
	assert.Equal(t, "-ERR unknown command 'nope'\r\n", string(r.ToBytes()))

	assert.Equal(t, reply.MakeArgNumErrReply("set"), exec(db, conn, "SET", "k"))
	assert.Equal(t, reply.MakeArgNumErrReply("del"), exec(db, conn, "DEL"))
	assert.True(t, reply.IsErrReply(db.Exec(conn, nil)))

	assert.True(t, IsKnownCommand("GeT"))
	assert.False(t, IsKnownCommand("nope"))
}
