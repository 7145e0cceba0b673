// Package database -----------------------------
// @file      : standalone_database.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/13 21:10
// -------------------------------------------
package database

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"resp-go/config"
	"resp-go/interface/resp"
	"resp-go/lib/logger"
	"resp-go/resp/reply"
)

// StandaloneDatabase 单机版，config 中的 databases 个 DB
type StandaloneDatabase struct {
	dbSet []*DB
}

// NewStandaloneDatabase 创建数据库的核心，默认为16个分数据库
func NewStandaloneDatabase() *StandaloneDatabase {
	n := config.Properties.Databases
	if n <= 0 {
		n = 16
	}
	database := &StandaloneDatabase{
		dbSet: make([]*DB, n),
	}
	for i := range database.dbSet {
		database.dbSet[i] = makeDB(i)
	}
	return database
}

// set k v
// get k
// select 2

// Exec 执行命令，SELECT 在这一层处理，其余交给当前选中的 DB
func (database *StandaloneDatabase) Exec(client resp.Connection, args CmdLine) (result reply.Value) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(fmt.Sprintf("exec panic from %s: %v\n%s", client.Name(), err, debug.Stack()))
			result = reply.MakeUnknownErrReply()
		}
	}()
	if len(args) == 0 {
		return reply.MakeErrReply("ERR empty command")
	}

	cmdName := strings.ToLower(string(args[0]))
	if cmdName == "select" {
		if len(args) != 2 {
			return reply.MakeArgNumErrReply("select")
		}
		return execSelect(client, database, args[1:])
	}

	return database.selected(client).Exec(args)
}

func (database *StandaloneDatabase) selected(client resp.Connection) *DB {
	return database.dbSet[client.GetDBIndex()]
}

// Close 没有需要释放的资源
func (database *StandaloneDatabase) Close() {
}

func (database *StandaloneDatabase) AfterClientClose(c resp.Connection) {
}

// select 2
// select a
// select 123123131231
func execSelect(c resp.Connection, database *StandaloneDatabase, args [][]byte) reply.Value {
	dbIndex, err := strconv.Atoi(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR invalid DB index")
	}
	if dbIndex < 0 || dbIndex >= len(database.dbSet) {
		return reply.MakeErrReply("ERR DB index is out of range")
	}
	c.SelectDB(dbIndex)
	return reply.MakeOkReply()
}
