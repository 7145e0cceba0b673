// Package database -----------------------------
// @file      : db.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/10 20:55
// -------------------------------------------
package database

import (
	"strings"

	"resp-go/datastruct/dict"
	"resp-go/interface/database"
	"resp-go/resp/reply"
)

// DB is one logical database: a key space plus the command table.
type DB struct {
	index int
	data  dict.Dict
}

// ExecFunc 执行命令，args 不含命令名
type ExecFunc func(db *DB, args [][]byte) reply.Value

type CmdLine = database.CmdLine

func makeDB(index int) *DB {
	return &DB{
		index: index,
		data:  dict.MakeSyncDict(),
	}
}

// Exec 查表执行一条命令
func (db *DB) Exec(cmdLine CmdLine) reply.Value {
	// PING SET SETNX
	cmdName := strings.ToLower(string(cmdLine[0]))
	cmd, ok := cmdTable[cmdName]
	// 用户发送未知的命令
	if !ok {
		return reply.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.arity, cmdLine) {
		return reply.MakeArgNumErrReply(cmdName)
	}
	// SET K V → K V
	return cmd.executor(db, cmdLine[1:])
}

// 常用的公共方法

func (db *DB) GetEntity(key string) (*database.DataEntity, bool) {
	raw, ok := db.data.Get(key)
	if !ok {
		return nil, false
	}
	entity, _ := raw.(*database.DataEntity)
	return entity, true
}

func (db *DB) PutEntity(key string, entity *database.DataEntity) int {
	return db.data.Put(key, entity)
}

func (db *DB) PutIfExists(key string, entity *database.DataEntity) int {
	return db.data.PutIfExists(key, entity)
}

func (db *DB) PutIfAbsent(key string, entity *database.DataEntity) int {
	return db.data.PutIfAbsent(key, entity)
}

func (db *DB) Remove(key string) int {
	return db.data.Remove(key)
}

// Removes 返回实际删除的 key 的个数
func (db *DB) Removes(keys ...string) (deleted int) {
	for _, key := range keys {
		deleted += db.Remove(key)
	}
	return deleted
}

func (db *DB) Flush() {
	db.data.Clear()
}
