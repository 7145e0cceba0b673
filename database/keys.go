// Package database -----------------------------
// @file      : keys.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/12 20:22
// -------------------------------------------
package database

import (
	"resp-go/resp/reply"
)

// DEL k1 k2 k3 ...
func execDel(db *DB, args [][]byte) reply.Value {
	keys := make([]string, len(args))
	for i, v := range args {
		keys[i] = string(v)
	}
	deleted := db.Removes(keys...)
	return reply.MakeInt(deleted)
}

// EXISTS k1 k2 k3 ... 重复的 key 重复计数
func execExists(db *DB, args [][]byte) reply.Value {
	result := 0
	for _, arg := range args {
		if _, exists := db.GetEntity(string(arg)); exists {
			result++
		}
	}
	return reply.MakeInt(result)
}

// FLUSHDB
func execFlushDB(db *DB, args [][]byte) reply.Value {
	db.Flush()
	return reply.MakeOkReply()
}

// DBSIZE
func execDBSize(db *DB, args [][]byte) reply.Value {
	return reply.MakeInt(db.data.Len())
}

// TYPE k1
func execType(db *DB, args [][]byte) reply.Value {
	entity, exists := db.GetEntity(string(args[0]))
	if !exists {
		return reply.MakeStatusReply("none")
	}
	switch entity.Data.(type) {
	case []byte:
		return reply.MakeStatusReply("string")
	}
	return reply.MakeUnknownErrReply()
}

// RENAME k1 k2
func execRename(db *DB, args [][]byte) reply.Value {
	src := string(args[0])
	dest := string(args[1])
	entity, ok := db.GetEntity(src)
	if !ok {
		return reply.MakeErrReply("ERR no such key")
	}
	if src == dest {
		return reply.MakeOkReply()
	}
	db.PutEntity(dest, entity)
	db.Remove(src)
	return reply.MakeOkReply()
}

// RENAMENX k1 k2，k2 已经存在时不做任何事返回 0
func execRenameNx(db *DB, args [][]byte) reply.Value {
	src := string(args[0])
	dest := string(args[1])
	entity, ok := db.GetEntity(src)
	if !ok {
		return reply.MakeErrReply("ERR no such key")
	}
	if db.PutIfAbsent(dest, entity) == 0 {
		return reply.MakeIntReply(0)
	}
	db.Remove(src)
	return reply.MakeIntReply(1)
}

func init() {
	RegisterCommand("Del", execDel, -2)
	RegisterCommand("Exists", execExists, -2)
	RegisterCommand("FlushDB", execFlushDB, -1)
	RegisterCommand("DBSize", execDBSize, 1)
	RegisterCommand("Type", execType, 2)
	RegisterCommand("Rename", execRename, 3)
	RegisterCommand("RenameNx", execRenameNx, 3)
}
