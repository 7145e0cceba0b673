// Package database -----------------------------
// @file      : string.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/13 20:37
// -------------------------------------------
package database

import (
	"resp-go/interface/database"
	"resp-go/resp/reply"
)

// getAsString 读取字符串类型的值，key 存在但不是字符串时返回 WRONGTYPE
func (db *DB) getAsString(key string) ([]byte, reply.Value) {
	entity, exists := db.GetEntity(key)
	if !exists {
		return nil, nil
	}
	bytes, ok := entity.Data.([]byte)
	if !ok {
		return nil, reply.MakeWrongTypeErrReply()
	}
	return bytes, nil
}

// GET k1
func execGet(db *DB, args [][]byte) reply.Value {
	bytes, errReply := db.getAsString(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if bytes == nil {
		return reply.MakeNullBulkReply()
	}
	return reply.MakeBulkReply(bytes)
}

// SET k1 v
func execSet(db *DB, args [][]byte) reply.Value {
	db.PutEntity(string(args[0]), &database.DataEntity{
		Data: args[1],
	})
	return reply.MakeOkReply()
}

// SETNX k1 v1
func execSetnx(db *DB, args [][]byte) reply.Value {
	result := db.PutIfAbsent(string(args[0]), &database.DataEntity{
		Data: args[1],
	})
	return reply.MakeInt(result)
}

// GETSET k1 v1
func execGetSet(db *DB, args [][]byte) reply.Value {
	key := string(args[0])
	// 读取原来的值 返回用
	old, errReply := db.getAsString(key)
	if errReply != nil {
		return errReply
	}
	// 设置新的值
	db.PutEntity(key, &database.DataEntity{
		Data: args[1],
	})
	if old == nil {
		return reply.MakeNullBulkReply()
	}
	return reply.MakeBulkReply(old)
}

// STRLEN k1，不存在的 key 长度为 0
func execStrLen(db *DB, args [][]byte) reply.Value {
	bytes, errReply := db.getAsString(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return reply.MakeInt(len(bytes))
}

func init() {
	RegisterCommand("Get", execGet, 2)
	RegisterCommand("Set", execSet, 3)
	RegisterCommand("SetNx", execSetnx, 3)
	RegisterCommand("GetSet", execGetSet, 3)
	RegisterCommand("StrLen", execStrLen, 2)
}
