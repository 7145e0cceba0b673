// Package database -----------------------------
// @file      : ping.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/12 20:11
// -------------------------------------------
package database

import (
	"resp-go/resp/reply"
)

// Ping 不带参数回复 PONG，带参数原样返回
func Ping(db *DB, args [][]byte) reply.Value {
	switch len(args) {
	case 0:
		return reply.MakePongReply()
	case 1:
		return reply.MakeBulkReply(args[0])
	}
	return reply.MakeArgNumErrReply("ping")
}

// ECHO msg
func Echo(db *DB, args [][]byte) reply.Value {
	return reply.MakeBulkReply(args[0])
}

func init() {
	RegisterCommand("ping", Ping, -1)
	RegisterCommand("echo", Echo, 2)
}
