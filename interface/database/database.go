// Package database -----------------------------
// @file      : database.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/3 16:46
// -------------------------------------------
package database

import (
	"resp-go/interface/resp"
	"resp-go/resp/reply"
)

// CmdLine 是一条命令的全部参数，第一个是命令名
type CmdLine = [][]byte

// Database executes command lines on behalf of a client connection.
type Database interface {
	Exec(client resp.Connection, args CmdLine) reply.Value
	Close()
	AfterClientClose(c resp.Connection)
}

// DataEntity 存放在字典里的值
type DataEntity struct {
	Data interface{}
}
