// Package handler -----------------------------
// @file      : handler.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/3 11:20
// -------------------------------------------
package handler

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"resp-go/cluster"
	"resp-go/config"
	"resp-go/database"
	databaseface "resp-go/interface/database"
	"resp-go/lib/logger"
	"resp-go/lib/sync/atomic"
	"resp-go/resp/connection"
	"resp-go/resp/parser"
	"resp-go/resp/protocol"
	"resp-go/resp/reply"
)

var (
	unknownErrReplyBytes = reply.MakeUnknownErrReply().ToBytes()
	errNullArgument      = errors.New("null bulk string in command")
)

// RespHandler 协议层，把 TCP 连接上的请求交给数据库执行
type RespHandler struct {
	// 记录协议层保持连接的用户信息
	activeConn sync.Map
	db         databaseface.Database
	parser     *parser.Parser
	// 并发安全的 bool
	closing atomic.Boolean
}

// MakeHandler 根据配置选择单机或者集群
func MakeHandler() *RespHandler {
	var db databaseface.Database
	if config.Properties.ClusterEnabled() {
		db = cluster.MakeClusterDatabase()
	} else {
		db = database.NewStandaloneDatabase()
	}
	return MakeHandlerWith(db)
}

// MakeHandlerWith serves db with the protocol limits from config.
func MakeHandlerWith(db databaseface.Database) *RespHandler {
	return &RespHandler{
		db:     db,
		parser: parser.New(config.Properties.Limits()),
	}
}

// 关闭一个客户端的连接
func (r *RespHandler) closeClient(client *connection.Connection) {
	_ = client.Close()
	// 客户端关闭后数据库需要做的一些善后操作
	r.db.AfterClientClose(client)
	r.activeConn.Delete(client)
	logger.Info("connection closed: " + client.Name())
}

// Handle 处理 TCP 连接
func (r *RespHandler) Handle(ctx context.Context, conn net.Conn) {
	if r.closing.Get() {
		_ = conn.Close()
		return
	}
	// TCP 的 连接包装为 协议层的连接
	client := connection.NewConn(conn)
	// k 是 client  v 是空结构体  map → set
	r.activeConn.Store(client, struct{}{})
	ch := r.parser.ParseRequestStream(conn)
	defer func() {
		r.closeClient(client)
		// 连接关闭后解析协程可能还在发送，读空管道让它退出
		for range ch {
		}
	}()
	// 监听管道
	for payload := range ch {
		if payload.Err != nil {
			if r.handleError(client, payload.Err) {
				continue
			}
			return
		}
		args, err := commandLine(payload.Data)
		if err != nil {
			if werr := client.Write(reply.MakeProtocolErrReply(err.Error()).ToBytes()); werr != nil {
				return
			}
			continue
		}
		// *0 和 *-1 没有命令可以执行
		if len(args) == 0 {
			continue
		}
		result := r.db.Exec(client, args)
		if result != nil {
			_ = client.Write(result.ToBytes())
		} else {
			_ = client.Write(unknownErrReplyBytes)
		}
	}
}

// handleError 返回 true 表示连接还能继续使用
func (r *RespHandler) handleError(client *connection.Connection, err error) bool {
	// 客户端关闭
	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) {
		return false
	}
	var pe *protocol.ParseError
	if errors.As(err, &pe) || errors.Is(err, parser.ErrBufferOverflow) {
		// 将协议错误回写给客户端
		werr := client.Write(reply.MakeProtocolErrReply(err.Error()).ToBytes())
		// 缓冲区超限后解析已经结束
		return werr == nil && pe != nil
	}
	logger.Warn("read from " + client.Name() + " failed: " + err.Error())
	return false
}

// commandLine 把请求投影成命令行，参数不允许是 null
func commandLine(v reply.Value) ([][]byte, error) {
	arr, err := reply.ToArray(v, reply.ToBulk)
	if err != nil {
		return nil, err
	}
	args := make([][]byte, len(arr.Items))
	for i, item := range arr.Items {
		if item.Null {
			return nil, errNullArgument
		}
		args[i] = item.Arg
	}
	return args, nil
}

// Close 关闭整个 handler
func (r *RespHandler) Close() error {
	logger.Info("handler shutting down ...")
	r.closing.Set(true)
	// 逐步断开每个客户端的连接
	r.activeConn.Range(
		func(key interface{}, value interface{}) bool {
			client := key.(*connection.Connection)
			_ = client.Close()
			return true
		})
	r.db.Close()
	return nil
}
