// Package tcp -------------------------------
// @file      : echo.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/15 19:44
// -------------------------------------------
package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"resp-go/lib/logger"
	"resp-go/lib/sync/atomic"
	"resp-go/lib/sync/wait"
	"resp-go/resp/parser"
	"resp-go/resp/reply"
)

// EchoClient 回显模式下的一个客户端
type EchoClient struct {
	Conn net.Conn
	// 用自己包装的 WaitGroup 加入超时的功能
	Waiting wait.Wait
}

func (e *EchoClient) Close() error {
	// 关闭客户端前有个等待超时的时间
	e.Waiting.WaitWithTimeout(10 * time.Second)
	return e.Conn.Close()
}

func (e *EchoClient) write(b []byte) error {
	// 正在进行业务 不要关闭 除非是超时了
	e.Waiting.Add(1)
	defer e.Waiting.Done()
	_, err := e.Conn.Write(b)
	return err
}

// EchoHandler parses every message it receives and writes back the debug
// rendering followed by a newline. Useful for inspecting what a client sends.
type EchoHandler struct {
	// 记录有多少个连接
	activeConn sync.Map
	// 原子的 bool
	closing atomic.Boolean
	parser  *parser.Parser
}

func MakeEchoHandler(limits parser.Limits) *EchoHandler {
	return &EchoHandler{
		parser: parser.New(limits),
	}
}

func (handler *EchoHandler) Handle(ctx context.Context, conn net.Conn) {
	// 如果客户端是正在关闭中的
	if handler.closing.Get() {
		_ = conn.Close()
		return
	}
	client := &EchoClient{
		Conn: conn,
	}
	// 记录所有连接的客户端，只需要 key 不需要 val
	handler.activeConn.Store(client, struct{}{})
	ch := handler.parser.ParseStream(conn)
	defer func() {
		_ = client.Close()
		handler.activeConn.Delete(client)
		for range ch {
		}
	}()
	for payload := range ch {
		var line []byte
		if payload.Err != nil {
			if errors.Is(payload.Err, io.EOF) || errors.Is(payload.Err, net.ErrClosed) {
				logger.Info("connection close: " + conn.RemoteAddr().String())
				return
			}
			line = []byte("protocol error: " + payload.Err.Error())
		} else {
			line = reply.Render(payload.Data, reply.DebugMode)
		}
		if err := client.write(append(line, '\n')); err != nil {
			logger.Warn(err)
			return
		}
	}
}

func (handler *EchoHandler) Close() error {
	logger.Info("echo handler shutting down ...")
	handler.closing.Set(true)
	handler.activeConn.Range(func(key, value interface{}) bool {
		client := key.(*EchoClient)
		_ = client.Conn.Close()
		return true
	})
	return nil
}
