// Package tcp -----------------------------
// @file      : server.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/15 19:34
// -------------------------------------------
package tcp

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"resp-go/interface/tcp"
	"resp-go/lib/logger"
)

// Config tcp连接配置信息
type Config struct {
	// Address is the host:port to listen on, e.g. "0.0.0.0:6379".
	Address string
}

// ListenAndServeWithSignal listens on cfg.Address and serves every accepted
// connection with handler until the process receives SIGHUP, SIGQUIT,
// SIGTERM or SIGINT. It returns an error only when the listen itself fails.
// On a signal the listener and handler are closed and the call returns
// once all connections have finished.
func ListenAndServeWithSignal(cfg *Config, handler tcp.Handler) error {
	closeChan := make(chan struct{})
	// 获取操作系统给程序发送的信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	// 转发信号到自定义的 closeChan
	go func() {
		sig := <-sigChan
		switch sig {
		case syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
			close(closeChan)
		}
	}()

	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}
	logger.Info("start listen on " + listener.Addr().String())
	ListenAndServe(listener, handler, closeChan)
	return nil
}

// ListenAndServe accepts connections on listener and runs handler.Handle for
// each one in its own goroutine. It stops accepting when closeChan is closed
// or Accept fails. Either way listener and handler are closed, and it returns
// only after every Handle call has returned, so the caller may reuse
// whatever the handler shares.
func ListenAndServe(listener net.Listener, handler tcp.Handler, closeChan <-chan struct{}) {
	// stopped 在 Accept 出错退出循环时关闭
	stopped := make(chan struct{})
	closed := make(chan struct{})
	// 监听应用程序被关闭的系统信号，listener 和 handler 只在这里关闭一次
	go func() {
		defer close(closed)
		select {
		case <-closeChan:
			logger.Info("shutting down")
		case <-stopped:
		}
		_ = listener.Close()
		_ = handler.Close()
	}()
	ctx := context.Background()
	var waitDone sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			// closeChan 触发的关闭不算错误
			if !errors.Is(err, net.ErrClosed) {
				logger.Error("accept error: " + err.Error())
			}
			break
		}
		logger.Debug("accepted link: " + conn.RemoteAddr().String())
		waitDone.Add(1)
		// 一个协程处理一个连接
		go func() {
			// 防止连接出现 panic 导致没 Done()
			defer waitDone.Done()
			handler.Handle(ctx, conn)
		}()
	}
	close(stopped)
	// handler 关闭后已存在的连接陆续结束
	waitDone.Wait()
	<-closed
}
