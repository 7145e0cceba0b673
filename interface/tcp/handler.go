// Package tcp -----------------------------
// @file      : handler.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/16 15:42
// -------------------------------------------
package tcp

import (
	"context"
	"net"
)

// Handler 连接上的业务逻辑处理
type Handler interface {
	Handle(ctx context.Context, conn net.Conn)
	Close() error
}
