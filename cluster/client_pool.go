// Package cluster  -----------------------------
// @file      : client_pool.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/17 14:39
// -------------------------------------------
package cluster

import (
	"context"
	"errors"

	"resp-go/resp/client"

	pool "github.com/jolestar/go-commons-pool/v2"
)

// 每个 peer 最多同时借出的连接数
const maxPeerConns = 16

type connectionFactory struct {
	// 保存连接节点的地址
	Peer string
}

func newPeerPool(ctx context.Context, peer string) *pool.ObjectPool {
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = maxPeerConns
	cfg.MaxIdle = maxPeerConns
	// 借出前检查客户端没有因为重连失败而关闭
	cfg.TestOnBorrow = true
	return pool.NewObjectPool(ctx, &connectionFactory{Peer: peer}, cfg)
}

func (f *connectionFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	c, err := client.MakeClient(f.Peer)
	if err != nil {
		return nil, err
	}
	c.Start()
	return pool.NewPooledObject(c), nil
}

func (f *connectionFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	c, ok := object.Object.(*client.Client)
	if !ok {
		return errors.New("type mismatch")
	}
	c.Close()
	return nil
}

func (f *connectionFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	c, ok := object.Object.(*client.Client)
	return ok && c.Alive()
}

func (f *connectionFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

func (f *connectionFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}
