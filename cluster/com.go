// Package cluster -----------------------------
// @file      : com.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/17 21:22
// -------------------------------------------
package cluster

import (
	"context"
	"errors"
	"strconv"

	"resp-go/interface/resp"
	"resp-go/lib/utils"
	"resp-go/resp/client"
	"resp-go/resp/reply"
)

// 获取一个 peer 的连接
func (cluster *ClusterDatabase) getPeerClient(peer string) (*client.Client, error) {
	p, ok := cluster.peerConnection[peer]
	if !ok {
		return nil, errors.New("connection to " + peer + " not found")
	}
	object, err := p.BorrowObject(context.Background())
	if err != nil {
		return nil, err
	}
	c, ok := object.(*client.Client)
	if !ok {
		return nil, errors.New("wrong type")
	}
	return c, nil
}

// 返回连接
func (cluster *ClusterDatabase) returnPeerClient(peer string, peerClient *client.Client) error {
	p, ok := cluster.peerConnection[peer]
	if !ok {
		return errors.New("connection to " + peer + " not found")
	}
	return p.ReturnObject(context.Background(), peerClient)
}

// relay 指令的转发，peer 是自己时直接本地执行
func (cluster *ClusterDatabase) relay(peer string, c resp.Connection, args [][]byte) reply.Value {
	if peer == cluster.self {
		return cluster.db.Exec(c, args)
	}
	peerClient, err := cluster.getPeerClient(peer)
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error())
	}
	defer func() {
		// 避免连接耗尽
		_ = cluster.returnPeerClient(peer, peerClient)
	}()
	// 先切库 再发送具体指令
	selected := peerClient.Send(utils.ToCmdLine("SELECT", strconv.Itoa(c.GetDBIndex())))
	if reply.IsErrReply(selected) {
		return selected
	}
	return peerClient.Send(args)
}

// broadcast 指令的广播，key 是节点地址
func (cluster *ClusterDatabase) broadcast(c resp.Connection, args [][]byte) map[string]reply.Value {
	results := make(map[string]reply.Value, len(cluster.nodes))
	for _, node := range cluster.nodes {
		results[node] = cluster.relay(node, c, args)
	}
	return results
}

// sumInts 把各节点返回的整数加起来，任何一个节点出错就返回错误
func sumInts(replies map[string]reply.Value) reply.Value {
	var total int64
	for node, r := range replies {
		if reply.IsErrReply(r) {
			e, _ := reply.ToErr(r)
			return reply.MakeErrReply(string(e) + " (node " + node + ")")
		}
		n, err := reply.ToInt(r)
		if err != nil {
			return reply.MakeErrReply("ERR " + err.Error())
		}
		total += n
	}
	return reply.MakeIntReply(total)
}
