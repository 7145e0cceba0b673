// Package cluster -----------------------------
// @file      : keys.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/18 10:49
// -------------------------------------------
package cluster

import (
	"resp-go/interface/resp"
	"resp-go/lib/utils"
	"resp-go/resp/reply"
)

// Del k1 k2 k3 ... 广播给所有节点，删除个数相加
func Del(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	return sumInts(cluster.broadcast(c, cmdArgs))
}

// Exists k1 k2 ... 每个 key 去它所在的节点查，重复的 key 重复计数
func Exists(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	if len(cmdArgs) < 2 {
		return reply.MakeArgNumErrReply(string(cmdArgs[0]))
	}
	var total int64
	for _, key := range cmdArgs[1:] {
		peer := cluster.peerPicker.PickNode(string(key))
		r := cluster.relay(peer, c, utils.ToCmdLine2("exists", key))
		if reply.IsErrReply(r) {
			return r
		}
		n, err := reply.ToInt(r)
		if err != nil {
			return reply.MakeErrReply("ERR " + err.Error())
		}
		total += n
	}
	return reply.MakeIntReply(total)
}

// DBSize 所有节点的 key 个数之和
func DBSize(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	return sumInts(cluster.broadcast(c, cmdArgs))
}

// flushdb 所有节点 ok 才 ok
func flushdb(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	replies := cluster.broadcast(c, cmdArgs)
	for _, r := range replies {
		if reply.IsErrReply(r) {
			return r
		}
	}
	return reply.MakeOkReply()
}

// Rename k1 k2 值不变，两个 key 必须在同一个节点
func Rename(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	if len(cmdArgs) != 3 {
		return reply.MakeArgNumErrReply(string(cmdArgs[0]))
	}
	src := string(cmdArgs[1])
	dest := string(cmdArgs[2])

	srcPeer := cluster.peerPicker.PickNode(src)
	destPeer := cluster.peerPicker.PickNode(dest)

	if srcPeer != destPeer {
		return reply.MakeErrReply("ERR rename must within one peer")
	}
	return cluster.relay(srcPeer, c, cmdArgs)
}
