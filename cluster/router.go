// Package cluster -----------------------------
// @file      : router.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/18 10:08
// -------------------------------------------
package cluster

import (
	"resp-go/interface/resp"
	"resp-go/resp/reply"
)

func makeRouter() map[string]CmdFunc {
	routerMap := make(map[string]CmdFunc)
	// 可以直接转发的指令，第一个参数是 key
	routerMap["type"] = defaultFunc
	routerMap["set"] = defaultFunc
	routerMap["setnx"] = defaultFunc
	routerMap["get"] = defaultFunc
	routerMap["getset"] = defaultFunc
	routerMap["strlen"] = defaultFunc
	// 特殊模式的指令
	routerMap["ping"] = local
	routerMap["echo"] = local
	// 转发的时候会补上 select 信息，所以这边只要自己执行一下记录在本地就行了
	routerMap["select"] = local
	routerMap["exists"] = Exists
	routerMap["rename"] = Rename
	routerMap["renamenx"] = Rename
	routerMap["flushdb"] = flushdb
	routerMap["dbsize"] = DBSize
	routerMap["del"] = Del
	return routerMap
}

// GET Key
// SET k1 v1
func defaultFunc(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	if len(cmdArgs) < 2 {
		return reply.MakeArgNumErrReply(string(cmdArgs[0]))
	}
	// 根据数据的 key 来选择要执行的节点
	key := string(cmdArgs[1])
	peer := cluster.peerPicker.PickNode(key)
	return cluster.relay(peer, c, cmdArgs)
}

// local 不涉及 key 的指令在本节点执行
func local(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value {
	return cluster.db.Exec(c, cmdArgs)
}
