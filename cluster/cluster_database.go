// Package cluster -----------------------------
// @file      : cluster_database.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/17 14:21
// -------------------------------------------
package cluster

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"resp-go/config"
	"resp-go/database"
	databaseface "resp-go/interface/database"
	"resp-go/interface/resp"
	"resp-go/lib/consistenthash"
	"resp-go/lib/logger"
	"resp-go/resp/reply"

	pool "github.com/jolestar/go-commons-pool/v2"
)

// 一致性哈希环上每个节点的虚拟节点数
const replicas = 16

// ClusterDatabase routes keyed commands to the node owning the key and runs
// the rest locally.
type ClusterDatabase struct {
	// 自己的信息
	self string
	// 集群的信息 self + peers
	nodes []string
	// 一致性哈希
	peerPicker *consistenthash.NodeMap
	// 客户端连接池，key 是 peer 节点的地址
	// 如：3 个 节点 需要 2 个池子
	peerConnection map[string]*pool.ObjectPool
	// 本节点的单机数据库
	db databaseface.Database
}

// MakeClusterDatabase 按照 config 中的 self 和 peers 初始化
func MakeClusterDatabase() *ClusterDatabase {
	return NewClusterDatabase(config.Properties.Self, config.Properties.Peers, database.NewStandaloneDatabase())
}

// NewClusterDatabase builds a node named self that serves its share of the
// key space from local and relays the rest to peers.
func NewClusterDatabase(self string, peers []string, local databaseface.Database) *ClusterDatabase {
	cluster := &ClusterDatabase{
		self:           self,
		db:             local,
		peerPicker:     consistenthash.NewNodeMap(replicas, nil),
		peerConnection: make(map[string]*pool.ObjectPool),
	}
	// IP:PORT 作为 哈希的 key
	nodes := make([]string, 0, len(peers)+1)
	ctx := context.Background()
	for _, peer := range peers {
		if peer == "" || peer == self {
			continue
		}
		nodes = append(nodes, peer)
		// 初始化连接池 self 到每一个 peer
		cluster.peerConnection[peer] = newPeerPool(ctx, peer)
	}
	nodes = append(nodes, self)
	cluster.peerPicker.AddNode(nodes...)
	cluster.nodes = nodes
	return cluster
}

// CmdFunc 集群模式下一条命令的执行方式
type CmdFunc func(cluster *ClusterDatabase, c resp.Connection, cmdArgs [][]byte) reply.Value

var router = makeRouter()

// Exec 集群层的执行替代单机版的执行
func (cluster *ClusterDatabase) Exec(c resp.Connection, args databaseface.CmdLine) (result reply.Value) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(fmt.Sprintf("cluster exec panic: %v\n%s", err, debug.Stack()))
			result = reply.MakeUnknownErrReply()
		}
	}()
	if len(args) == 0 {
		return reply.MakeErrReply("ERR empty command")
	}

	cmdName := strings.ToLower(string(args[0]))
	cmdFunc, ok := router[cmdName]
	if !ok {
		if database.IsKnownCommand(cmdName) {
			return reply.MakeErrReply("ERR command '" + cmdName + "' is not supported in cluster mode")
		}
		return reply.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	return cmdFunc(cluster, c, args)
}

// Owner returns the node responsible for key.
func (cluster *ClusterDatabase) Owner(key string) string {
	return cluster.peerPicker.PickNode(key)
}

func (cluster *ClusterDatabase) Close() {
	ctx := context.Background()
	for _, p := range cluster.peerConnection {
		p.Close(ctx)
	}
	cluster.db.Close()
}

func (cluster *ClusterDatabase) AfterClientClose(c resp.Connection) {
	cluster.db.AfterClientClose(c)
}
