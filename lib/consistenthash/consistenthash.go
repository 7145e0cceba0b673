// Package consistenthash -----------------------------
// @file      : consistenthash.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/16 17:21
// -------------------------------------------
package consistenthash

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

type HashFunc func(data []byte) uint64

// NodeMap is a hash ring. Each node is placed replicas times so that keys
// spread evenly across a small number of peers.
type NodeMap struct {
	// 使用什么哈希函数
	hashFunc HashFunc
	replicas int
	// 环上的哈希值，有序
	nodeHashes []uint64
	// 根据哈希值找到对应节点
	nodeHashMap map[uint64]string
}

// NewNodeMap 没有指定哈希函数时用 xxhash，replicas 小于 1 时按 1 处理
func NewNodeMap(replicas int, hf HashFunc) *NodeMap {
	m := &NodeMap{
		hashFunc:    hf,
		replicas:    max(replicas, 1),
		nodeHashMap: make(map[uint64]string),
	}
	if m.hashFunc == nil {
		m.hashFunc = xxhash.Sum64
	}
	return m
}

func (m *NodeMap) IsEmpty() bool {
	return len(m.nodeHashes) == 0
}

func (m *NodeMap) AddNode(keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		for i := 0; i < m.replicas; i++ {
			// 虚拟节点 "0node" "1node" ...
			hash := m.hashFunc([]byte(strconv.Itoa(i) + key))
			m.nodeHashes = append(m.nodeHashes, hash)
			m.nodeHashMap[hash] = key
		}
	}
	// 哈希环需要有序，以方便后续的查找
	slices.Sort(m.nodeHashes)
}

// PickNode 根据 key 搜索需要落在的节点
func (m *NodeMap) PickNode(key string) string {
	if m.IsEmpty() {
		return ""
	}
	hash := m.hashFunc([]byte(hashTag(key)))
	// 找到第一个大于等于该哈希值的节点的下标
	idx, _ := slices.BinarySearch(m.nodeHashes, hash)
	// 落在最后了，一个环，归为 0 号节点
	if idx == len(m.nodeHashes) {
		idx = 0
	}
	return m.nodeHashMap[m.nodeHashes[idx]]
}

// hashTag 只对 {} 里的内容做哈希，让 {user}:a 和 {user}:b 落在同一节点
func hashTag(key string) string {
	begin := strings.IndexByte(key, '{')
	if begin < 0 {
		return key
	}
	end := strings.IndexByte(key[begin+1:], '}')
	if end <= 0 {
		return key
	}
	return key[begin+1 : begin+1+end]
}
