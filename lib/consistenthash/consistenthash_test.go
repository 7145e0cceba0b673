package consistenthash

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickNodeEmpty(t *testing.T) {
	m := NewNodeMap(3, nil)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, "", m.PickNode("k"))
}

func TestPickNodeWithFixedHash(t *testing.T) {
	// 哈希值就是 key 转成的数字
	hash := func(data []byte) uint64 {
		n, _ := strconv.ParseUint(string(data), 10, 64)
		return n
	}
	m := NewNodeMap(1, hash)
	// 节点 "2" "4" "6" 在环上的位置是 2 4 6 (前缀 0)
	m.AddNode("2", "4", "6", "")

	assert.Equal(t, "2", m.PickNode("1"))
	assert.Equal(t, "2", m.PickNode("2"))
	assert.Equal(t, "4", m.PickNode("3"))
	assert.Equal(t, "6", m.PickNode("5"))
	// 绕回环的起点
	assert.Equal(t, "2", m.PickNode("7"))
}

func TestPickNodeIsStable(t *testing.T) {
	m := NewNodeMap(16, nil)
	m.AddNode("127.0.0.1:6379", "127.0.0.1:6380", "127.0.0.1:6381")
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		key := "key" + strconv.Itoa(i)
		node := m.PickNode(key)
		assert.Equal(t, node, m.PickNode(key))
		seen[node] = true
	}
	assert.Len(t, seen, 3)
}

func TestHashTag(t *testing.T) {
	assert.Equal(t, "user", hashTag("{user}:name"))
	assert.Equal(t, "a{}b", hashTag("a{}b"))
	assert.Equal(t, "a{b", hashTag("a{b"))
	assert.Equal(t, "plain", hashTag("plain"))

	m := NewNodeMap(16, nil)
	m.AddNode("a", "b", "c")
	assert.Equal(t, m.PickNode("{user}:1"), m.PickNode("{user}:2"))
}
