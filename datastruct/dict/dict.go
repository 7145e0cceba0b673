// Package dict -----------------------------
// @file      : dict.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/4 19:03
// -------------------------------------------
package dict

// Consumer 返回 false 时停止遍历
type Consumer func(key string, val interface{}) bool

// Dict is the key space of one logical database.
type Dict interface {
	Get(key string) (val interface{}, exists bool)
	Len() int
	// Put 返回新增了几个 key，覆盖已有的 key 返回 0
	Put(key string, val interface{}) (result int)
	PutIfAbsent(key string, val interface{}) int
	PutIfExists(key string, val interface{}) int
	Remove(key string) (result int)
	// ForEach 方法施加到所有的 kv 元素
	ForEach(consumer Consumer)
	Keys() []string
	Clear()
}
