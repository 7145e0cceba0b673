// Package dict -----------------------------
// @file      : sync_dict.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/4 19:40
// -------------------------------------------
package dict

import "github.com/puzpuzpuz/xsync/v4"

// SyncDict 并发安全的字典，底层是 xsync.Map
// 判断存在和写入在同一个 Compute 里完成，不会出现 Load 之后被别人抢先写入
type SyncDict struct {
	m *xsync.Map[string, interface{}]
}

func MakeSyncDict() *SyncDict {
	return &SyncDict{
		m: xsync.NewMap[string, interface{}](),
	}
}

func (dict *SyncDict) Get(key string) (val interface{}, exists bool) {
	return dict.m.Load(key)
}

func (dict *SyncDict) Len() int {
	return dict.m.Size()
}

func (dict *SyncDict) Put(key string, val interface{}) (result int) {
	_, loaded := dict.m.LoadAndStore(key, val)
	if loaded {
		return 0
	}
	return 1
}

// PutIfAbsent 没有的时候插入
func (dict *SyncDict) PutIfAbsent(key string, val interface{}) (result int) {
	_, loaded := dict.m.LoadOrStore(key, val)
	if loaded {
		return 0
	}
	return 1
}

// PutIfExists 只覆盖已有的 key
func (dict *SyncDict) PutIfExists(key string, val interface{}) (result int) {
	dict.m.Compute(key, func(old interface{}, loaded bool) (interface{}, xsync.ComputeOp) {
		if !loaded {
			return old, xsync.CancelOp
		}
		result = 1
		return val, xsync.UpdateOp
	})
	return result
}

func (dict *SyncDict) Remove(key string) (result int) {
	_, loaded := dict.m.LoadAndDelete(key)
	if loaded {
		return 1
	}
	return 0
}

func (dict *SyncDict) ForEach(consumer Consumer) {
	dict.m.Range(func(key string, value interface{}) bool {
		return consumer(key, value)
	})
}

func (dict *SyncDict) Keys() []string {
	result := make([]string, 0, dict.m.Size())
	dict.m.Range(func(key string, _ interface{}) bool {
		result = append(result, key)
		return true
	})
	return result
}

func (dict *SyncDict) Clear() {
	dict.m.Clear()
}
