// Package keylock 提供按 key 粒度的互斥锁
// 用于序列化同一公会/同一场对战上的"读-改-写"状态变更，
// 避免并发加入与解散、并发出招之间的竞态
package keylock

import "sync"

// KeyLock 按字符串 key 分配互斥锁
// 锁对象懒创建，创建后不回收：公会/对战数量有限，常驻内存可接受
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New 创建 KeyLock 实例
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock 获取指定 key 的互斥锁
func (k *KeyLock) Lock(key string) {
	k.get(key).Lock()
}

// Unlock 释放指定 key 的互斥锁
func (k *KeyLock) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
