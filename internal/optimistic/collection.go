// Package optimistic 提供“先本地生效、失败回滚”的乐观更新原语。
// 心愿单、品牌订阅、默认支付方式等小型服务端集合共用同一套约定：
// 快照 -> 本地同步写入 -> 网络提交 -> 失败恢复快照；
// 同一 key 的后发意图永远胜出，过期的在途结果直接丢弃。
package optimistic

import (
	"context"
	"sync"
)

// Commit 网络提交动作
type Commit func(ctx context.Context) error

// Collection 按 key 维护的乐观布尔/选择映射
type Collection[K comparable, V any] struct {
	mu          sync.Mutex
	values      map[K]V
	generations map[K]uint64
	inFlight    map[K]int
}

// NewCollection 创建空集合
func NewCollection[K comparable, V any]() *Collection[K, V] {
	return &Collection[K, V]{
		values:      make(map[K]V),
		generations: make(map[K]uint64),
		inFlight:    make(map[K]int),
	}
}

// Replace 用服务端数据整体覆盖本地集合（列表拉取后调用）
func (c *Collection[K, V]) Replace(values map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[K]V, len(values))
	for k, v := range values {
		c.values[k] = v
	}
}

// Get 读取某 key 的当前本地值
func (c *Collection[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

// Snapshot 返回当前集合的副本
func (c *Collection[K, V]) Snapshot() map[K]V {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[K]V, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// InFlight 某 key 是否有在途提交
func (c *Collection[K, V]) InFlight(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[key] > 0
}

// Apply 乐观写入 key 的期望值并异步提交。
// 返回时本地状态已生效；commit 失败且没有更新的意图时恢复先前值。
// 过期分辨（同 key 已有更新一代意图）的结果不论成败都被丢弃。
func (c *Collection[K, V]) Apply(ctx context.Context, key K, desired V, commit Commit) error {
	c.mu.Lock()
	previous, hadPrevious := c.values[key]
	c.values[key] = desired
	c.generations[key]++
	generation := c.generations[key]
	c.inFlight[key]++
	c.mu.Unlock()

	err := commit(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[key] > 0 {
		c.inFlight[key]--
	}
	if c.generations[key] != generation {
		// 后发意图已生效，本次结果作废
		return nil
	}
	if err != nil {
		if hadPrevious {
			c.values[key] = previous
		} else {
			delete(c.values, key)
		}
		return err
	}
	return nil
}

// Value 整体快照式乐观状态，用于删除/重排整个集合的场景
type Value[T any] struct {
	mu         sync.Mutex
	current    T
	generation uint64
	inFlight   int
}

// NewValue 创建整体乐观状态
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get 读取当前本地值
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set 用服务端数据覆盖本地值
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = value
}

// InFlight 是否有在途提交
func (v *Value[T]) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight > 0
}

// Apply 乐观替换整体值并提交，约定与 Collection.Apply 一致
func (v *Value[T]) Apply(ctx context.Context, next T, commit Commit) error {
	v.mu.Lock()
	previous := v.current
	v.current = next
	v.generation++
	generation := v.generation
	v.inFlight++
	v.mu.Unlock()

	err := commit(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight > 0 {
		v.inFlight--
	}
	if v.generation != generation {
		return nil
	}
	if err != nil {
		v.current = previous
		return err
	}
	return nil
}
