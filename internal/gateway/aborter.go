package gateway

import (
	"context"
	"sync"
)

// Aborter 以“代”为单位管理同一逻辑资源的拉取请求：
// 开启新一代会取消上一代仍在途的请求，慢响应不会覆盖新数据。
type Aborter struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Next 开启新一代拉取，返回绑定本代的上下文
func (a *Aborter) Next(parent context.Context) context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel
	return ctx
}

// Abort 取消当前在途的拉取
func (a *Aborter) Abort() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
