package handlers

import "github.com/veridia/storefront/internal/provider"

// Handler 店面边缘接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
