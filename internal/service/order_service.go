package service

import (
	"context"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/session"
)

// OrderReadGateway 订单读取接口
type OrderReadGateway interface {
	FetchOrder(ctx context.Context, orderID uint) (*models.Order, error)
	ListOrders(ctx context.Context, userID uint) ([]models.Order, error)
}

// OrderService 订单跟踪读模型
type OrderService struct {
	gw      OrderReadGateway
	session *session.Store
	aborter gateway.Aborter
}

// NewOrderService 创建订单服务
func NewOrderService(gw OrderReadGateway, sessionStore *session.Store) *OrderService {
	return &OrderService{gw: gw, session: sessionStore}
}

// List 拉取当前用户全部订单；新一轮拉取取代上一轮
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	fetchCtx := s.aborter.Next(ctx)
	return s.gw.ListOrders(fetchCtx, userID)
}

// Get 拉取订单详情
func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	if s.session.UserID() == 0 {
		return nil, ErrNotAuthenticated
	}
	return s.gw.FetchOrder(ctx, orderID)
}
