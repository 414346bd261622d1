package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// CreateOrder 以地址与每品牌配送选择创建订单（服务端事务）
func (c *Client) CreateOrder(ctx context.Context, input models.CreateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FetchOrder 拉取订单详情
func (c *Client) FetchOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders 拉取用户全部订单
func (c *Client) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/users/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
