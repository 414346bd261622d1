package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// ListSubscriptions 拉取用户已订阅品牌
func (c *Client) ListSubscriptions(ctx context.Context, userID uint) ([]models.BrandSubscription, error) {
	var subs []models.BrandSubscription
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/subscriptions/%d", userID), nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SubscribeBrand 订阅品牌（幂等）
func (c *Client) SubscribeBrand(ctx context.Context, userID, brandID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/subscriptions/%d/brands/%d", userID, brandID), nil, nil)
}

// UnsubscribeBrand 取消订阅品牌（幂等）
func (c *Client) UnsubscribeBrand(ctx context.Context, userID, brandID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subscriptions/%d/brands/%d", userID, brandID), nil, nil)
}
