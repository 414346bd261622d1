package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// FetchCart 拉取用户购物车
func (c *Client) FetchCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cart/%d", userID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
