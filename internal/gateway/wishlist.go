package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// ListWishlist 拉取用户心愿单
func (c *Client) ListWishlist(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/wishlist/%d", userID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddWishlistItem 加入心愿单（幂等）
func (c *Client) AddWishlistItem(ctx context.Context, userID, productID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/wishlist/%d/products/%d", userID, productID), nil, nil)
}

// RemoveWishlistItem 移出心愿单（幂等）
func (c *Client) RemoveWishlistItem(ctx context.Context, userID, productID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d/products/%d", userID, productID), nil, nil)
}
