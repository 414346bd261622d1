package gateway

import (
	"context"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// FetchProfile 拉取当前会话的用户资料
func (c *Client) FetchProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
