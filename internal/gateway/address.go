package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// ListAddresses 拉取用户收货地址
func (c *Client) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/addresses/%d", userID), nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}
