package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veridia/storefront/internal/models"
)

// ListPaymentInstruments 拉取已保存支付方式
func (c *Client) ListPaymentInstruments(ctx context.Context, userID uint) ([]models.PaymentInstrument, error) {
	var instruments []models.PaymentInstrument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payment-instruments/%d", userID), nil, &instruments); err != nil {
		return nil, err
	}
	return instruments, nil
}

// SetDefaultPaymentInstrument 设置默认支付方式（幂等）
func (c *Client) SetDefaultPaymentInstrument(ctx context.Context, userID uint, instrumentID string) error {
	path := fmt.Sprintf("/payment-instruments/%d/default/%s", userID, url.PathEscape(instrumentID))
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// RemovePaymentInstrument 删除已保存支付方式（幂等）
func (c *Client) RemovePaymentInstrument(ctx context.Context, userID uint, instrumentID string) error {
	path := fmt.Sprintf("/payment-instruments/%d/%s", userID, url.PathEscape(instrumentID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
