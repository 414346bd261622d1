package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/constants"
	"github.com/veridia/storefront/internal/models"
)

// createIntentInput 创建支付凭证请求体
type createIntentInput struct {
	OrderID   uint   `json:"order_id,omitempty"`
	Type      string `json:"type"` // payment / setup
	ReturnURL string `json:"return_url"`
}

// confirmPaymentInput 支付确认请求体
type confirmPaymentInput struct {
	OrderID         uint   `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// CreatePaymentIntent 为订单申请支付凭证（网关托管页使用）
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID uint, returnURL string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	input := createIntentInput{OrderID: orderID, Type: constants.IntentTypePayment, ReturnURL: returnURL}
	if err := c.do(ctx, http.MethodPost, "/payments/intents", input, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ConfirmPayment 以回跳参数与后端交换，完成支付确认
func (c *Client) ConfirmPayment(ctx context.Context, orderID uint, paymentIntentID string) (*models.PaymentConfirmation, error) {
	var confirmation models.PaymentConfirmation
	input := confirmPaymentInput{OrderID: orderID, PaymentIntentID: paymentIntentID}
	path := fmt.Sprintf("/payments/orders/%d/confirm", orderID)
	if err := c.do(ctx, http.MethodPost, path, input, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}
