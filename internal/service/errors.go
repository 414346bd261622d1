package service

import "errors"

var (
	// ErrNotAuthenticated 未登录
	ErrNotAuthenticated = errors.New("session not authenticated")
	// ErrCartEmpty 购物车为空，结算流程中止
	ErrCartEmpty = errors.New("cart is empty")
	// ErrNoAddress 尚未选择收货地址
	ErrNoAddress = errors.New("shipping address not selected")
	// ErrShippingIncomplete 尚有品牌未选择配送方式
	ErrShippingIncomplete = errors.New("shipping selection incomplete")
	// ErrOrderNotCreated 订单尚未创建
	ErrOrderNotCreated = errors.New("order not created yet")
	// ErrMissingPaymentParams 回跳缺少支付参数
	ErrMissingPaymentParams = errors.New("missing payment parameters")
	// ErrPaymentFailed 网关回跳状态为失败
	ErrPaymentFailed = errors.New("payment failed")
	// ErrInstrumentNotFound 支付方式不存在
	ErrInstrumentNotFound = errors.New("payment instrument not found")
)
