package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusShipping       = "shipping"
	OrderStatusDelivered      = "delivered"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 支付回跳状态常量（网关 redirect_status 参数）
const (
	RedirectStatusSucceeded  = "succeeded"
	RedirectStatusProcessing = "processing"
	RedirectStatusFailed     = "failed"
)

// 回跳查询参数名
const (
	QueryParamPaymentIntent  = "payment_intent"
	QueryParamRedirectStatus = "redirect_status"
)

// 页面级跳转目标
const (
	RouteHome     = "/"
	RouteCart     = "/cart"
	RouteCheckout = "/checkout"
	RouteOrders   = "/orders"
)

// 支付凭证类型常量
const (
	IntentTypePayment = "payment"
	IntentTypeSetup   = "setup"
)
