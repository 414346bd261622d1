package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/veridia/storefront/internal/constants"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/models"
)

// ConfirmState 支付确认守卫状态
type ConfirmState int

const (
	// ConfirmIdle 初始态，可发起确认
	ConfirmIdle ConfirmState = iota
	// ConfirmArmed 确认请求在途；重入直接跳过
	ConfirmArmed
	// ConfirmConfirmed 已确认成功，终态
	ConfirmConfirmed
	// ConfirmFailed 网关回跳即失败，终态
	ConfirmFailed
)

// PaymentConfirmGateway 支付确认接口
type PaymentConfirmGateway interface {
	ConfirmPayment(ctx context.Context, orderID uint, paymentIntentID string) (*models.PaymentConfirmation, error)
}

// ConfirmOutcome 一次回跳处理的结果
type ConfirmOutcome struct {
	Confirmed bool   // 本次调用完成了确认
	Skipped   bool   // 守卫已上膛或已确认，本次为空操作
	Redirect  string // 需要跳转的路由，空串表示停留当前页
	Err       error
}

// confirmKey 守卫按 (orderID, paymentIntentID) 对定位
type confirmKey struct {
	orderID  uint
	intentID string
}

// PaymentConfirmService 支付确认守卫：同一 (订单, 支付凭证) 对的确认
// 至多发出一次网络调用，容忍路由层重复挂载带来的重入。
type PaymentConfirmService struct {
	gw       PaymentConfirmGateway
	checkout *CheckoutService

	mu     sync.Mutex
	states map[confirmKey]ConfirmState
}

// NewPaymentConfirmService 创建支付确认守卫
func NewPaymentConfirmService(gw PaymentConfirmGateway, checkout *CheckoutService) *PaymentConfirmService {
	return &PaymentConfirmService{
		gw:       gw,
		checkout: checkout,
		states:   make(map[confirmKey]ConfirmState),
	}
}

// StateOf 读取某 (订单, 凭证) 对的守卫状态
func (s *PaymentConfirmService) StateOf(orderID uint, paymentIntentID string) ConfirmState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[confirmKey{orderID: orderID, intentID: paymentIntentID}]
}

// Handle 处理一次支付回跳。
// 上膛先于网络调用：重入方看到 Armed 即整体跳过，这是幂等保证的核心；
// 确认调用失败则退膛回 Idle，允许恰好一次人工重试。
func (s *PaymentConfirmService) Handle(ctx context.Context, orderID uint, paymentIntentID, redirectStatus string) ConfirmOutcome {
	if orderID == 0 || paymentIntentID == "" {
		// 无从守卫，直接离开
		return ConfirmOutcome{Redirect: constants.RouteHome, Err: ErrMissingPaymentParams}
	}
	key := confirmKey{orderID: orderID, intentID: paymentIntentID}

	if redirectStatus != constants.RedirectStatusSucceeded {
		// 非成功回跳视作支付失败，永久封存该对，引导回结算页
		s.mu.Lock()
		s.states[key] = ConfirmFailed
		s.mu.Unlock()
		logger.Warnw("payment_redirect_not_succeeded",
			"order_id", orderID,
			"redirect_status", redirectStatus,
		)
		return ConfirmOutcome{Redirect: constants.RouteCheckout, Err: ErrPaymentFailed}
	}

	s.mu.Lock()
	switch s.states[key] {
	case ConfirmArmed, ConfirmConfirmed:
		s.mu.Unlock()
		return ConfirmOutcome{Skipped: true}
	case ConfirmFailed:
		s.mu.Unlock()
		return ConfirmOutcome{Redirect: constants.RouteCheckout, Err: ErrPaymentFailed}
	}
	s.states[key] = ConfirmArmed
	s.mu.Unlock()

	confirmation, err := s.gw.ConfirmPayment(ctx, orderID, paymentIntentID)

	s.mu.Lock()
	if err != nil {
		// 退膛：允许一次人工重试；停留当前页并透出错误
		s.states[key] = ConfirmIdle
		s.mu.Unlock()
		return ConfirmOutcome{Err: err}
	}
	s.states[key] = ConfirmConfirmed
	s.mu.Unlock()

	logger.Infow("payment_confirmed",
		"order_id", confirmation.OrderID,
		"payment_intent_id", confirmation.PaymentIntentID,
	)
	if s.checkout != nil {
		s.checkout.CompletePayment(orderID)
	}
	return ConfirmOutcome{
		Confirmed: true,
		Redirect:  fmt.Sprintf("%s/%d", constants.RouteOrders, orderID),
	}
}
