package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/models"
)

// CheckoutState 结算流程状态
type CheckoutState string

const (
	StateAwaitingAddress  CheckoutState = "awaiting_address"
	StateAwaitingShipping CheckoutState = "awaiting_shipping"
	StateReadyToOrder     CheckoutState = "ready_to_order"
	StateOrdering         CheckoutState = "ordering"
	StateAwaitingPayment  CheckoutState = "awaiting_payment"
	StateCompleted        CheckoutState = "completed"
)

// OrderCreateGateway 订单创建接口
type OrderCreateGateway interface {
	CreateOrder(ctx context.Context, input models.CreateOrderInput) (*models.Order, error)
}

// PaymentIntentGateway 支付凭证接口
type PaymentIntentGateway interface {
	CreatePaymentIntent(ctx context.Context, orderID uint, returnURL string) (*models.PaymentIntent, error)
}

// CheckoutService 结算编排：地址 -> 每品牌配送 -> 下单 -> 支付 -> 完成。
// 除显式 Reset 外状态只向前走；orderID 一经确定在本次结算内保持不变，
// 同一结算会话绝不允许重复创建订单。
type CheckoutService struct {
	cart      *CartService
	matrix    *ShippingMatrix
	orders    OrderCreateGateway
	payments  PaymentIntentGateway
	returnURL string

	mu         sync.Mutex
	state      CheckoutState
	addressID  uint
	orderID    uint
	processing bool
	onSuccess  func(orderID uint)
}

// NewCheckoutService 创建结算编排器
func NewCheckoutService(cart *CartService, orders OrderCreateGateway, payments PaymentIntentGateway, returnURL string) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		matrix:    NewShippingMatrix(),
		orders:    orders,
		payments:  payments,
		returnURL: returnURL,
		state:     StateAwaitingAddress,
	}
}

// State 当前状态
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Matrix 配送选择矩阵
func (s *CheckoutService) Matrix() *ShippingMatrix {
	return s.matrix
}

// OrderID 本次结算已创建的订单 ID，未创建返回 0
func (s *CheckoutService) OrderID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// AddressID 已选择的收货地址 ID，未选择返回 0
func (s *CheckoutService) AddressID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addressID
}

// OnPaymentSuccess 注册支付完成回调（调用方用于跳转订单跟踪页）
func (s *CheckoutService) OnPaymentSuccess(callback func(orderID uint)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSuccess = callback
}

// SelectAddress 选择收货地址；任何配送选择与下单都以此为前提
func (s *CheckoutService) SelectAddress(addressID uint) error {
	if addressID == 0 {
		return ErrNoAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderID != 0 {
		// 订单已创建，地址随订单固定
		return nil
	}
	s.addressID = addressID
	s.recomputeLocked()
	return nil
}

// SelectShipping 为品牌选择配送方式（同品牌覆盖写）
func (s *CheckoutService) SelectShipping(choice models.ShippingChoice) error {
	s.mu.Lock()
	if s.addressID == 0 {
		s.mu.Unlock()
		return ErrNoAddress
	}
	if s.orderID != 0 {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.matrix.Select(choice)

	s.mu.Lock()
	s.recomputeLocked()
	s.mu.Unlock()
	return nil
}

// CanProceed UI 放行启发：有地址且至少选了一个配送方式。
// 必要不充分；下单前仍会做严格就绪检查。
func (s *CheckoutService) CanProceed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addressID != 0 && s.matrix.Size() > 0
}

// SyncCart 购物车变化后的收敛：裁剪陈旧配送选择并重算状态。
// 购物车被清空时结算中止，返回 ErrCartEmpty 提示调用方跳回购物车页。
func (s *CheckoutService) SyncCart() error {
	cart := s.cart.Current()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderID != 0 {
		return nil
	}
	if cart.IsEmpty() {
		s.resetLocked()
		return ErrCartEmpty
	}
	s.matrix.PruneTo(cart.BrandIDs())
	s.recomputeLocked()
	return nil
}

// PlaceOrder 创建订单。orderID 已存在或在途时为无操作并返回既有 ID，
// 从编排器边界（而不只是 UI 按钮）保证同一结算会话只发一次创建请求。
func (s *CheckoutService) PlaceOrder(ctx context.Context) (uint, error) {
	s.mu.Lock()
	if s.orderID != 0 || s.processing {
		orderID := s.orderID
		s.mu.Unlock()
		return orderID, nil
	}
	if s.addressID == 0 {
		s.mu.Unlock()
		return 0, ErrNoAddress
	}
	cart := s.cart.Current()
	if cart.IsEmpty() {
		s.mu.Unlock()
		return 0, ErrCartEmpty
	}
	// 严格就绪门：每个品牌都必须已有配送选择
	if !s.matrix.IsReadyFor(cart.BrandIDs()) {
		s.mu.Unlock()
		return 0, ErrShippingIncomplete
	}
	input := models.CreateOrderInput{
		ShippingAddressID: s.addressID,
		DeliveryChoices:   s.matrix.DeliveryChoices(),
	}
	// processing 在请求发出前同步置位，完成回调里才清除
	s.processing = true
	s.state = StateOrdering
	s.mu.Unlock()

	order, err := s.orders.CreateOrder(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
	if err != nil {
		// 回到可重试状态；地址与配送矩阵原样保留
		s.state = StateReadyToOrder
		return 0, err
	}
	s.orderID = order.ID
	s.state = StateAwaitingPayment
	logger.Infow("checkout_order_created", "order_id", order.ID)
	return order.ID, nil
}

// BeginPayment 为已创建订单申请支付凭证，交给网关托管页
func (s *CheckoutService) BeginPayment(ctx context.Context) (*models.PaymentIntent, error) {
	s.mu.Lock()
	orderID := s.orderID
	s.mu.Unlock()
	if orderID == 0 {
		return nil, ErrOrderNotCreated
	}
	returnURL := fmt.Sprintf("%s/%d", s.returnURL, orderID)
	// 支付失败不清除 orderID：订单已在服务端存在，重试支付不重建订单
	return s.payments.CreatePaymentIntent(ctx, orderID, returnURL)
}

// CompletePayment 支付确认守卫回报成功后推进到完成态
func (s *CheckoutService) CompletePayment(orderID uint) {
	s.mu.Lock()
	if s.orderID != orderID || s.state == StateCompleted {
		s.mu.Unlock()
		return
	}
	s.state = StateCompleted
	callback := s.onSuccess
	s.mu.Unlock()

	if callback != nil {
		callback(orderID)
	}
}

// Reset 显式重置整个结算会话
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *CheckoutService) resetLocked() {
	s.state = StateAwaitingAddress
	s.addressID = 0
	s.orderID = 0
	s.processing = false
	s.matrix.Reset()
}

// recomputeLocked 依据地址与矩阵就绪度推导下单前状态；须持锁调用
func (s *CheckoutService) recomputeLocked() {
	if s.orderID != 0 {
		return
	}
	if s.addressID == 0 {
		s.state = StateAwaitingAddress
		return
	}
	cart := s.cart.Current()
	brandIDs := cart.BrandIDs()
	if len(brandIDs) > 0 && s.matrix.IsReadyFor(brandIDs) {
		s.state = StateReadyToOrder
		return
	}
	s.state = StateAwaitingShipping
}
