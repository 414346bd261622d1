package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/veridia/storefront/internal/models"
)

type fakeOrderCreateGateway struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   chan struct{}
	started chan struct{}
	orders  []models.CreateOrderInput
}

func (g *fakeOrderCreateGateway) CreateOrder(ctx context.Context, input models.CreateOrderInput) (*models.Order, error) {
	g.mu.Lock()
	g.calls++
	g.orders = append(g.orders, input)
	block := g.block
	started := g.started
	err := g.err
	g.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &models.Order{ID: 101, Status: "pending_payment"}, nil
}

func (g *fakeOrderCreateGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeIntentGateway struct {
	calls     int
	returnURL string
}

func (g *fakeIntentGateway) CreatePaymentIntent(ctx context.Context, orderID uint, returnURL string) (*models.PaymentIntent, error) {
	g.calls++
	g.returnURL = returnURL
	return &models.PaymentIntent{ID: "pi_123", ClientSecret: "secret", Type: "payment"}, nil
}

func newCheckoutFixture(t *testing.T, orderGW *fakeOrderCreateGateway) (*CheckoutService, *CartService) {
	t.Helper()
	cartGW := &fakeCartGateway{cart: &models.Cart{
		Items: []models.CartItem{
			{ProductVariantID: 1, BrandID: 1, UnitPrice: models.NewMoneyFromFloat(10.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(10.00)},
			{ProductVariantID: 2, BrandID: 2, UnitPrice: models.NewMoneyFromFloat(20.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(20.00)},
		},
	}}
	cart := NewCartService(cartGW, authedSession(t, 42))
	if _, err := cart.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch cart failed: %v", err)
	}
	checkout := NewCheckoutService(cart, orderGW, &fakeIntentGateway{}, "http://edge/checkout/confirm")
	return checkout, cart
}

func selectEverything(t *testing.T, checkout *CheckoutService) {
	t.Helper()
	if err := checkout.SelectAddress(42); err != nil {
		t.Fatalf("select address failed: %v", err)
	}
	if err := checkout.SelectShipping(models.ShippingChoice{BrandID: 1, MethodID: 7, Price: models.NewMoneyFromFloat(4.99), DisplayName: "Standard"}); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
	if err := checkout.SelectShipping(models.ShippingChoice{BrandID: 2, MethodID: 3, Price: models.ZeroMoney(), DisplayName: "Free"}); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
}

func TestCheckoutStateProgression(t *testing.T) {
	checkout, _ := newCheckoutFixture(t, &fakeOrderCreateGateway{})
	if checkout.State() != StateAwaitingAddress {
		t.Fatalf("expected initial awaiting_address, got %s", checkout.State())
	}

	if err := checkout.SelectAddress(42); err != nil {
		t.Fatalf("select address failed: %v", err)
	}
	if checkout.State() != StateAwaitingShipping {
		t.Fatalf("expected awaiting_shipping, got %s", checkout.State())
	}
	if checkout.CanProceed() {
		t.Fatalf("canProceed must stay false with no shipping choice")
	}

	if err := checkout.SelectShipping(models.ShippingChoice{BrandID: 1, MethodID: 7, Price: models.NewMoneyFromFloat(4.99)}); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
	if checkout.State() != StateAwaitingShipping {
		t.Fatalf("one of two brands selected must stay awaiting_shipping, got %s", checkout.State())
	}
	if !checkout.CanProceed() {
		t.Fatalf("canProceed heuristic should be true with address and one choice")
	}

	if err := checkout.SelectShipping(models.ShippingChoice{BrandID: 2, MethodID: 3, Price: models.ZeroMoney()}); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
	if checkout.State() != StateReadyToOrder {
		t.Fatalf("expected ready_to_order, got %s", checkout.State())
	}
	if got := checkout.Matrix().TotalShippingCost().String(); got != "4.99" {
		t.Fatalf("expected shipping total 4.99, got %s", got)
	}
}

func TestShippingSelectionRequiresAddress(t *testing.T) {
	checkout, _ := newCheckoutFixture(t, &fakeOrderCreateGateway{})
	err := checkout.SelectShipping(models.ShippingChoice{BrandID: 1, MethodID: 7})
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestPlaceOrderStrictGate(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, _ := newCheckoutFixture(t, orderGW)
	if err := checkout.SelectAddress(42); err != nil {
		t.Fatalf("select address failed: %v", err)
	}
	if err := checkout.SelectShipping(models.ShippingChoice{BrandID: 1, MethodID: 7}); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}

	// canProceed 为真，但严格门必须拦下缺品牌 2 的下单
	if !checkout.CanProceed() {
		t.Fatalf("expected canProceed true")
	}
	if _, err := checkout.PlaceOrder(context.Background()); !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("expected ErrShippingIncomplete, got %v", err)
	}
	if orderGW.callCount() != 0 {
		t.Fatalf("no order creation call may fire before strict readiness")
	}
}

func TestPlaceOrderIdempotentAfterSuccess(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, _ := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)

	orderID, err := checkout.PlaceOrder(context.Background())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if orderID != 101 {
		t.Fatalf("unexpected order id: %d", orderID)
	}
	if checkout.State() != StateAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", checkout.State())
	}

	// 第二次点击必须是无操作
	again, err := checkout.PlaceOrder(context.Background())
	if err != nil {
		t.Fatalf("second place order must be a no-op, got %v", err)
	}
	if again != 101 {
		t.Fatalf("expected sticky order id, got %d", again)
	}
	if orderGW.callCount() != 1 {
		t.Fatalf("expected exactly one order creation call, got %d", orderGW.callCount())
	}
}

func TestPlaceOrderNoConcurrentDuplicates(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{block: make(chan struct{}), started: make(chan struct{}, 1)}
	checkout, _ := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)

	first := make(chan error, 1)
	go func() {
		_, err := checkout.PlaceOrder(context.Background())
		first <- err
	}()
	// 等第一次调用进入在途状态
	<-orderGW.started

	// 在途期间的再次提交必须不再触发网络调用
	if _, err := checkout.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("in-flight resubmission must be a no-op, got %v", err)
	}
	close(orderGW.block)
	if err := <-first; err != nil {
		t.Fatalf("first place order failed: %v", err)
	}
	if orderGW.callCount() != 1 {
		t.Fatalf("expected exactly one order creation call, got %d", orderGW.callCount())
	}
}

func TestPlaceOrderFailureReturnsToReady(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{err: errors.New("server exploded")}
	checkout, _ := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)

	if _, err := checkout.PlaceOrder(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if checkout.State() != StateReadyToOrder {
		t.Fatalf("failed creation must return to ready_to_order, got %s", checkout.State())
	}
	// 地址与矩阵不回滚
	if checkout.AddressID() != 42 {
		t.Fatalf("address must survive a failed order creation")
	}
	if checkout.Matrix().Size() != 2 {
		t.Fatalf("shipping matrix must survive a failed order creation")
	}

	// 放开失败后可以重试
	orderGW.mu.Lock()
	orderGW.err = nil
	orderGW.mu.Unlock()
	orderID, err := checkout.PlaceOrder(context.Background())
	if err != nil || orderID != 101 {
		t.Fatalf("retry should succeed, got id=%d err=%v", orderID, err)
	}
}

func TestSyncCartAbortsWhenCartEmpties(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, cart := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)

	cartGW := cart.gw.(*fakeCartGateway)
	cartGW.cart = &models.Cart{}
	if _, err := cart.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if err := checkout.SyncCart(); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if checkout.State() != StateAwaitingAddress || checkout.Matrix().Size() != 0 {
		t.Fatalf("empty cart must reset the checkout session")
	}
}

func TestSyncCartFallsBackToAwaitingShipping(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, cart := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)
	if checkout.State() != StateReadyToOrder {
		t.Fatalf("fixture should be ready")
	}

	// 购物车新增了第三个品牌，就绪度被打破
	cartGW := cart.gw.(*fakeCartGateway)
	cartGW.cart = &models.Cart{Items: []models.CartItem{
		{ProductVariantID: 1, BrandID: 1, UnitPrice: models.NewMoneyFromFloat(10.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(10.00)},
		{ProductVariantID: 2, BrandID: 2, UnitPrice: models.NewMoneyFromFloat(20.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(20.00)},
		{ProductVariantID: 3, BrandID: 3, UnitPrice: models.NewMoneyFromFloat(5.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(5.00)},
	}}
	if _, err := cart.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if err := checkout.SyncCart(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if checkout.State() != StateAwaitingShipping {
		t.Fatalf("expected fallback to awaiting_shipping, got %s", checkout.State())
	}
}

func TestBeginPaymentRequiresOrder(t *testing.T) {
	checkout, _ := newCheckoutFixture(t, &fakeOrderCreateGateway{})
	if _, err := checkout.BeginPayment(context.Background()); !errors.Is(err, ErrOrderNotCreated) {
		t.Fatalf("expected ErrOrderNotCreated, got %v", err)
	}
}

func TestCompletePaymentFiresCallbackOnce(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, _ := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)
	if _, err := checkout.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	fired := 0
	checkout.OnPaymentSuccess(func(orderID uint) {
		if orderID != 101 {
			t.Fatalf("unexpected order id in callback: %d", orderID)
		}
		fired++
	})
	checkout.CompletePayment(101)
	checkout.CompletePayment(101)
	if fired != 1 {
		t.Fatalf("expected one success callback, got %d", fired)
	}
	if checkout.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", checkout.State())
	}
}
