package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/veridia/storefront/internal/constants"
	"github.com/veridia/storefront/internal/models"
)

type fakeConfirmGateway struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   chan struct{}
	started chan struct{}
}

func (g *fakeConfirmGateway) ConfirmPayment(ctx context.Context, orderID uint, paymentIntentID string) (*models.PaymentConfirmation, error) {
	g.mu.Lock()
	g.calls++
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
	return &models.PaymentConfirmation{OrderID: orderID, PaymentIntentID: paymentIntentID, Status: "succeeded"}, nil
}

func (g *fakeConfirmGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestHandleMissingParamsNavigatesHome(t *testing.T) {
	svc := NewPaymentConfirmService(&fakeConfirmGateway{}, nil)

	outcome := svc.Handle(context.Background(), 0, "pi_1", constants.RedirectStatusSucceeded)
	if !errors.Is(outcome.Err, ErrMissingPaymentParams) || outcome.Redirect != constants.RouteHome {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	outcome = svc.Handle(context.Background(), 101, "", constants.RedirectStatusSucceeded)
	if !errors.Is(outcome.Err, ErrMissingPaymentParams) {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	// 参数缺失不得上膛
	if svc.StateOf(101, "") != ConfirmIdle {
		t.Fatalf("missing params must not arm the guard")
	}
}

func TestHandleSucceededConfirmsOnce(t *testing.T) {
	gw := &fakeConfirmGateway{}
	svc := NewPaymentConfirmService(gw, nil)

	outcome := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if outcome.Err != nil || !outcome.Confirmed {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Redirect != "/orders/101" {
		t.Fatalf("expected redirect to order tracking, got %q", outcome.Redirect)
	}
	if svc.StateOf(101, "pi_1") != ConfirmConfirmed {
		t.Fatalf("expected confirmed state")
	}
}

func TestHandleDoubleMountSingleNetworkCall(t *testing.T) {
	gw := &fakeConfirmGateway{block: make(chan struct{}), started: make(chan struct{}, 1)}
	svc := NewPaymentConfirmService(gw, nil)

	first := make(chan ConfirmOutcome, 1)
	go func() {
		first <- svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	}()
	<-gw.started

	// 第二次挂载在确认仍在途时发生：必须看到上膛的守卫而整体跳过
	second := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if !second.Skipped {
		t.Fatalf("re-entrant invocation must be skipped, got %+v", second)
	}
	close(gw.block)
	outcome := <-first
	if outcome.Err != nil || !outcome.Confirmed {
		t.Fatalf("unexpected first outcome: %+v", outcome)
	}
	if gw.callCount() != 1 {
		t.Fatalf("expected exactly one confirmation call, got %d", gw.callCount())
	}

	// 确认完成后的再次挂载同样跳过
	third := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if !third.Skipped || gw.callCount() != 1 {
		t.Fatalf("confirmed guard must keep skipping, got %+v calls=%d", third, gw.callCount())
	}
}

func TestHandleConfirmFailureDisarmsForOneRetry(t *testing.T) {
	gw := &fakeConfirmGateway{err: errors.New("confirm timeout")}
	svc := NewPaymentConfirmService(gw, nil)

	outcome := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if outcome.Err == nil || outcome.Redirect != "" {
		t.Fatalf("confirm failure must stay on page and surface the error, got %+v", outcome)
	}
	if svc.StateOf(101, "pi_1") != ConfirmIdle {
		t.Fatalf("guard must disarm after a failed confirmation call")
	}

	// 人工重试恰好可以再发一次
	gw.mu.Lock()
	gw.err = nil
	gw.mu.Unlock()
	retry := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if retry.Err != nil || !retry.Confirmed {
		t.Fatalf("manual retry should succeed, got %+v", retry)
	}
	if gw.callCount() != 2 {
		t.Fatalf("expected two calls total, got %d", gw.callCount())
	}
}

func TestHandleNonSucceededStatusFailsPermanently(t *testing.T) {
	gw := &fakeConfirmGateway{}
	svc := NewPaymentConfirmService(gw, nil)

	outcome := svc.Handle(context.Background(), 101, "pi_1", "failed")
	if !errors.Is(outcome.Err, ErrPaymentFailed) || outcome.Redirect != constants.RouteCheckout {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if svc.StateOf(101, "pi_1") != ConfirmFailed {
		t.Fatalf("expected permanent failed state")
	}

	// 永久封存，即使随后带着 succeeded 重入也不再发起调用
	again := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if !errors.Is(again.Err, ErrPaymentFailed) || gw.callCount() != 0 {
		t.Fatalf("failed pair must stay sealed, got %+v calls=%d", again, gw.callCount())
	}
}

func TestHandleCompletesCheckoutOnSuccess(t *testing.T) {
	orderGW := &fakeOrderCreateGateway{}
	checkout, _ := newCheckoutFixture(t, orderGW)
	selectEverything(t, checkout)
	if _, err := checkout.PlaceOrder(context.Background()); err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	fired := 0
	checkout.OnPaymentSuccess(func(orderID uint) { fired++ })

	svc := NewPaymentConfirmService(&fakeConfirmGateway{}, checkout)
	outcome := svc.Handle(context.Background(), 101, "pi_1", constants.RedirectStatusSucceeded)
	if outcome.Err != nil {
		t.Fatalf("handle failed: %+v", outcome)
	}
	if checkout.State() != StateCompleted || fired != 1 {
		t.Fatalf("expected checkout completed with one callback, state=%s fired=%d", checkout.State(), fired)
	}
}
