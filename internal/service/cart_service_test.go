package service

import (
	"context"
	"testing"

	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/session"
)

type fakeCartGateway struct {
	cart  *models.Cart
	err   error
	calls int
}

func (g *fakeCartGateway) FetchCart(ctx context.Context, userID uint) (*models.Cart, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.cart, nil
}

func authedSession(t *testing.T, userID uint) *session.Store {
	t.Helper()
	store := session.NewStore(nil)
	store.Dispatch(session.LoginAction{Token: "tok", User: &models.User{ID: userID}})
	return store
}

func testCart() *models.Cart {
	return &models.Cart{
		Items: []models.CartItem{
			{ProductVariantID: 1, BrandID: 10, BrandName: "A", UnitPrice: models.NewMoneyFromFloat(19.90), Quantity: 2, LineTotal: models.NewMoneyFromFloat(39.80)},
			{ProductVariantID: 2, BrandID: 20, BrandName: "B", UnitPrice: models.NewMoneyFromFloat(5.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(5.00)},
			{ProductVariantID: 3, BrandID: 10, BrandName: "A", UnitPrice: models.NewMoneyFromFloat(7.50), Quantity: 1, LineTotal: models.NewMoneyFromFloat(7.50)},
			{ProductVariantID: 4, BrandID: 30, BrandName: "C", UnitPrice: models.NewMoneyFromFloat(12.00), Quantity: 3, LineTotal: models.NewMoneyFromFloat(36.00)},
		},
		TotalItems:  7,
		TotalAmount: models.NewMoneyFromFloat(88.30),
	}
}

func TestGroupByBrandTotality(t *testing.T) {
	cart := testCart()
	grouped := GroupByBrand(cart)

	if len(grouped) != 3 {
		t.Fatalf("expected 3 brand buckets, got %d", len(grouped))
	}
	// 桶内顺序与并集重建原始列表
	reconstructed := make([]models.CartItem, 0, len(cart.Items))
	for _, brandID := range cart.BrandIDs() {
		reconstructed = append(reconstructed, grouped[brandID]...)
	}
	if len(reconstructed) != len(cart.Items) {
		t.Fatalf("expected union of buckets to have %d items, got %d", len(cart.Items), len(reconstructed))
	}
	if grouped[10][0].ProductVariantID != 1 || grouped[10][1].ProductVariantID != 3 {
		t.Fatalf("expected in-bucket order preserved, got %+v", grouped[10])
	}
}

func TestGroupByBrandEmptyCart(t *testing.T) {
	grouped := GroupByBrand(&models.Cart{})
	if len(grouped) != 0 {
		t.Fatalf("expected empty map for empty cart, got %d keys", len(grouped))
	}
	grouped = GroupByBrand(nil)
	if len(grouped) != 0 {
		t.Fatalf("expected empty map for nil cart, got %d keys", len(grouped))
	}
}

func TestFetchNormalizesLineTotals(t *testing.T) {
	cart := testCart()
	cart.Items[0].LineTotal = models.NewMoneyFromFloat(1.00) // 破坏不变量
	gw := &fakeCartGateway{cart: cart}
	svc := NewCartService(gw, authedSession(t, 7))

	fetched, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	expected := fetched.Items[0].UnitPrice.MulInt(fetched.Items[0].Quantity)
	if !fetched.Items[0].LineTotal.Equal(expected.Decimal) {
		t.Fatalf("expected line total corrected to %s, got %s", expected, fetched.Items[0].LineTotal)
	}
}

func TestFetchRequiresAuthentication(t *testing.T) {
	svc := NewCartService(&fakeCartGateway{cart: testCart()}, session.NewStore(nil))
	if _, err := svc.Fetch(context.Background()); err != ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestItemsByBrandIsRecomputedOnFetch(t *testing.T) {
	gw := &fakeCartGateway{cart: testCart()}
	svc := NewCartService(gw, authedSession(t, 7))
	if _, err := svc.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(svc.ItemsByBrand()) != 3 {
		t.Fatalf("expected 3 buckets after first fetch")
	}

	gw.cart = &models.Cart{Items: []models.CartItem{
		{ProductVariantID: 9, BrandID: 99, UnitPrice: models.NewMoneyFromFloat(1.00), Quantity: 1, LineTotal: models.NewMoneyFromFloat(1.00)},
	}}
	if _, err := svc.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	grouped := svc.ItemsByBrand()
	if len(grouped) != 1 || len(grouped[99]) != 1 {
		t.Fatalf("expected projection recomputed, got %+v", grouped)
	}
}
