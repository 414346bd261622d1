package service

import (
	"context"
	"sync"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/session"
)

// CartGateway 购物车远端读取接口
type CartGateway interface {
	FetchCart(ctx context.Context, userID uint) (*models.Cart, error)
}

// CartService 购物车聚合：远端只读缓存 + 按品牌分组投影
type CartService struct {
	gw      CartGateway
	session *session.Store

	mu      sync.Mutex
	cart    *models.Cart
	grouped map[uint][]models.CartItem // items 变化时重算的派生投影
	aborter gateway.Aborter
}

// NewCartService 创建购物车聚合
func NewCartService(gw CartGateway, sessionStore *session.Store) *CartService {
	return &CartService{gw: gw, session: sessionStore}
}

// Fetch 拉取购物车；同一资源的新一轮拉取会取代上一轮。
// 失败不自动重试，由调用方决定是否重新拉取。
func (s *CartService) Fetch(ctx context.Context) (*models.Cart, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	fetchCtx := s.aborter.Next(ctx)
	cart, err := s.gw.FetchCart(fetchCtx, userID)
	if err != nil {
		return nil, err
	}
	normalizeLineTotals(cart)

	s.mu.Lock()
	s.cart = cart
	s.grouped = GroupByBrand(cart)
	s.mu.Unlock()
	return cart, nil
}

// Current 当前缓存的购物车，未拉取过返回 nil
func (s *CartService) Current() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// ItemsByBrand 当前购物车的按品牌分组投影（唯一处派生，所有消费方共享）
func (s *CartService) ItemsByBrand() map[uint][]models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grouped
}

// BrandIDs 当前购物车内的品牌 ID（按首次出现顺序）
func (s *CartService) BrandIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.BrandIDs()
}

// GroupByBrand 纯分组函数：空购物车返回空映射，桶内保持原始条目顺序
func GroupByBrand(cart *models.Cart) map[uint][]models.CartItem {
	grouped := make(map[uint][]models.CartItem)
	if cart == nil {
		return grouped
	}
	for _, item := range cart.Items {
		grouped[item.BrandID] = append(grouped[item.BrandID], item)
	}
	return grouped
}

// normalizeLineTotals 校验行小计不变量，不一致时按单价×数量纠正
func normalizeLineTotals(cart *models.Cart) {
	if cart == nil {
		return
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		expected := item.UnitPrice.MulInt(item.Quantity)
		if !item.LineTotal.Equal(expected.Decimal) {
			logger.Warnw("cart_line_total_mismatch",
				"product_variant_id", item.ProductVariantID,
				"line_total", item.LineTotal.String(),
				"expected", expected.String(),
			)
			item.LineTotal = expected
		}
	}
}
