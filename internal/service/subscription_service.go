package service

import (
	"context"
	"sync"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/optimistic"
	"github.com/veridia/storefront/internal/session"
)

// SubscriptionGateway 品牌订阅远端接口
type SubscriptionGateway interface {
	ListSubscriptions(ctx context.Context, userID uint) ([]models.BrandSubscription, error)
	SubscribeBrand(ctx context.Context, userID, brandID uint) error
	UnsubscribeBrand(ctx context.Context, userID, brandID uint) error
}

// SubscriptionService 品牌订阅开关，乐观更新约定与心愿单一致
type SubscriptionService struct {
	gw         SubscriptionGateway
	session    *session.Store
	subscribed *optimistic.Collection[uint, bool]

	mu      sync.Mutex
	brands  []models.BrandSubscription
	aborter gateway.Aborter
}

// NewSubscriptionService 创建品牌订阅服务
func NewSubscriptionService(gw SubscriptionGateway, sessionStore *session.Store) *SubscriptionService {
	return &SubscriptionService{
		gw:         gw,
		session:    sessionStore,
		subscribed: optimistic.NewCollection[uint, bool](),
	}
}

// Refresh 拉取订阅列表并重建本地开关集合
func (s *SubscriptionService) Refresh(ctx context.Context) ([]models.BrandSubscription, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	fetchCtx := s.aborter.Next(ctx)
	brands, err := s.gw.ListSubscriptions(fetchCtx, userID)
	if err != nil {
		return nil, err
	}
	subscribedMap := make(map[uint]bool, len(brands))
	for _, brand := range brands {
		subscribedMap[brand.BrandID] = true
	}
	s.subscribed.Replace(subscribedMap)

	s.mu.Lock()
	s.brands = brands
	s.mu.Unlock()
	return brands, nil
}

// IsSubscribed 是否已订阅品牌（含乐观值）
func (s *SubscriptionService) IsSubscribed(brandID uint) bool {
	subscribed, _ := s.subscribed.Get(brandID)
	return subscribed
}

// Toggle 切换品牌订阅；失败回滚，过期分辨丢弃
func (s *SubscriptionService) Toggle(ctx context.Context, brandID uint) (bool, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return false, ErrNotAuthenticated
	}
	desired := !s.IsSubscribed(brandID)
	err := s.subscribed.Apply(ctx, brandID, desired, func(ctx context.Context) error {
		if desired {
			return s.gw.SubscribeBrand(ctx, userID, brandID)
		}
		return s.gw.UnsubscribeBrand(ctx, userID, brandID)
	})
	if err != nil {
		return s.IsSubscribed(brandID), err
	}
	return desired, nil
}
