package service

import (
	"context"
	"sync"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/optimistic"
	"github.com/veridia/storefront/internal/session"
)

// WishlistGateway 心愿单远端接口
type WishlistGateway interface {
	ListWishlist(ctx context.Context, userID uint) ([]models.WishlistEntry, error)
	AddWishlistItem(ctx context.Context, userID, productID uint) error
	RemoveWishlistItem(ctx context.Context, userID, productID uint) error
}

// WishlistService 心愿单：本地先行生效的收藏开关
type WishlistService struct {
	gw      WishlistGateway
	session *session.Store
	liked   *optimistic.Collection[uint, bool]

	mu      sync.Mutex
	entries []models.WishlistEntry
	aborter gateway.Aborter
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(gw WishlistGateway, sessionStore *session.Store) *WishlistService {
	return &WishlistService{
		gw:      gw,
		session: sessionStore,
		liked:   optimistic.NewCollection[uint, bool](),
	}
}

// Refresh 拉取心愿单并重建本地开关集合
func (s *WishlistService) Refresh(ctx context.Context) ([]models.WishlistEntry, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	fetchCtx := s.aborter.Next(ctx)
	entries, err := s.gw.ListWishlist(fetchCtx, userID)
	if err != nil {
		return nil, err
	}
	likedMap := make(map[uint]bool, len(entries))
	for _, entry := range entries {
		likedMap[entry.ProductID] = true
	}
	s.liked.Replace(likedMap)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return entries, nil
}

// Entries 最近一次拉取的心愿单条目
func (s *WishlistService) Entries() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries
}

// IsLiked 商品当前是否在心愿单（含乐观值）
func (s *WishlistService) IsLiked(productID uint) bool {
	liked, _ := s.liked.Get(productID)
	return liked
}

// Toggle 切换收藏；本地立即生效，远端失败回滚并透出错误。
// 返回切换后的期望值。
func (s *WishlistService) Toggle(ctx context.Context, productID uint) (bool, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return false, ErrNotAuthenticated
	}
	desired := !s.IsLiked(productID)
	err := s.liked.Apply(ctx, productID, desired, func(ctx context.Context) error {
		if desired {
			return s.gw.AddWishlistItem(ctx, userID, productID)
		}
		return s.gw.RemoveWishlistItem(ctx, userID, productID)
	})
	if err != nil {
		return s.IsLiked(productID), err
	}
	return desired, nil
}
