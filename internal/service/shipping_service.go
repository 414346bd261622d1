package service

import (
	"context"
	"fmt"
	"time"

	"github.com/veridia/storefront/internal/cache"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/models"
)

// ShippingGateway 配送方式远端接口
type ShippingGateway interface {
	ListShippingMethods(ctx context.Context, brandID uint) ([]models.ShippingMethod, error)
	BatchShippingMethods(ctx context.Context, brandIDs []uint) (map[uint][]models.ShippingMethod, error)
}

// ShippingService 配送方式读模型，带按品牌的可选缓存
type ShippingService struct {
	gw       ShippingGateway
	cacheTTL time.Duration
}

// NewShippingService 创建配送方式服务
func NewShippingService(gw ShippingGateway, cacheTTL time.Duration) *ShippingService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ShippingService{gw: gw, cacheTTL: cacheTTL}
}

// MethodsFor 拉取单个品牌的配送方式，优先走缓存
func (s *ShippingService) MethodsFor(ctx context.Context, brandID uint) ([]models.ShippingMethod, error) {
	key := shippingCacheKey(brandID)
	var cached []models.ShippingMethod
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("shipping_cache_read_failed", "brand_id", brandID, "error", err)
	} else if hit {
		return cached, nil
	}

	methods, err := s.gw.ListShippingMethods(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, methods, s.cacheTTL); err != nil {
		logger.Warnw("shipping_cache_write_failed", "brand_id", brandID, "error", err)
	}
	return methods, nil
}

// MethodsForBrands 按品牌集合批量拉取配送方式；
// 缓存命中的品牌不再请求，其余走批量接口一次取回
func (s *ShippingService) MethodsForBrands(ctx context.Context, brandIDs []uint) (map[uint][]models.ShippingMethod, error) {
	result := make(map[uint][]models.ShippingMethod, len(brandIDs))
	missing := make([]uint, 0, len(brandIDs))
	for _, brandID := range brandIDs {
		var cached []models.ShippingMethod
		if hit, err := cache.GetJSON(ctx, shippingCacheKey(brandID), &cached); err == nil && hit {
			result[brandID] = cached
			continue
		}
		missing = append(missing, brandID)
	}
	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := s.gw.BatchShippingMethods(ctx, missing)
	if err != nil {
		return nil, err
	}
	for brandID, methods := range fetched {
		result[brandID] = methods
		if err := cache.SetJSON(ctx, shippingCacheKey(brandID), methods, s.cacheTTL); err != nil {
			logger.Warnw("shipping_cache_write_failed", "brand_id", brandID, "error", err)
		}
	}
	return result, nil
}

func shippingCacheKey(brandID uint) string {
	return fmt.Sprintf("shipping:methods:%d", brandID)
}
