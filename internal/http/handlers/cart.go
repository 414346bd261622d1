package handlers

import (
	"github.com/veridia/storefront/internal/http/response"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// BrandGroup 按品牌聚合的购物车视图
type BrandGroup struct {
	BrandID   uint              `json:"brand_id"`
	BrandName string            `json:"brand_name"`
	Items     []models.CartItem `json:"items"`
	Subtotal  models.Money      `json:"subtotal"`
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrNotAuthenticated, code: response.CodeUnauthorized, msg: "please sign in first"},
}

// GetCart 拉取购物车并返回按品牌聚合的视图
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.Fetch(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, gin.H{
		"cart":   cart,
		"brands": buildBrandGroups(cart, h.CartService.BrandIDs(), h.CartService.ItemsByBrand()),
	})
}

func buildBrandGroups(cart *models.Cart, brandIDs []uint, grouped map[uint][]models.CartItem) []BrandGroup {
	if cart == nil {
		return []BrandGroup{}
	}
	groups := make([]BrandGroup, 0, len(brandIDs))
	for _, brandID := range brandIDs {
		items := grouped[brandID]
		if len(items) == 0 {
			continue
		}
		subtotal := models.ZeroMoney()
		for _, item := range items {
			subtotal = subtotal.Add(item.LineTotal)
		}
		groups = append(groups, BrandGroup{
			BrandID:   brandID,
			BrandName: items[0].BrandName,
			Items:     items,
			Subtotal:  subtotal,
		})
	}
	return groups
}
