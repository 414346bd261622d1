package handlers

import (
	"strconv"

	"github.com/veridia/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWishlist 拉取当前用户心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	entries, err := h.WishlistService.Refresh(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"entries": entries})
}

// ToggleWishlist 切换商品收藏状态（本地先行生效）
func (h *Handler) ToggleWishlist(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	liked, toggleErr := h.WishlistService.Toggle(c.Request.Context(), uint(productID))
	if toggleErr != nil {
		h.respondWithMappedError(c, toggleErr, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"liked": liked})
}
