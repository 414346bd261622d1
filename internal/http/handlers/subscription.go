package handlers

import (
	"strconv"

	"github.com/veridia/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSubscriptions 拉取当前用户已订阅品牌
func (h *Handler) GetSubscriptions(c *gin.Context) {
	subs, err := h.SubscriptionService.Refresh(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"subscriptions": subs})
}

// ToggleSubscription 切换品牌订阅状态（本地先行生效）
func (h *Handler) ToggleSubscription(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("brand_id"), 10, 64)
	if err != nil || brandID == 0 {
		response.BadRequest(c, "invalid brand id")
		return
	}
	subscribed, toggleErr := h.SubscriptionService.Toggle(c.Request.Context(), uint(brandID))
	if toggleErr != nil {
		h.respondWithMappedError(c, toggleErr, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"subscribed": subscribed})
}
