package handlers

import (
	"strconv"

	"github.com/veridia/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetBrandShippingMethods 单个品牌可用的配送方式
func (h *Handler) GetBrandShippingMethods(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("brand_id"), 10, 64)
	if err != nil || brandID == 0 {
		response.BadRequest(c, "invalid brand id")
		return
	}
	methods, fetchErr := h.ShippingService.MethodsFor(c.Request.Context(), uint(brandID))
	if fetchErr != nil {
		h.respondGatewayError(c, fetchErr)
		return
	}
	response.Success(c, gin.H{"methods": methods})
}
