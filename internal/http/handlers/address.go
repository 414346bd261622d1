package handlers

import (
	"github.com/veridia/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListAddresses 当前用户的收货地址
func (h *Handler) ListAddresses(c *gin.Context) {
	userID := h.Session.UserID()
	if userID == 0 {
		response.Unauthorized(c, "please sign in first")
		return
	}
	addresses, err := h.Gateway.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.respondGatewayError(c, err)
		return
	}
	response.Success(c, gin.H{"addresses": addresses})
}
