package handlers

import (
	"strconv"

	"github.com/veridia/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListOrders 当前用户的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.OrderService.List(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil || orderID == 0 {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, getErr := h.OrderService.Get(c.Request.Context(), uint(orderID))
	if getErr != nil {
		h.respondWithMappedError(c, getErr, cartErrorRules)
		return
	}
	response.Success(c, gin.H{"order": order})
}
