package handlers

import (
	"strings"

	"github.com/veridia/storefront/internal/http/response"
	"github.com/veridia/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

var instrumentErrorRules = []mappedHandlerError{
	{target: service.ErrNotAuthenticated, code: response.CodeUnauthorized, msg: "please sign in first"},
	{target: service.ErrInstrumentNotFound, code: response.CodeNotFound, msg: "payment instrument not found"},
}

// ListPaymentInstruments 拉取已保存的支付方式
func (h *Handler) ListPaymentInstruments(c *gin.Context) {
	instruments, err := h.InstrumentService.Refresh(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, instrumentErrorRules)
		return
	}
	response.Success(c, gin.H{"instruments": instruments})
}

// SetDefaultPaymentInstrument 设置默认支付方式（本地先行生效）
func (h *Handler) SetDefaultPaymentInstrument(c *gin.Context) {
	instrumentID := strings.TrimSpace(c.Param("instrument_id"))
	if instrumentID == "" {
		response.BadRequest(c, "invalid instrument id")
		return
	}
	if err := h.InstrumentService.SetDefault(c.Request.Context(), instrumentID); err != nil {
		h.respondWithMappedError(c, err, instrumentErrorRules)
		return
	}
	response.Success(c, gin.H{"instruments": h.InstrumentService.List()})
}

// RemovePaymentInstrument 删除已保存的支付方式（本地先行生效）
func (h *Handler) RemovePaymentInstrument(c *gin.Context) {
	instrumentID := strings.TrimSpace(c.Param("instrument_id"))
	if instrumentID == "" {
		response.BadRequest(c, "invalid instrument id")
		return
	}
	if err := h.InstrumentService.Remove(c.Request.Context(), instrumentID); err != nil {
		h.respondWithMappedError(c, err, instrumentErrorRules)
		return
	}
	response.Success(c, gin.H{"instruments": h.InstrumentService.List()})
}
