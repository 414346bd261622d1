package handlers

import (
	"errors"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/http/response"
	"github.com/veridia/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok && id != "" {
			return logger.S().With("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// mappedHandlerError 业务错误到接口错误响应的映射关系
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

// respondWithMappedError 按规则映射业务错误，规则外的错误交给网关错误分类
func (h *Handler) respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	h.respondGatewayError(c, err)
}

// respondGatewayError 将网关归一化错误映射为接口响应。
// 认证失效先走会话级处理（强制登出并触发一次过期回调）；
// 被新一代请求取代的调用静默收尾，不进业务日志。
func (h *Handler) respondGatewayError(c *gin.Context, err error) {
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		if gateway.IsCancelled(err) {
			response.Error(c, response.CodeSuperseded, "request superseded")
			return
		}
		respondError(c, response.CodeInternal, "internal error", err)
		return
	}
	switch apiErr.Kind {
	case gateway.KindCancelled:
		response.Error(c, response.CodeSuperseded, "request superseded")
	case gateway.KindAuth:
		h.Session.HandleAuthError()
		response.Unauthorized(c, apiErr.Message)
	case gateway.KindForbidden:
		response.Forbidden(c, apiErr.Message)
	case gateway.KindValidation:
		response.BadRequest(c, apiErr.Message)
	default:
		// 连通性与服务端错误都不暴露细节，消息已在网关边界归一化
		respondError(c, response.CodeInternal, apiErr.Message, err)
	}
}
