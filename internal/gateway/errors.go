package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Kind 网关错误分类
type Kind int

const (
	// KindConnectivity 未收到响应（网络不通或超时），状态码记 0
	KindConnectivity Kind = iota
	// KindAuth 认证失效（401），会话级致命错误
	KindAuth
	// KindForbidden 权限不足（403），会话保留
	KindForbidden
	// KindValidation 业务校验错误（4xx），服务端消息原样透出
	KindValidation
	// KindServer 服务端错误（5xx），不信任原始消息
	KindServer
	// KindCancelled 请求被新一代请求取代，静默吞掉
	KindCancelled
)

const (
	msgConnectivity = "cannot reach server, please check your connection"
	msgAuthExpired  = "session expired, please sign in again"
	msgForbidden    = "you do not have permission to perform this action"
	msgServer       = "something went wrong, please try again later"
)

// APIError 网关边界统一错误形状
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Raw        []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// IsCancelled 判断错误是否为被取代请求的静默取消
func IsCancelled(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindCancelled
	}
	return errors.Is(err, context.Canceled)
}

// IsAuthError 判断错误是否为会话级认证失效
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// classifyTransport 对未收到响应的错误归类
func classifyTransport(err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindCancelled, StatusCode: 0, Message: "request superseded"}
	}
	return &APIError{Kind: KindConnectivity, StatusCode: 0, Message: msgConnectivity}
}

// classifyStatus 对服务端返回的非 2xx 响应归类
func classifyStatus(statusCode int, body []byte) *APIError {
	switch {
	case statusCode == http.StatusUnauthorized:
		return &APIError{Kind: KindAuth, StatusCode: statusCode, Message: msgAuthExpired, Raw: body}
	case statusCode == http.StatusForbidden:
		return &APIError{Kind: KindForbidden, StatusCode: statusCode, Message: msgForbidden, Raw: body}
	case statusCode >= 500:
		return &APIError{Kind: KindServer, StatusCode: statusCode, Message: msgServer, Raw: body}
	default:
		message := serverMessage(body)
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return &APIError{Kind: KindValidation, StatusCode: statusCode, Message: message, Raw: body}
	}
}

// serverMessage 提取服务端响应体中的业务消息
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, candidate := range []string{envelope.Msg, envelope.Message, envelope.Error} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return ""
}
