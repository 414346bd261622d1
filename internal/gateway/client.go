package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veridia/storefront/internal/logger"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// TokenSource 提供当前会话的 Bearer 凭证，未登录时返回空串
type TokenSource func() string

// Client 远端商城 API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// NewClient 创建网关客户端
func NewClient(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
	}
}

// do 执行请求并将响应解码到 out；所有错误在此边界归一化为 *APIError
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindValidation, Message: fmt.Sprintf("encode request failed: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindValidation, Message: fmt.Sprintf("build request failed: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := strings.TrimSpace(c.token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		if apiErr.Kind != KindCancelled {
			logger.Warnw("gateway_request_failed",
				"method", method,
				"path", path,
				"error", err,
			)
		}
		return apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyStatus(resp.StatusCode, respBody)
		logger.Warnw("gateway_response_error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"kind", apiErr.Kind,
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Message: msgServer, Raw: respBody}
	}
	return nil
}
