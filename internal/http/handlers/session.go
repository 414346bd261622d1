package handlers

import (
	"github.com/veridia/storefront/internal/http/response"
	"github.com/veridia/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求体
type LoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// Login 以远端签发的凭证建立本地会话并同步用户资料
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	h.Session.Dispatch(session.LoginAction{Token: req.Token})
	profile, err := h.Gateway.FetchProfile(c.Request.Context())
	if err != nil {
		// 凭证换不到资料，回滚登录
		h.Session.Dispatch(session.LogoutAction{})
		h.respondGatewayError(c, err)
		return
	}
	h.Session.Dispatch(session.SetUserAction{User: profile})

	requestLog(c).Infow("session_login", "user_id", profile.ID)
	response.Success(c, gin.H{"user": profile})
}

// Logout 登出并清空结算流程
func (h *Handler) Logout(c *gin.Context) {
	h.Session.Dispatch(session.LogoutAction{})
	h.CheckoutService.Reset()
	response.Success(c, gin.H{"logged_out": true})
}

// GetSession 当前会话状态
func (h *Handler) GetSession(c *gin.Context) {
	state := h.Session.Current()
	response.Success(c, gin.H{
		"authenticated": state.Authenticated(),
		"user":          state.User,
	})
}
