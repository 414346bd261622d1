package router

import (
	"fmt"
	"strings"

	"github.com/veridia/storefront/internal/cache"
	"github.com/veridia/storefront/internal/config"
	"github.com/veridia/storefront/internal/http/handlers"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vsf"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 会话接口（无需登录）
		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", h.GetSession)
			sessionGroup.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIP), h.Login)
			sessionGroup.POST("/logout", h.Logout)
		}

		// 用户接口（需登录会话）
		user := apiV1.Group("")
		user.Use(SessionRequiredMiddleware(c.Session))
		{
			user.GET("/cart", h.GetCart)

			user.GET("/checkout", h.GetCheckout)
			user.POST("/checkout/address", h.SelectAddress)
			user.POST("/checkout/shipping", h.SelectShipping)
			user.GET("/checkout/shipping-methods", h.GetCheckoutShippingMethods)
			user.POST("/checkout/orders", h.PlaceOrder)
			user.POST("/checkout/payments", h.BeginPayment)
			user.GET("/checkout/confirm/:order_id", h.ConfirmPayment)

			user.GET("/orders", h.ListOrders)
			user.GET("/orders/:order_id", h.GetOrder)
			user.GET("/addresses", h.ListAddresses)
			user.GET("/brands/:brand_id/shipping-methods", h.GetBrandShippingMethods)

			user.GET("/wishlist", h.GetWishlist)
			user.POST("/wishlist/:product_id/toggle", h.ToggleWishlist)
			user.GET("/subscriptions", h.GetSubscriptions)
			user.POST("/subscriptions/:brand_id/toggle", h.ToggleSubscription)

			user.GET("/payment-instruments", h.ListPaymentInstruments)
			user.PUT("/payment-instruments/:instrument_id/default", h.SetDefaultPaymentInstrument)
			user.DELETE("/payment-instruments/:instrument_id", h.RemovePaymentInstrument)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
