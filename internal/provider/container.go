package provider

import (
	"time"

	"github.com/veridia/storefront/internal/cache"
	"github.com/veridia/storefront/internal/config"
	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/repository"
	"github.com/veridia/storefront/internal/service"
	"github.com/veridia/storefront/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config  *config.Config
	Gateway *gateway.Client
	Session *session.Store

	// Repositories
	SessionRepo repository.SessionRepository

	// Services
	CartService           *service.CartService
	CheckoutService       *service.CheckoutService
	PaymentConfirmService *service.PaymentConfirmService
	OrderService          *service.OrderService
	ShippingService       *service.ShippingService
	WishlistService       *service.WishlistService
	SubscriptionService   *service.SubscriptionService
	InstrumentService     *service.PaymentInstrumentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 本地会话持久化 + 会话存储
	db, err := repository.OpenSessionDB(cfg.Session.DBPath)
	if err != nil {
		logger.Warnw("provider_open_session_db_failed",
			"path", cfg.Session.DBPath,
			"error", err,
		)
	} else {
		c.SessionRepo = repository.NewSessionRepository(db)
	}
	c.Session = session.NewStore(c.SessionRepo)
	c.Session.Restore()

	// 2. 远端商城网关，凭证来自会话存储
	c.Gateway = gateway.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), c.Session.Token)

	// 3. Services
	c.initServices()

	return c
}

func (c *Container) initServices() {
	cfg := c.Config
	c.CartService = service.NewCartService(c.Gateway, c.Session)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.Gateway, c.Gateway, cfg.Checkout.ReturnURL)
	c.PaymentConfirmService = service.NewPaymentConfirmService(c.Gateway, c.CheckoutService)
	c.OrderService = service.NewOrderService(c.Gateway, c.Session)
	c.ShippingService = service.NewShippingService(c.Gateway, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	c.WishlistService = service.NewWishlistService(c.Gateway, c.Session)
	c.SubscriptionService = service.NewSubscriptionService(c.Gateway, c.Session)
	c.InstrumentService = service.NewPaymentInstrumentService(c.Gateway, c.Session)
}
