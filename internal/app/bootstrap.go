package app

import (
	"context"
	"errors"
	"os/signal"

	"github.com/veridia/storefront/internal/config"
	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/provider"
	"github.com/veridia/storefront/internal/router"
)

// BuildServer 组装依赖容器与路由，构建 HTTP 服务
func BuildServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)
	container.Session.OnSessionExpired(func() {
		logger.Warnw("session_expired_forced_logout")
	})

	engine := router.SetupRouter(cfg, container)
	return NewServer(cfg.Server.Host+":"+cfg.Server.Port, engine), nil
}

// Run 应用启动入口：构建服务并运行至收到退出信号
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	server, err := BuildServer(opts.Config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	opts.Logger.Infow("app_start", "addr", server.Addr())
	return server.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}
