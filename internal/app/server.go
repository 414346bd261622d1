package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/veridia/storefront/internal/logger"

	"go.uber.org/zap"
)

// Server 边缘服务的 HTTP 生命周期：监听、等待退出、限时排水。
// 整个进程只有这一个对外服务，不做多服务编排。
type Server struct {
	srv *http.Server

	mu    sync.Mutex
	bound string // 监听成功后的实际地址
}

// NewServer 创建 HTTP 服务
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:     addr,
			Handler:  handler,
			ErrorLog: logger.StdLogger(),
		},
	}
}

// Addr 实际监听地址；尚未监听时返回配置地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != "" {
		return s.bound
	}
	return s.srv.Addr
}

// Run 监听并服务，直到 ctx 结束或监听本身失败。
// ctx 结束属于正常关停：限时排空在途请求后返回 nil。
func (s *Server) Run(ctx context.Context, drainTimeout time.Duration, log *zap.SugaredLogger) error {
	if s == nil || s.srv == nil {
		return errors.New("http server not initialized")
	}
	if log == nil {
		log = logger.S()
	}

	listener, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	boundAddr := listener.Addr().String()
	s.mu.Lock()
	s.bound = boundAddr
	s.mu.Unlock()
	log.Infow("http_listen", "addr", boundAddr)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	log.Infow("http_shutdown", "drain_timeout", drainTimeout.String())
	if err := s.srv.Shutdown(drainCtx); err != nil {
		log.Errorw("http_shutdown_failed", "error", err)
		return err
	}
	// Serve 以 ErrServerClosed 收尾
	<-serveErr
	return nil
}
