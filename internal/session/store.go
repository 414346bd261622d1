package session

import (
	"sync"
	"time"

	"github.com/veridia/storefront/internal/logger"
	"github.com/veridia/storefront/internal/repository"
)

// Store 会话存储：reducer 状态 + 本地持久化 + 过期回调
type Store struct {
	mu        sync.Mutex
	state     State
	repo      repository.SessionRepository
	onExpired func()
	expired   bool // 当前会话是否已触发过期回调
}

// NewStore 创建会话存储
func NewStore(repo repository.SessionRepository) *Store {
	return &Store{repo: repo}
}

// OnSessionExpired 注册会话过期回调（401 时触发一次）
func (s *Store) OnSessionExpired(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = callback
}

// Current 当前会话状态
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token 当前凭证（网关 TokenSource）
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// UserID 当前用户 ID，未登录返回 0
func (s *Store) UserID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return 0
	}
	return s.state.User.ID
}

// Dispatch 处理动作并同步持久化
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Transition(s.state, action)
	next := s.state
	switch action.(type) {
	case LoginAction, SetUserAction, RestoreAction:
		if next.Authenticated() {
			s.expired = false
		}
	}
	s.mu.Unlock()

	s.persist(action, next)
	return next
}

// Restore 启动时同步读取本地持久化的会话；过期凭证降级为匿名
func (s *Store) Restore() State {
	if s.repo == nil {
		return s.Current()
	}
	token, user, err := s.repo.Load()
	if err != nil {
		logger.Warnw("session_restore_failed", "error", err)
		return s.Current()
	}
	if token == "" {
		return s.Current()
	}
	if tokenExpired(token, time.Now()) {
		logger.Infow("session_restore_token_expired")
		_ = s.repo.Clear()
		return s.Current()
	}
	return s.Dispatch(RestoreAction{Token: token, User: user})
}

// HandleAuthError 网关 401 的会话级处理：强制登出并触发一次过期回调
func (s *Store) HandleAuthError() {
	s.mu.Lock()
	alreadyExpired := s.expired
	s.expired = true
	var callback func()
	if !alreadyExpired {
		callback = s.onExpired
	}
	s.mu.Unlock()

	if alreadyExpired {
		return
	}
	s.Dispatch(LogoutAction{})
	if callback != nil {
		callback()
	}
}

func (s *Store) persist(action Action, state State) {
	if s.repo == nil {
		return
	}
	switch action.(type) {
	case LoginAction, SetUserAction:
		if !state.Authenticated() {
			return
		}
		if err := s.repo.Save(state.Token, state.User); err != nil {
			logger.Warnw("session_persist_failed", "error", err)
		}
	case LogoutAction:
		if err := s.repo.Clear(); err != nil {
			logger.Warnw("session_clear_failed", "error", err)
		}
	}
}
