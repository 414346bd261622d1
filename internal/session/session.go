package session

import "github.com/veridia/storefront/internal/models"

// State 会话状态
type State struct {
	Token string
	User  *models.User
}

// Authenticated 是否已登录
func (s State) Authenticated() bool {
	return s.Token != ""
}

// Action 会话状态迁移动作（标签化变体）
type Action interface {
	isSessionAction()
}

// LoginAction 登录成功
type LoginAction struct {
	Token string
	User  *models.User
}

// LogoutAction 登出（含会话过期强制登出）
type LogoutAction struct{}

// RestoreAction 启动时从本地存储恢复
type RestoreAction struct {
	Token string
	User  *models.User
}

// SetUserAction 刷新用户资料
type SetUserAction struct {
	User *models.User
}

func (LoginAction) isSessionAction()   {}
func (LogoutAction) isSessionAction()  {}
func (RestoreAction) isSessionAction() {}
func (SetUserAction) isSessionAction() {}

// Transition 纯状态迁移函数：对任意 (state, action) 都有定义
func Transition(state State, action Action) State {
	switch a := action.(type) {
	case LoginAction:
		return State{Token: a.Token, User: a.User}
	case LogoutAction:
		return State{}
	case RestoreAction:
		return State{Token: a.Token, User: a.User}
	case SetUserAction:
		if !state.Authenticated() {
			// 未登录时资料更新无意义，保持原状
			return state
		}
		return State{Token: state.Token, User: a.User}
	default:
		return state
	}
}
