package service

import (
	"context"

	"github.com/veridia/storefront/internal/gateway"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/optimistic"
	"github.com/veridia/storefront/internal/session"
)

// InstrumentGateway 已保存支付方式远端接口
type InstrumentGateway interface {
	ListPaymentInstruments(ctx context.Context, userID uint) ([]models.PaymentInstrument, error)
	SetDefaultPaymentInstrument(ctx context.Context, userID uint, instrumentID string) error
	RemovePaymentInstrument(ctx context.Context, userID uint, instrumentID string) error
}

// PaymentInstrumentService 已保存支付方式：默认位切换与删除都是
// 整体快照式乐观更新（删除会重排整个列表，逐键回滚不够用）。
type PaymentInstrumentService struct {
	gw          InstrumentGateway
	session     *session.Store
	instruments *optimistic.Value[[]models.PaymentInstrument]
	aborter     gateway.Aborter
}

// NewPaymentInstrumentService 创建支付方式服务
func NewPaymentInstrumentService(gw InstrumentGateway, sessionStore *session.Store) *PaymentInstrumentService {
	return &PaymentInstrumentService{
		gw:          gw,
		session:     sessionStore,
		instruments: optimistic.NewValue([]models.PaymentInstrument(nil)),
	}
}

// Refresh 拉取支付方式列表
func (s *PaymentInstrumentService) Refresh(ctx context.Context) ([]models.PaymentInstrument, error) {
	userID := s.session.UserID()
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	fetchCtx := s.aborter.Next(ctx)
	instruments, err := s.gw.ListPaymentInstruments(fetchCtx, userID)
	if err != nil {
		return nil, err
	}
	s.instruments.Set(instruments)
	return instruments, nil
}

// List 当前本地列表（含乐观值）
func (s *PaymentInstrumentService) List() []models.PaymentInstrument {
	return s.instruments.Get()
}

// SetDefault 乐观切换默认支付方式
func (s *PaymentInstrumentService) SetDefault(ctx context.Context, instrumentID string) error {
	userID := s.session.UserID()
	if userID == 0 {
		return ErrNotAuthenticated
	}
	current := s.instruments.Get()
	found := false
	next := make([]models.PaymentInstrument, len(current))
	for i, instrument := range current {
		instrument.IsDefault = instrument.ID == instrumentID
		if instrument.IsDefault {
			found = true
		}
		next[i] = instrument
	}
	if !found {
		return ErrInstrumentNotFound
	}
	return s.instruments.Apply(ctx, next, func(ctx context.Context) error {
		return s.gw.SetDefaultPaymentInstrument(ctx, userID, instrumentID)
	})
}

// Remove 乐观删除支付方式
func (s *PaymentInstrumentService) Remove(ctx context.Context, instrumentID string) error {
	userID := s.session.UserID()
	if userID == 0 {
		return ErrNotAuthenticated
	}
	current := s.instruments.Get()
	next := make([]models.PaymentInstrument, 0, len(current))
	found := false
	for _, instrument := range current {
		if instrument.ID == instrumentID {
			found = true
			continue
		}
		next = append(next, instrument)
	}
	if !found {
		return ErrInstrumentNotFound
	}
	return s.instruments.Apply(ctx, next, func(ctx context.Context) error {
		return s.gw.RemovePaymentInstrument(ctx, userID, instrumentID)
	})
}
