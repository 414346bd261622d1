package service

import (
	"sort"
	"sync"

	"github.com/veridia/storefront/internal/models"
)

// ShippingMatrix 每品牌一条的配送方式选择。
// 以品牌为键而非购物车条目：一个品牌一票发货，与其贡献多少行无关。
// 键控覆盖写，重选同一品牌不会产生重复或陈旧条目。
type ShippingMatrix struct {
	mu      sync.Mutex
	choices map[uint]models.ShippingChoice
}

// NewShippingMatrix 创建空矩阵
func NewShippingMatrix() *ShippingMatrix {
	return &ShippingMatrix{choices: make(map[uint]models.ShippingChoice)}
}

// Select 为品牌选定配送方式，覆盖同品牌的既有选择
func (m *ShippingMatrix) Select(choice models.ShippingChoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.choices[choice.BrandID] = choice
}

// Choice 读取某品牌的选择
func (m *ShippingMatrix) Choice(brandID uint) (models.ShippingChoice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	choice, ok := m.choices[brandID]
	return choice, ok
}

// Size 已选择的品牌数
func (m *ShippingMatrix) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.choices)
}

// IsReadyFor 给定品牌集合是否每个都已有选择
func (m *ShippingMatrix) IsReadyFor(brandIDs []uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range brandIDs {
		if _, ok := m.choices[id]; !ok {
			return false
		}
	}
	return true
}

// TotalShippingCost 全部选择的运费合计
func (m *ShippingMatrix) TotalShippingCost() models.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := models.ZeroMoney()
	for _, choice := range m.choices {
		total = total.Add(choice.Price)
	}
	return total
}

// DeliveryChoices 导出下单用的配送选择（按品牌 ID 升序，保证请求体确定性）
func (m *ShippingMatrix) DeliveryChoices() []models.DeliveryChoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	choices := make([]models.DeliveryChoice, 0, len(m.choices))
	for _, choice := range m.choices {
		choices = append(choices, models.DeliveryChoice{
			BrandID:          choice.BrandID,
			ShippingMethodID: choice.MethodID,
		})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].BrandID < choices[j].BrandID })
	return choices
}

// PruneTo 移除不在给定品牌集合内的选择（购物车变化后收敛不变量）
func (m *ShippingMatrix) PruneTo(brandIDs []uint) {
	keep := make(map[uint]struct{}, len(brandIDs))
	for _, id := range brandIDs {
		keep[id] = struct{}{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.choices {
		if _, ok := keep[id]; !ok {
			delete(m.choices, id)
		}
	}
}

// Reset 清空全部选择（结算流程重置）
func (m *ShippingMatrix) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.choices = make(map[uint]models.ShippingChoice)
}
