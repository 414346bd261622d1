package models

// CartItem 购物车项（服务端所有，客户端只读缓存）
type CartItem struct {
	ProductVariantID uint   `json:"product_variant_id"`
	ProductID        uint   `json:"product_id"`
	ProductName      string `json:"product_name"`
	BrandID          uint   `json:"brand_id"`
	BrandName        string `json:"brand_name"`
	Size             string `json:"size,omitempty"`
	Color            string `json:"color,omitempty"`
	UnitPrice        Money  `json:"unit_price"`
	Quantity         int    `json:"quantity"`
	LineTotal        Money  `json:"line_total"`
	AvailableStock   int    `json:"available_stock"`
	PrimaryImageURL  string `json:"primary_image_url"`
}

// Cart 购物车读模型
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalAmount Money      `json:"total_amount"`
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// BrandIDs 返回购物车内出现过的品牌 ID（按首次出现顺序去重）
func (c *Cart) BrandIDs() []uint {
	if c == nil {
		return nil
	}
	seen := make(map[uint]struct{}, len(c.Items))
	ids := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.BrandID]; ok {
			continue
		}
		seen[item.BrandID] = struct{}{}
		ids = append(ids, item.BrandID)
	}
	return ids
}
