package models

// ShippingMethod 品牌提供的配送方式
type ShippingMethod struct {
	ID            uint   `json:"id"`
	BrandID       uint   `json:"brand_id"`
	DisplayName   string `json:"display_name"`
	Price         Money  `json:"price"`
	EstimatedDays int    `json:"estimated_days"`
}

// ShippingChoice 结算时某品牌已选定的配送方式
type ShippingChoice struct {
	BrandID     uint   `json:"brand_id"`
	MethodID    uint   `json:"method_id"`
	Price       Money  `json:"price"`
	DisplayName string `json:"display_name"`
}
