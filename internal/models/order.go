package models

import "time"

// DeliveryChoice 下单时每个品牌的配送方式选择
type DeliveryChoice struct {
	BrandID          uint `json:"brand_id"`
	ShippingMethodID uint `json:"shipping_method_id"`
}

// CreateOrderInput 创建订单请求体
type CreateOrderInput struct {
	ShippingAddressID uint             `json:"shipping_address_id"`
	DeliveryChoices   []DeliveryChoice `json:"delivery_choices"`
}

// OrderItem 订单项
type OrderItem struct {
	ProductVariantID uint   `json:"product_variant_id"`
	ProductID        uint   `json:"product_id"`
	ProductName      string `json:"product_name"`
	BrandID          uint   `json:"brand_id"`
	BrandName        string `json:"brand_name"`
	UnitPrice        Money  `json:"unit_price"`
	Quantity         int    `json:"quantity"`
	LineTotal        Money  `json:"line_total"`
	PrimaryImageURL  string `json:"primary_image_url"`
}

// Invoice 按品牌拆分的发货单
type Invoice struct {
	ID               uint   `json:"id"`
	BrandID          uint   `json:"brand_id"`
	BrandName        string `json:"brand_name"`
	ShippingMethodID uint   `json:"shipping_method_id"`
	ShippingCost     Money  `json:"shipping_cost"`
	Status           string `json:"status"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
}

// Order 订单（创建后由服务端持有，客户端仅保存只读视图）
type Order struct {
	ID                uint        `json:"id"`
	Status            string      `json:"status"`
	TotalAmount       Money       `json:"total_amount"`
	ShippingAddressID uint        `json:"shipping_address_id"`
	Items             []OrderItem `json:"items"`
	Invoices          []Invoice   `json:"invoices"`
	CreatedAt         time.Time   `json:"created_at"`
}
