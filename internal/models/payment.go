package models

// PaymentInstrument 已保存的支付方式
type PaymentInstrument struct {
	ID        string `json:"id"`
	Brand     string `json:"brand"` // 卡组织（visa / mastercard ...）
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"exp_month"`
	ExpYear   int    `json:"exp_year"`
	IsDefault bool   `json:"is_default"`
}

// PaymentIntent 支付网关预留凭证
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Type         string `json:"type"` // payment / setup
	Status       string `json:"status"`
}

// PaymentConfirmation 支付确认结果
type PaymentConfirmation struct {
	OrderID         uint   `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
}
