package models

// User 用户资料（远端所有，本地缓存一份用于会话恢复）
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// WishlistEntry 心愿单条目
type WishlistEntry struct {
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	BrandID         uint   `json:"brand_id"`
	PrimaryImageURL string `json:"primary_image_url"`
	UnitPrice       Money  `json:"unit_price"`
}

// BrandSubscription 品牌订阅条目
type BrandSubscription struct {
	BrandID   uint   `json:"brand_id"`
	BrandName string `json:"brand_name"`
}
