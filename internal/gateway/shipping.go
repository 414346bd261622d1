package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veridia/storefront/internal/models"
)

// batchShippingInput 批量拉取配送方式请求体
type batchShippingInput struct {
	BrandIDs []uint `json:"brand_ids"`
}

// ListShippingMethods 拉取单个品牌的配送方式
func (c *Client) ListShippingMethods(ctx context.Context, brandID uint) ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shipping/brands/%d", brandID), nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// BatchShippingMethods 按品牌 ID 列表批量拉取配送方式
func (c *Client) BatchShippingMethods(ctx context.Context, brandIDs []uint) (map[uint][]models.ShippingMethod, error) {
	var result map[uint][]models.ShippingMethod
	if err := c.do(ctx, http.MethodPost, "/shipping/batch", batchShippingInput{BrandIDs: brandIDs}, &result); err != nil {
		return nil, err
	}
	return result, nil
}
