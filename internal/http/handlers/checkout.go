package handlers

import (
	"errors"
	"strconv"

	"github.com/veridia/storefront/internal/constants"
	"github.com/veridia/storefront/internal/http/response"
	"github.com/veridia/storefront/internal/models"
	"github.com/veridia/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SelectAddressRequest 选择收货地址请求体
type SelectAddressRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// SelectShippingRequest 选择品牌配送方式请求体
type SelectShippingRequest struct {
	BrandID  uint `json:"brand_id" binding:"required"`
	MethodID uint `json:"method_id" binding:"required"`
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrNotAuthenticated, code: response.CodeUnauthorized, msg: "please sign in first"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrNoAddress, code: response.CodeBadRequest, msg: "please select a shipping address first"},
	{target: service.ErrShippingIncomplete, code: response.CodeBadRequest, msg: "please choose a delivery option for every vendor"},
	{target: service.ErrOrderNotCreated, code: response.CodeBadRequest, msg: "order has not been placed yet"},
}

// GetCheckout 结算页状态：先与最新购物车对账，再返回流程视图。
// 购物车为空时结算无从谈起，指示客户端回购物车页。
func (h *Handler) GetCheckout(c *gin.Context) {
	if err := h.CheckoutService.SyncCart(); err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			response.SuccessWithRedirect(c, h.checkoutView(), constants.RouteCart)
			return
		}
		h.respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, h.checkoutView())
}

// SelectAddress 选择收货地址
func (h *Handler) SelectAddress(c *gin.Context) {
	var req SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CheckoutService.SelectAddress(req.AddressID); err != nil {
		h.respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, h.checkoutView())
}

// SelectShipping 为品牌选定配送方式。
// 价格与名称以远端目录为准，客户端只递交 (品牌, 方式) 对。
func (h *Handler) SelectShipping(c *gin.Context) {
	var req SelectShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	methods, err := h.ShippingService.MethodsFor(c.Request.Context(), req.BrandID)
	if err != nil {
		h.respondGatewayError(c, err)
		return
	}
	var chosen *models.ShippingMethod
	for i := range methods {
		if methods[i].ID == req.MethodID {
			chosen = &methods[i]
			break
		}
	}
	if chosen == nil {
		response.NotFound(c, "shipping method not found for this vendor")
		return
	}

	if err := h.CheckoutService.SelectShipping(models.ShippingChoice{
		BrandID:     req.BrandID,
		MethodID:    chosen.ID,
		Price:       chosen.Price,
		DisplayName: chosen.DisplayName,
	}); err != nil {
		h.respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, h.checkoutView())
}

// GetCheckoutShippingMethods 拉取购物车内全部品牌的配送方式
func (h *Handler) GetCheckoutShippingMethods(c *gin.Context) {
	brandIDs := h.CartService.BrandIDs()
	if len(brandIDs) == 0 {
		response.Success(c, gin.H{"methods": map[uint][]models.ShippingMethod{}})
		return
	}
	methods, err := h.ShippingService.MethodsForBrands(c.Request.Context(), brandIDs)
	if err != nil {
		h.respondGatewayError(c, err)
		return
	}
	response.Success(c, gin.H{"methods": methods})
}

// PlaceOrder 下单。幂等：订单已存在或创建在途时返回既有订单号，不再发起调用。
func (h *Handler) PlaceOrder(c *gin.Context) {
	orderID, err := h.CheckoutService.PlaceOrder(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, gin.H{"order_id": orderID})
}

// BeginPayment 为已创建订单申请支付凭证
func (h *Handler) BeginPayment(c *gin.Context) {
	intent, err := h.CheckoutService.BeginPayment(c.Request.Context())
	if err != nil {
		h.respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, gin.H{"payment_intent": intent})
}

// ConfirmPayment 支付网关回跳入口
func (h *Handler) ConfirmPayment(c *gin.Context) {
	orderID, _ := strconv.ParseUint(c.Param("order_id"), 10, 64)
	intentID := c.Query(constants.QueryParamPaymentIntent)
	redirectStatus := c.Query(constants.QueryParamRedirectStatus)

	outcome := h.PaymentConfirmService.Handle(c.Request.Context(), uint(orderID), intentID, redirectStatus)
	switch {
	case errors.Is(outcome.Err, service.ErrMissingPaymentParams):
		response.ErrorWithRedirect(c, response.CodeBadRequest, "missing payment parameters", outcome.Redirect)
	case errors.Is(outcome.Err, service.ErrPaymentFailed):
		response.ErrorWithRedirect(c, response.CodeBadRequest, "payment was not completed, please try again", outcome.Redirect)
	case outcome.Err != nil:
		h.respondGatewayError(c, outcome.Err)
	case outcome.Skipped:
		response.Success(c, gin.H{"skipped": true})
	default:
		response.SuccessWithRedirect(c, gin.H{"confirmed": true}, outcome.Redirect)
	}
}

func (h *Handler) checkoutView() gin.H {
	matrix := h.CheckoutService.Matrix()
	return gin.H{
		"state":            h.CheckoutService.State(),
		"address_id":       h.CheckoutService.AddressID(),
		"order_id":         h.CheckoutService.OrderID(),
		"can_proceed":      h.CheckoutService.CanProceed(),
		"delivery_choices": matrix.DeliveryChoices(),
		"shipping_total":   matrix.TotalShippingCost(),
	}
}
