package public

import (
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CheckoutAddressRequest 提交收货地址请求
type CheckoutAddressRequest struct {
	Address models.JSON `json:"address" binding:"required"`
}

// CheckoutPaymentRequest 提交支付方式请求
type CheckoutPaymentRequest struct {
	PromoCode string `json:"promo_code"`
}

// CheckoutOTPRequest 支付验证码请求
type CheckoutOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

// StartCheckout 开始结账流程
func (h *Handler) StartCheckout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	session, err := h.CheckoutService.Start(c.Request.Context(), userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, session)
}

// GetCheckout 查询当前结账会话
func (h *Handler) GetCheckout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	session, err := h.CheckoutService.Get(c.Request.Context(), userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, session)
}

// SubmitCheckoutAddress 提交收货地址
func (h *Handler) SubmitCheckoutAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	session, err := h.CheckoutService.SubmitAddress(c.Request.Context(), userID, req.Address)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, session)
}

// SubmitCheckoutPayment 提交支付方式（模拟支付，仅记录优惠码）
func (h *Handler) SubmitCheckoutPayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	session, err := h.CheckoutService.SubmitPayment(c.Request.Context(), userID, req.PromoCode)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, session)
}

// VerifyCheckoutOTP 校验支付验证码并创建订单
func (h *Handler) VerifyCheckoutOTP(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	order, session, err := h.CheckoutService.VerifyOTP(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":   order,
		"session": session,
	})
}

// CancelCheckout 取消结账流程
func (h *Handler) CancelCheckout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CheckoutService.Cancel(c.Request.Context(), userID); err != nil {
		respondError(c, response.CodeInternal, "取消结账失败", err)
		return
	}
	response.Success(c, gin.H{"cancelled": true})
}
