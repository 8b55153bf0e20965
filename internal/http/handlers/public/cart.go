package public

import (
	"strconv"
	"strings"

	"github.com/tavolo-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// CartUpdateRequest 更新购物车数量请求
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车（可携带优惠码预览金额分解）
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	promoCode := strings.TrimSpace(c.Query("promo_code"))
	cart, err := h.CartService.GetCart(userID, promoCode)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "获取购物车失败")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车（已存在则累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	if err := h.CartService.AddItem(userID, req.MenuItemID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "加入购物车失败")
		return
	}

	cart, err := h.CartService.GetCart(userID, "")
	if err != nil {
		respondError(c, response.CodeInternal, "获取购物车失败", err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 更新购物车数量（0 表示移除）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	menuItemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuItemID == 0 {
		respondError(c, response.CodeBadRequest, "菜品标识无效", nil)
		return
	}

	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if err := h.CartService.UpdateQuantity(userID, uint(menuItemID), req.Quantity); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "更新购物车失败")
		return
	}

	cart, err := h.CartService.GetCart(userID, "")
	if err != nil {
		respondError(c, response.CodeInternal, "获取购物车失败", err)
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	menuItemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || menuItemID == 0 {
		respondError(c, response.CodeBadRequest, "菜品标识无效", nil)
		return
	}

	if err := h.CartService.RemoveItem(userID, uint(menuItemID)); err != nil {
		respondError(c, response.CodeInternal, "移除购物车项失败", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		respondError(c, response.CodeInternal, "清空购物车失败", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
