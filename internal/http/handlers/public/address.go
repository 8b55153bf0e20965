package public

import (
	"strconv"

	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/models"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址创建/更新请求
type AddressRequest struct {
	Label        string `json:"label"`
	Street       string `json:"street" binding:"required"`
	City         string `json:"city" binding:"required"`
	ZipCode      string `json:"zip_code" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Instructions string `json:"instructions"`
	IsDefault    bool   `json:"is_default"`
}

func parseAddressID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "地址标识无效", nil)
		return 0, false
	}
	return uint(id), true
}

// ListAddresses 当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取地址列表失败", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	address := &models.Address{
		UserID:       userID,
		Label:        req.Label,
		Street:       req.Street,
		City:         req.City,
		ZipCode:      req.ZipCode,
		Phone:        req.Phone,
		Instructions: req.Instructions,
		IsDefault:    req.IsDefault,
	}
	if err := h.AddressService.Create(address); err != nil {
		respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "创建地址失败")
		return
	}
	if req.IsDefault {
		if err := h.AddressService.SetDefault(address.ID, userID); err != nil {
			respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "设置默认地址失败")
			return
		}
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	address, err := h.AddressService.Get(addressID, userID)
	if err != nil {
		respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "获取地址失败")
		return
	}

	address.Label = req.Label
	address.Street = req.Street
	address.City = req.City
	address.ZipCode = req.ZipCode
	address.Phone = req.Phone
	address.Instructions = req.Instructions
	if err := h.AddressService.Update(address); err != nil {
		respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "更新地址失败")
		return
	}
	if req.IsDefault && !address.IsDefault {
		if err := h.AddressService.SetDefault(address.ID, userID); err != nil {
			respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "设置默认地址失败")
			return
		}
		address.IsDefault = true
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}

	if err := h.AddressService.Delete(addressID, userID); err != nil {
		respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "删除地址失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设置默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}

	if err := h.AddressService.SetDefault(addressID, userID); err != nil {
		respondWithMappedError(c, err, addressCommonErrorRules, response.CodeInternal, "设置默认地址失败")
		return
	}
	response.Success(c, gin.H{"updated": true})
}
