package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/tavolo-next/internal/http/handlers/shared"
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// MenuItemRequest 菜品创建/更新请求
type MenuItemRequest struct {
	CategoryID     uint     `json:"category_id" binding:"required"`
	Slug           string   `json:"slug" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	OriginalPrice  float64  `json:"original_price"`
	ImageURL       string   `json:"image_url"`
	Tags           []string `json:"tags"`
	IsVegan        bool     `json:"is_vegan"`
	IsGlutenFree   bool     `json:"is_gluten_free"`
	IsSpicy        bool     `json:"is_spicy"`
	IsFeatured     bool     `json:"is_featured"`
	IsAvailable    *bool    `json:"is_available"`
	InventoryCount *int     `json:"inventory_count"`
	Allergens      string   `json:"allergens"`
	SortOrder      int      `json:"sort_order"`
}

// MenuItemAvailabilityRequest 上下架请求
type MenuItemAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

func parseMenuItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "菜品标识无效", nil)
		return 0, false
	}
	return uint(id), true
}

func (req *MenuItemRequest) apply(item *models.MenuItem) {
	item.CategoryID = req.CategoryID
	item.Slug = strings.TrimSpace(req.Slug)
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Price = models.NewMoneyFromFloat(req.Price)
	item.OriginalPrice = models.NewMoneyFromFloat(req.OriginalPrice)
	item.ImageURL = req.ImageURL
	item.Tags = models.StringArray(req.Tags)
	item.IsVegan = req.IsVegan
	item.IsGlutenFree = req.IsGlutenFree
	item.IsSpicy = req.IsSpicy
	item.IsFeatured = req.IsFeatured
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	item.InventoryCount = req.InventoryCount
	item.Allergens = req.Allergens
	item.SortOrder = req.SortOrder
}

// ListMenuItems 后台菜品列表（含下架菜品）
func (h *Handler) ListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.MenuListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		SortBy:     strings.TrimSpace(c.Query("sort_by")),
		SortOrder:  strings.TrimSpace(c.Query("sort_order")),
	}

	items, total, err := h.MenuService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取菜品列表失败", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, items, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetMenuItem 后台菜品详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := parseMenuItemID(c)
	if !ok {
		return
	}

	item, err := h.MenuService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "获取菜品失败")
		return
	}
	response.Success(c, item)
}

// CreateMenuItem 创建菜品
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	item := &models.MenuItem{IsAvailable: true}
	req.apply(item)
	if err := h.MenuService.Create(item); err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "创建菜品失败")
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem 更新菜品
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseMenuItemID(c)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	item, err := h.MenuService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "获取菜品失败")
		return
	}

	req.apply(item)
	if err := h.MenuService.Update(item); err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "更新菜品失败")
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseMenuItemID(c)
	if !ok {
		return
	}

	if err := h.MenuService.Delete(id); err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "删除菜品失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetMenuItemAvailability 菜品上下架
func (h *Handler) SetMenuItemAvailability(c *gin.Context) {
	id, ok := parseMenuItemID(c)
	if !ok {
		return
	}

	var req MenuItemAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if err := h.MenuService.SetAvailability(id, req.IsAvailable); err != nil {
		respondWithMappedError(c, err, menuAdminErrorRules, response.CodeInternal, "更新菜品状态失败")
		return
	}
	response.Success(c, gin.H{"is_available": req.IsAvailable})
}
