package admin

import (
	"strconv"
	"strings"

	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

func parseCategoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "分类标识无效", nil)
		return 0, false
	}
	return uint(id), true
}

// ListCategories 后台分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	category := &models.Category{
		Slug:        strings.TrimSpace(req.Slug),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}
	if err := h.CategoryService.Create(category); err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, response.CodeInternal, "创建分类失败")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, response.CodeInternal, "获取分类失败")
		return
	}

	category.Slug = strings.TrimSpace(req.Slug)
	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	category.ImageURL = req.ImageURL
	category.SortOrder = req.SortOrder
	if err := h.CategoryService.Update(category); err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, response.CodeInternal, "更新分类失败")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（仅允许空分类）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, response.CodeInternal, "删除分类失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
