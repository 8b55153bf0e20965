package public

import (
	"strconv"
	"strings"

	handlershared "github.com/tavolo-next/internal/http/handlers/shared"
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseBoolQuery(c *gin.Context, key string) bool {
	value := strings.ToLower(strings.TrimSpace(c.Query(key)))
	return value == "1" || value == "true"
}

func parsePriceQuery(c *gin.Context, key string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func buildMenuListFilter(c *gin.Context) repository.MenuListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	return repository.MenuListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		MinPrice:     parsePriceQuery(c, "min_price"),
		MaxPrice:     parsePriceQuery(c, "max_price"),
		IsVegan:      parseBoolQuery(c, "vegan"),
		IsGlutenFree: parseBoolQuery(c, "gluten_free"),
		IsSpicy:      parseBoolQuery(c, "spicy"),
		OnlyFeatured: parseBoolQuery(c, "featured"),
		SortBy:       strings.TrimSpace(c.Query("sort_by")),
		SortOrder:    strings.TrimSpace(c.Query("sort_order")),
	}
}

// ListMenuItems 前台菜品列表（仅在售，支持筛选与排序）
func (h *Handler) ListMenuItems(c *gin.Context) {
	filter := buildMenuListFilter(c)

	items, total, err := h.MenuService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取菜品列表失败", err)
		return
	}

	totalPage := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	response.SuccessWithPage(c, items, response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// ListFeaturedMenuItems 前台推荐菜品
func (h *Handler) ListFeaturedMenuItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	items, err := h.MenuService.ListFeatured(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "获取推荐菜品失败", err)
		return
	}
	response.Success(c, items)
}

// GetMenuItem 前台菜品详情（优先按 ID，非数字按 slug）
func (h *Handler) GetMenuItem(c *gin.Context) {
	key := strings.TrimSpace(c.Param("id"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "菜品标识无效", nil)
		return
	}

	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		item, err := h.MenuService.GetByID(uint(id))
		if err != nil {
			respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "获取菜品失败")
			return
		}
		response.Success(c, item)
		return
	}

	item, err := h.MenuService.GetBySlug(key)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "获取菜品失败")
		return
	}
	response.Success(c, item)
}

// ListRelatedMenuItems 同分类推荐（详情页"你可能还喜欢"）
func (h *Handler) ListRelatedMenuItems(c *gin.Context) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "菜品标识无效", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	items, listErr := h.MenuService.ListRelated(uint(id), limit)
	if listErr != nil {
		respondWithMappedError(c, listErr, cartCommonErrorRules, response.CodeInternal, "获取推荐菜品失败")
		return
	}
	response.Success(c, items)
}

// ListCategories 前台分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, categories)
}
