package repository

import (
	"errors"
	"strings"

	"github.com/tavolo-next/internal/models"

	"gorm.io/gorm"
)

// MenuItemRepository 菜品数据访问接口
type MenuItemRepository interface {
	List(filter MenuListFilter) ([]models.MenuItem, int64, error)
	ListFeatured(limit int) ([]models.MenuItem, error)
	ListRelated(categoryID, excludeID uint, limit int) ([]models.MenuItem, error)
	GetByID(id uint) (*models.MenuItem, error)
	GetBySlug(slug string) (*models.MenuItem, error)
	GetByIDs(ids []uint) ([]models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) *GormMenuItemRepository
}

// GormMenuItemRepository GORM 实现
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜品仓库
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMenuItemRepository) WithTx(tx *gorm.DB) *GormMenuItemRepository {
	if tx == nil {
		return r
	}
	return &GormMenuItemRepository{db: tx}
}

// List 菜品列表
func (r *GormMenuItemRepository) List(filter MenuListFilter) ([]models.MenuItem, int64, error) {
	var items []models.MenuItem
	query := r.db.Model(&models.MenuItem{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		keyword := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", keyword, keyword)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.IsVegan {
		query = query.Where("is_vegan = ?", true)
	}
	if filter.IsGlutenFree {
		query = query.Where("is_gluten_free = ?", true)
	}
	if filter.IsSpicy {
		query = query.Where("is_spicy = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	query = query.Order(buildMenuOrderClause(filter.SortBy, filter.SortOrder))

	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildMenuOrderClause(sortBy, sortOrder string) string {
	column := "sort_order DESC, id"
	switch sortBy {
	case "name":
		column = "name"
	case "price":
		column = "price"
	case "created_at":
		column = "created_at"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

// ListFeatured 推荐菜品
func (r *GormMenuItemRepository) ListFeatured(limit int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := r.db.Where("is_featured = ? AND is_available = ?", true, true).
		Order("sort_order DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListRelated 同分类下的其他可售菜品
func (r *GormMenuItemRepository) ListRelated(categoryID, excludeID uint, limit int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := r.db.Where("category_id = ? AND id != ? AND is_available = ?", categoryID, excludeID, true).
		Order("sort_order DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取菜品
func (r *GormMenuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug 根据 slug 获取菜品
func (r *GormMenuItemRepository) GetBySlug(slug string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDs 批量获取菜品
func (r *GormMenuItemRepository) GetByIDs(ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建菜品
func (r *GormMenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update 更新菜品
func (r *GormMenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete 删除菜品
func (r *GormMenuItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormMenuItemRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.MenuItem{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
