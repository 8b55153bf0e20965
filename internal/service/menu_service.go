package service

import (
	"strings"

	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"
)

// MenuService 菜单服务
type MenuService struct {
	menuRepo     repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(menuRepo repository.MenuItemRepository, categoryRepo repository.CategoryRepository) *MenuService {
	return &MenuService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
	}
}

// List 菜品列表（面向前台，仅可售）
func (s *MenuService) List(filter repository.MenuListFilter) ([]models.MenuItem, int64, error) {
	filter.OnlyAvailable = true
	filter.WithCategory = true
	return s.menuRepo.List(filter)
}

// ListAdmin 菜品列表（管理端，不过滤可售状态）
func (s *MenuService) ListAdmin(filter repository.MenuListFilter) ([]models.MenuItem, int64, error) {
	filter.WithCategory = true
	return s.menuRepo.List(filter)
}

// ListFeatured 推荐菜品
func (s *MenuService) ListFeatured(limit int) ([]models.MenuItem, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}
	return s.menuRepo.ListFeatured(limit)
}

// ListRelated 同分类推荐（详情页用）
func (s *MenuService) ListRelated(menuItemID uint, limit int) ([]models.MenuItem, error) {
	if limit <= 0 || limit > 12 {
		limit = 4
	}
	item, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return s.menuRepo.ListRelated(item.CategoryID, item.ID, limit)
}

// GetByID 获取菜品详情
func (s *MenuService) GetByID(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// GetBySlug 按 slug 获取菜品详情
func (s *MenuService) GetBySlug(slug string) (*models.MenuItem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrMenuItemNotFound
	}
	item, err := s.menuRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// Create 创建菜品（管理端）
func (s *MenuService) Create(item *models.MenuItem) error {
	if item == nil {
		return ErrMenuItemNotFound
	}
	item.Slug = strings.TrimSpace(item.Slug)
	if item.Slug == "" || strings.TrimSpace(item.Name) == "" {
		return ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(item.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.menuRepo.CountBySlug(item.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return s.menuRepo.Create(item)
}

// Update 更新菜品（管理端）
func (s *MenuService) Update(item *models.MenuItem) error {
	if item == nil || item.ID == 0 {
		return ErrMenuItemNotFound
	}
	existing, err := s.menuRepo.GetByID(item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMenuItemNotFound
	}
	if item.CategoryID != existing.CategoryID {
		category, err := s.categoryRepo.GetByID(item.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	item.Slug = strings.TrimSpace(item.Slug)
	if item.Slug != existing.Slug {
		count, err := s.menuRepo.CountBySlug(item.Slug, &item.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}
	return s.menuRepo.Update(item)
}

// Delete 删除菜品（管理端）
func (s *MenuService) Delete(id uint) error {
	existing, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMenuItemNotFound
	}
	return s.menuRepo.Delete(id)
}

// SetAvailability 上下架菜品（管理端）
func (s *MenuService) SetAvailability(id uint, available bool) error {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	item.IsAvailable = available
	return s.menuRepo.Update(item)
}
