package service

import (
	"strings"

	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类（管理端）
func (s *CategoryService) Create(category *models.Category) error {
	if category == nil {
		return ErrCategoryNotFound
	}
	category.Slug = strings.TrimSpace(category.Slug)
	if category.Slug == "" || strings.TrimSpace(category.Name) == "" {
		return ErrInvalidInput
	}
	count, err := s.categoryRepo.CountBySlug(category.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return s.categoryRepo.Create(category)
}

// Update 更新分类（管理端）
func (s *CategoryService) Update(category *models.Category) error {
	if category == nil || category.ID == 0 {
		return ErrCategoryNotFound
	}
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	category.Slug = strings.TrimSpace(category.Slug)
	if category.Slug != existing.Slug {
		count, err := s.categoryRepo.CountBySlug(category.Slug, &category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}
	return s.categoryRepo.Update(category)
}

// Delete 删除分类（管理端，非空分类拒绝删除）
func (s *CategoryService) Delete(id uint) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountMenuItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}
	return s.categoryRepo.Delete(id)
}
