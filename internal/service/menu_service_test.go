package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMenuServiceTest(t *testing.T, name string) (*gorm.DB, *MenuService) {
	t.Helper()
	dsn := fmt.Sprintf("file:menu_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.MenuItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewMenuService(
		repository.NewMenuItemRepository(db),
		repository.NewCategoryRepository(db),
	)
	return db, svc
}

func TestListOnlyReturnsAvailableItems(t *testing.T) {
	db, svc := setupMenuServiceTest(t, "only_available")
	available := seedMenuItem(t, db, "margherita", 11.00)
	hidden := seedMenuItem(t, db, "espresso", 2.50)
	hidden.IsAvailable = false
	if err := db.Save(hidden).Error; err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	items, total, err := svc.List(repository.MenuListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 available item, got total=%d len=%d", total, len(items))
	}
	if items[0].ID != available.ID {
		t.Fatalf("expected item %d, got %d", available.ID, items[0].ID)
	}
}

func TestListAdminIncludesUnavailableItems(t *testing.T) {
	db, svc := setupMenuServiceTest(t, "admin_all")
	seedMenuItem(t, db, "tiramisu", 6.50)
	hidden := seedMenuItem(t, db, "limonata", 4.00)
	hidden.IsAvailable = false
	if err := db.Save(hidden).Error; err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	_, total, err := svc.ListAdmin(repository.MenuListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 items for admin listing, got %d", total)
	}
}

func TestListRelatedSkipsSelfAndOtherCategories(t *testing.T) {
	db, svc := setupMenuServiceTest(t, "related")
	base := seedMenuItem(t, db, "carbonara", 14.50)
	sibling := models.MenuItem{
		CategoryID:  base.CategoryID,
		Slug:        "arrabbiata",
		Name:        "测试菜品-arrabbiata",
		Price:       models.NewMoneyFromFloat(12.00),
		IsAvailable: true,
	}
	if err := db.Create(&sibling).Error; err != nil {
		t.Fatalf("create sibling failed: %v", err)
	}
	soldOut := models.MenuItem{
		CategoryID: base.CategoryID,
		Slug:       "lasagna",
		Name:       "测试菜品-lasagna",
		Price:      models.NewMoneyFromFloat(13.00),
	}
	if err := db.Create(&soldOut).Error; err != nil {
		t.Fatalf("create sold out item failed: %v", err)
	}
	seedMenuItem(t, db, "bruschetta", 7.50)

	items, err := svc.ListRelated(base.ID, 4)
	if err != nil {
		t.Fatalf("ListRelated error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 related item, got %d", len(items))
	}
	if items[0].ID != sibling.ID {
		t.Fatalf("expected sibling %d, got %d", sibling.ID, items[0].ID)
	}
}

func TestListRelatedUnknownItem(t *testing.T) {
	_, svc := setupMenuServiceTest(t, "related_missing")
	if _, err := svc.ListRelated(999, 4); err != ErrMenuItemNotFound {
		t.Fatalf("expected ErrMenuItemNotFound, got: %v", err)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	db, svc := setupMenuServiceTest(t, "dup_slug")
	existing := seedMenuItem(t, db, "diavola", 13.50)

	err := svc.Create(&models.MenuItem{
		CategoryID:  existing.CategoryID,
		Slug:        "diavola",
		Name:        "重复菜品",
		Price:       models.NewMoneyFromFloat(9.99),
		IsAvailable: true,
	})
	if err != ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got: %v", err)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	_, svc := setupMenuServiceTest(t, "no_category")
	err := svc.Create(&models.MenuItem{
		CategoryID:  999,
		Slug:        "ghost",
		Name:        "无分类菜品",
		Price:       models.NewMoneyFromFloat(5.00),
		IsAvailable: true,
	})
	if err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got: %v", err)
	}
}

func TestSetAvailabilityTogglesItem(t *testing.T) {
	db, svc := setupMenuServiceTest(t, "availability")
	item := seedMenuItem(t, db, "caprese", 9.00)

	if err := svc.SetAvailability(item.ID, false); err != nil {
		t.Fatalf("SetAvailability error: %v", err)
	}

	var reloaded models.MenuItem
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("expected item unavailable after toggle")
	}
}
