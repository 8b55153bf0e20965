package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T, name string) (*gorm.DB, *CartService) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.MenuItem{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	pricing := NewPricingService(config.PricingConfig{
		TaxRate:               0.08,
		DeliveryFee:           5.99,
		FreeDeliveryThreshold: 30,
	})
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewMenuItemRepository(db),
		pricing,
	)
	return db, svc
}

func TestAddItemMergesQuantity(t *testing.T) {
	db, svc := setupCartServiceTest(t, "merge")
	item := seedMenuItem(t, db, "pizza", 10.00)

	if err := svc.AddItem(1, item.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.AddItem(1, item.ID, 3); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	cart, err := svc.GetCart(1, "")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", cart.ItemCount)
	}
}

func TestAddItemClampsAtMax(t *testing.T) {
	db, svc := setupCartServiceTest(t, "clamp")
	item := seedMenuItem(t, db, "pasta", 9.00)

	if err := svc.AddItem(1, item.ID, 90); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.AddItem(1, item.ID, 50); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	cart, err := svc.GetCart(1, "")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if cart.Items[0].Quantity != 99 {
		t.Fatalf("expected quantity clamped at 99, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	db, svc := setupCartServiceTest(t, "snapshot")
	item := seedMenuItem(t, db, "salad", 7.50)

	if err := svc.AddItem(1, item.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	item.Price = models.NewMoneyFromFloat(20.00)
	if err := db.Save(item).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	// 再次加购不改变首次加购的快照价
	if err := svc.AddItem(1, item.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	cart, err := svc.GetCart(1, "")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if cart.Items[0].UnitPrice.String() != "7.50" {
		t.Fatalf("expected snapshot price 7.50, got %s", cart.Items[0].UnitPrice.String())
	}
	if cart.Items[0].LineTotal.String() != "15.00" {
		t.Fatalf("expected line total 15.00, got %s", cart.Items[0].LineTotal.String())
	}
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	db, svc := setupCartServiceTest(t, "unavailable")
	item := seedMenuItem(t, db, "soup", 4.50)
	item.IsAvailable = false
	if err := db.Save(item).Error; err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	if err := svc.AddItem(1, item.ID, 1); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("expected ErrMenuItemNotAvailable, got: %v", err)
	}
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	db, svc := setupCartServiceTest(t, "remove_on_zero")
	item := seedMenuItem(t, db, "calzone", 8.00)

	if err := svc.AddItem(1, item.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.UpdateQuantity(1, item.ID, 0); err != nil {
		t.Fatalf("UpdateQuantity error: %v", err)
	}

	cart, err := svc.GetCart(1, "")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestGetCartEvictsUnavailableItems(t *testing.T) {
	db, svc := setupCartServiceTest(t, "evict")
	item := seedMenuItem(t, db, "panna-cotta", 6.00)

	if err := svc.AddItem(1, item.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	item.IsAvailable = false
	if err := db.Save(item).Error; err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	cart, err := svc.GetCart(1, "")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected unavailable item evicted, got %d items", len(cart.Items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart row deleted, got %d", count)
	}
}

func TestGetCartAppliesPromoToBreakdown(t *testing.T) {
	db, svc := setupCartServiceTest(t, "promo")
	item := seedMenuItem(t, db, "espresso", 10.00)

	if err := svc.AddItem(1, item.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	cart, err := svc.GetCart(1, "SAVE10")
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if cart.Breakdown.Discount.String() != "2.00" {
		t.Fatalf("expected discount 2.00, got %s", cart.Breakdown.Discount.String())
	}
	if cart.Breakdown.Total.String() != "25.59" {
		t.Fatalf("expected total 25.59, got %s", cart.Breakdown.Total.String())
	}
}
