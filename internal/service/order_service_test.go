package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/queue"
	"github.com/tavolo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T, name string) (*gorm.DB, *OrderService) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryTracking{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	pricing := NewPricingService(config.PricingConfig{
		TaxRate:               0.08,
		DeliveryFee:           5.99,
		FreeDeliveryThreshold: 30,
	})
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewMenuItemRepository(db),
		repository.NewTrackingRepository(db),
		pricing,
		queueClient,
		900*time.Millisecond,
	)
	return db, svc
}

func seedMenuItem(t *testing.T, db *gorm.DB, slug string, price float64) *models.MenuItem {
	t.Helper()
	now := time.Now()
	category := models.Category{Slug: slug + "-cat", Name: "测试分类", CreatedAt: now}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	item := models.MenuItem{
		CategoryID:  category.ID,
		Slug:        slug,
		Name:        "测试菜品-" + slug,
		Price:       models.NewMoneyFromFloat(price),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return &item
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	_, svc := setupOrderServiceTest(t, "empty_cart")
	_, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got: %v", err)
	}
}

func TestCreateFromCartUsesSnapshotPrice(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "snapshot_price")
	item := seedMenuItem(t, db, "margherita", 12.50)

	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   2,
		UnitPrice:  models.NewMoneyFromFloat(12.50),
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	// 加购后调价，订单仍按快照单价计
	item.Price = models.NewMoneyFromFloat(99.00)
	if err := db.Save(item).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}
	if order.Subtotal.String() != "25.00" {
		t.Fatalf("expected subtotal 25.00, got %s", order.Subtotal.String())
	}
	if order.Total.String() != "32.99" {
		t.Fatalf("expected total 32.99, got %s", order.Total.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", order.PaymentStatus)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice.String() != "12.50" {
		t.Fatalf("expected snapshot unit price 12.50, got %+v", order.Items)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected generated order no")
	}
}

func TestCreateFromCartWritesItemsInTransaction(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "tx")
	item := seedMenuItem(t, db, "carbonara", 15.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("expected 1 persisted order item, got %d", itemCount)
	}
}

func TestMarkPaidClearsCartAndStartsTracking(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "mark_paid")
	item := seedMenuItem(t, db, "tiramisu", 8.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	paid, err := svc.MarkPaid(order.ID, 1)
	if err != nil {
		t.Fatalf("MarkPaid error: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.Status != constants.OrderStatusAccepted {
		t.Fatalf("expected status accepted after payment, got %s", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Fatalf("expected paid_at set")
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusAccepted {
		t.Fatalf("expected persisted status accepted, got %s", stored.Status)
	}
	if stored.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected persisted payment_status paid, got %s", stored.PaymentStatus)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d items", cartCount)
	}

	var tracking models.DeliveryTracking
	if err := db.Where("order_id = ?", order.ID).First(&tracking).Error; err != nil {
		t.Fatalf("expected tracking row: %v", err)
	}
	if tracking.Stage != constants.DeliveryStagePlaced || tracking.Progress != 0 {
		t.Fatalf("unexpected initial tracking: %+v", tracking)
	}
}

func TestMarkPaidRejectsOtherUsersOrder(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "mark_paid_owner")
	item := seedMenuItem(t, db, "bruschetta", 6.50)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	if _, err := svc.MarkPaid(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got: %v", err)
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "mark_paid_idem")
	item := seedMenuItem(t, db, "lasagna", 14.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}
	if _, err := svc.MarkPaid(order.ID, 1); err != nil {
		t.Fatalf("first MarkPaid error: %v", err)
	}
	if _, err := svc.MarkPaid(order.ID, 1); err != nil {
		t.Fatalf("second MarkPaid should be no-op, got: %v", err)
	}

	var trackingCount int64
	if err := db.Model(&models.DeliveryTracking{}).Where("order_id = ?", order.ID).Count(&trackingCount).Error; err != nil {
		t.Fatalf("count tracking failed: %v", err)
	}
	if trackingCount != 1 {
		t.Fatalf("expected single tracking row, got %d", trackingCount)
	}
}

func TestMarkPaidRejectsCancelledOrder(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "mark_paid_cancelled")
	item := seedMenuItem(t, db, "focaccia", 5.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}

	if _, err := svc.MarkPaid(order.ID, 1); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid for cancelled order, got: %v", err)
	}
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "transitions")
	item := seedMenuItem(t, db, "risotto", 13.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	// pending 不能直达 delivered
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got: %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusAccepted,
		constants.OrderStatusPreparing,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	} {
		updated, err := svc.UpdateStatus(order.ID, status)
		if err != nil {
			t.Fatalf("UpdateStatus to %s error: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}

	final, err := svc.GetAdmin(order.ID)
	if err != nil {
		t.Fatalf("GetAdmin error: %v", err)
	}
	if final.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}

	// 终态不可再流转
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid from delivered, got: %v", err)
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "same_status")
	item := seedMenuItem(t, db, "gnocchi", 11.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusPending)
	if err != nil {
		t.Fatalf("same status update should succeed, got: %v", err)
	}
	if updated.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", updated.Status)
	}
}

func TestGetForUserRejectsForeignOrder(t *testing.T) {
	db, svc := setupOrderServiceTest(t, "get_for_user")
	item := seedMenuItem(t, db, "focaccia", 5.00)
	cartItem := models.CartItem{
		UserID:     1,
		MenuItemID: item.ID,
		Quantity:   1,
		UnitPrice:  item.Price,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	order, err := svc.CreateFromCart(CreateOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("CreateFromCart error: %v", err)
	}

	if _, err := svc.GetForUser(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
	got, err := svc.GetForUser(order.ID, 1)
	if err != nil {
		t.Fatalf("GetForUser error: %v", err)
	}
	if got.OrderNo != order.OrderNo {
		t.Fatalf("expected order no %s, got %s", order.OrderNo, got.OrderNo)
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	if !canTransition(constants.OrderStatusPending, constants.OrderStatusCancelled) {
		t.Fatalf("pending should cancel")
	}
	if canTransition(constants.OrderStatusCancelled, constants.OrderStatusAccepted) {
		t.Fatalf("cancelled is terminal")
	}
	if !canTransition(constants.OrderStatusPreparing, constants.OrderStatusPreparing) {
		t.Fatalf("same status should be allowed as no-op")
	}
}
