package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTrackingServiceTest(t *testing.T, name string) (*gorm.DB, *TrackingService) {
	t.Helper()
	dsn := fmt.Sprintf("file:tracking_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.DeliveryTracking{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewTrackingService(
		repository.NewTrackingRepository(db),
		repository.NewOrderRepository(db),
		3,
	)
	return db, svc
}

func seedTrackedOrder(t *testing.T, db *gorm.DB, progress int) *models.Order {
	t.Helper()
	return seedTrackedOrderWithStatus(t, db, progress, constants.OrderStatusOutForDelivery)
}

func seedTrackedOrderWithStatus(t *testing.T, db *gorm.DB, progress int, status string) *models.Order {
	t.Helper()
	now := time.Now()
	order := models.Order{
		OrderNo:       fmt.Sprintf("TV%d", now.UnixNano()),
		UserID:        1,
		Status:        status,
		PaymentStatus: constants.PaymentStatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	idx, stage := StageForProgress(progress)
	tracking := models.DeliveryTracking{
		OrderID:    order.ID,
		Progress:   progress,
		StageIndex: idx,
		Stage:      stage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Create(&tracking).Error; err != nil {
		t.Fatalf("create tracking failed: %v", err)
	}
	return &order
}

func TestStageForProgressBuckets(t *testing.T) {
	cases := []struct {
		progress int
		stage    string
	}{
		{0, constants.DeliveryStagePlaced},
		{19, constants.DeliveryStagePlaced},
		{20, constants.DeliveryStageAccepted},
		{39, constants.DeliveryStageAccepted},
		{40, constants.DeliveryStagePreparing},
		{60, constants.DeliveryStagePickedUp},
		{80, constants.DeliveryStageOnTheWay},
		{99, constants.DeliveryStageOnTheWay},
		{100, constants.DeliveryStageDelivered},
	}
	for _, c := range cases {
		_, stage := StageForProgress(c.progress)
		if stage != c.stage {
			t.Fatalf("progress %d: expected %s, got %s", c.progress, c.stage, stage)
		}
	}
}

func TestAdvanceIncrementsByStep(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "step")
	order := seedTrackedOrder(t, db, 0)

	tracking, done, err := svc.Advance(order.ID)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if done {
		t.Fatalf("expected not done at 3%%")
	}
	if tracking.Progress != 3 {
		t.Fatalf("expected progress 3, got %d", tracking.Progress)
	}
	if tracking.Stage != constants.DeliveryStagePlaced {
		t.Fatalf("expected placed, got %s", tracking.Stage)
	}
}

func TestAdvanceCapsAtHundredAndDeliversOnce(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "deliver_once")
	order := seedTrackedOrder(t, db, 99)

	tracking, done, err := svc.Advance(order.ID)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if !done {
		t.Fatalf("expected done at 100")
	}
	if tracking.Progress != 100 || tracking.Stage != constants.DeliveryStageDelivered {
		t.Fatalf("unexpected tracking: %+v", tracking)
	}
	if !tracking.DeliveredNotified {
		t.Fatalf("expected delivered_notified set")
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected order delivered, got %s", stored.Status)
	}
	if stored.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}
	firstDeliveredAt := *stored.DeliveredAt

	// 重复推进为幂等空操作，不重写送达时间
	if _, done, err := svc.Advance(order.ID); err != nil || !done {
		t.Fatalf("expected idempotent done, got done=%v err=%v", done, err)
	}
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if !stored.DeliveredAt.Equal(firstDeliveredAt) {
		t.Fatalf("delivered_at should not change on repeat advance")
	}
}

func TestAdvanceDrivesOrderStatusAcrossStageBoundary(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "status_sync")
	order := seedTrackedOrderWithStatus(t, db, 38, constants.OrderStatusAccepted)

	// 38 -> 41 跨过 preparing 边界
	tracking, _, err := svc.Advance(order.ID)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if tracking.Stage != constants.DeliveryStagePreparing {
		t.Fatalf("expected stage preparing, got %s", tracking.Stage)
	}
	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPreparing {
		t.Fatalf("expected order preparing, got %s", stored.Status)
	}

	// 58 -> 61 跨过 picked_up 边界
	if err := db.Model(&models.DeliveryTracking{}).Where("order_id = ?", order.ID).Update("progress", 58).Error; err != nil {
		t.Fatalf("set progress failed: %v", err)
	}
	tracking, _, err = svc.Advance(order.ID)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if tracking.Stage != constants.DeliveryStagePickedUp {
		t.Fatalf("expected stage picked_up, got %s", tracking.Stage)
	}
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("expected order out_for_delivery, got %s", stored.Status)
	}
}

func TestAdvanceWalksSkippedStatuses(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "status_walk")
	order := seedTrackedOrderWithStatus(t, db, 99, constants.OrderStatusAccepted)

	// 99 -> 100 一次跨多个阶段，状态仍按流转表逐级推进到 delivered
	if _, done, err := svc.Advance(order.ID); err != nil || !done {
		t.Fatalf("expected done advance, got done=%v err=%v", done, err)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected order delivered, got %s", stored.Status)
	}
	if stored.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}
}

func TestAdvanceLeavesCancelledOrderAlone(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "cancelled")
	order := seedTrackedOrderWithStatus(t, db, 99, constants.OrderStatusCancelled)

	if _, done, err := svc.Advance(order.ID); err != nil || !done {
		t.Fatalf("expected done advance, got done=%v err=%v", done, err)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusCancelled {
		t.Fatalf("cancelled order must not change, got %s", stored.Status)
	}
	if stored.DeliveredAt != nil {
		t.Fatalf("cancelled order must not get delivered_at")
	}
}

func TestGetForUserChecksOwnership(t *testing.T) {
	db, svc := setupTrackingServiceTest(t, "ownership")
	order := seedTrackedOrder(t, db, 10)

	if _, err := svc.GetForUser(order.ID, 2); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
	tracking, err := svc.GetForUser(order.ID, 1)
	if err != nil {
		t.Fatalf("GetForUser error: %v", err)
	}
	if tracking.Progress != 10 {
		t.Fatalf("expected progress 10, got %d", tracking.Progress)
	}
}
