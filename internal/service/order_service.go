package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/queue"
	"github.com/tavolo-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	menuRepo     repository.MenuItemRepository
	trackingRepo repository.TrackingRepository
	pricing      *PricingService
	queueClient  *queue.Client
	trackingTick time.Duration
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, menuRepo repository.MenuItemRepository, trackingRepo repository.TrackingRepository, pricing *PricingService, queueClient *queue.Client, trackingTick time.Duration) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		menuRepo:     menuRepo,
		trackingRepo: trackingRepo,
		pricing:      pricing,
		queueClient:  queueClient,
		trackingTick: trackingTick,
	}
}

// CreateOrderInput 创建订单输入
// 金额不接受客户端提交，全部按购物车快照单价在服务端计算
type CreateOrderInput struct {
	UserID          uint
	PromoCode       string
	DeliveryAddress models.JSON
}

// CreateFromCart 从购物车创建订单（订单与订单项在同一事务内写入）
func (s *OrderService) CreateFromCart(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrAuthRequired
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]models.OrderItem, 0, len(cartItems))
	lines := make([]PricingLine, 0, len(cartItems))
	summary := make(models.JSONArray, 0, len(cartItems))
	now := time.Now()
	for _, item := range cartItems {
		menuItem := item.MenuItem
		if menuItem == nil || menuItem.ID == 0 {
			m, err := s.menuRepo.GetByID(item.MenuItemID)
			if err != nil {
				return nil, err
			}
			menuItem = m
		}
		if menuItem == nil {
			return nil, ErrMenuItemNotFound
		}
		if !menuItem.IsAvailable {
			return nil, ErrMenuItemNotAvailable
		}

		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       menuItem.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		lines = append(lines, PricingLine{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
		summary = append(summary, map[string]interface{}{
			"menu_item_id": item.MenuItemID,
			"name":         menuItem.Name,
			"quantity":     item.Quantity,
			"unit_price":   item.UnitPrice.String(),
		})
	}

	breakdown := s.pricing.Breakdown(lines, input.PromoCode)

	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusUnpaid,
		TotalAmount:     breakdown.Subtotal,
		Subtotal:        breakdown.Subtotal,
		Tax:             breakdown.Tax,
		DeliveryFee:     breakdown.DeliveryFee,
		Discount:        breakdown.Discount,
		Total:           breakdown.Total,
		PromoCode:       breakdown.PromoCode,
		DeliveryAddress: input.DeliveryAddress,
		ItemsSummary:    summary,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, orderItems)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	order.Items = orderItems

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.Total.String(),
	)
	return order, nil
}

// MarkPaid 标记订单已支付（仅限订单所属用户）
// 支付成功即受理订单（pending -> accepted），清空购物车并启动配送进度推进
func (s *OrderService) MarkPaid(orderID, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return order, nil
	}
	if !canTransition(order.Status, constants.OrderStatusAccepted) {
		return nil, ErrStatusInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"payment_status": constants.PaymentStatusPaid,
			"paid_at":        now,
			"updated_at":     now,
		}
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusAccepted, updates); err != nil {
			return err
		}
		tracking := &models.DeliveryTracking{
			OrderID:    order.ID,
			Progress:   0,
			StageIndex: 0,
			Stage:      constants.DeliveryStagePlaced,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.trackingRepo.WithTx(tx).Create(tracking); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		logger.Errorw("order_mark_paid_failed", "order_id", orderID, "error", err)
		return nil, ErrPaymentUpdateFailed
	}

	order.Status = constants.OrderStatusAccepted
	order.PaymentStatus = constants.PaymentStatusPaid
	order.PaidAt = &now
	logger.Infow("order_paid", "order_id", order.ID, "order_no", order.OrderNo)

	if err := s.queueClient.EnqueueDeliveryAdvance(queue.DeliveryAdvancePayload{OrderID: order.ID}, s.trackingTick); err != nil {
		logger.Warnw("delivery_advance_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// UpdateStatus 更新订单状态（管理端）
// 流转受 allowedTransitions 约束，同状态提交为幂等空操作
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	target := NormalizeOrderStatus(status)
	if !IsValidOrderStatus(target) {
		return nil, ErrStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransition(order.Status, target) {
		return nil, ErrStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		logger.Errorw("order_status_update_failed", "order_id", orderID, "target", target, "error", err)
		return nil, ErrStatusUpdateFailed
	}

	logger.Infow("order_status_updated", "order_id", order.ID, "from", order.Status, "to", target)
	order.Status = target
	switch target {
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	return order, nil
}

// GetForUser 获取用户自己的订单详情
func (s *OrderService) GetForUser(orderID, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNoForUser 按订单号获取用户订单详情
func (s *OrderService) GetByOrderNoForUser(orderNo string, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrAuthRequired
	}
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin 管理端订单详情
func (s *OrderService) GetAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("TV%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
