package service

import (
	"time"

	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"
)

// TrackingService 配送进度服务
// 进度由后台任务按固定节奏推进，客户端只读
type TrackingService struct {
	trackingRepo repository.TrackingRepository
	orderRepo    repository.OrderRepository
	stepPercent  int
}

// NewTrackingService 创建配送进度服务
func NewTrackingService(trackingRepo repository.TrackingRepository, orderRepo repository.OrderRepository, stepPercent int) *TrackingService {
	if stepPercent <= 0 {
		stepPercent = 3
	}
	return &TrackingService{
		trackingRepo: trackingRepo,
		orderRepo:    orderRepo,
		stepPercent:  stepPercent,
	}
}

// StageForProgress 按进度百分比计算阶段下标
func StageForProgress(progress int) (int, string) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	idx := progress * (len(constants.DeliveryStages) - 1) / 100
	return idx, constants.DeliveryStages[idx]
}

// GetForUser 获取用户订单的配送进度
func (s *TrackingService) GetForUser(orderID, userID uint) (*models.DeliveryTracking, error) {
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
	tracking, err := s.trackingRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, ErrTrackingNotFound
	}
	return tracking, nil
}

// Advance 推进一次配送进度
// 返回 done=true 表示已送达，调用方不再续排任务；
// 跨越阶段边界时按流转表逐级回写订单状态（DeliveredNotified 幂等保护）
func (s *TrackingService) Advance(orderID uint) (*models.DeliveryTracking, bool, error) {
	tracking, err := s.trackingRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, false, err
	}
	if tracking == nil {
		return nil, true, ErrTrackingNotFound
	}
	if tracking.DeliveredNotified {
		return tracking, true, nil
	}

	progress := tracking.Progress + s.stepPercent
	if progress > 100 {
		progress = 100
	}
	idx, stage := StageForProgress(progress)

	tracking.Progress = progress
	tracking.StageIndex = idx
	tracking.Stage = stage
	tracking.UpdatedAt = time.Now()

	done := progress >= 100
	if done {
		tracking.DeliveredNotified = true
	}
	if err := s.trackingRepo.Update(tracking); err != nil {
		return nil, false, err
	}

	if err := s.syncOrderStatus(orderID, stage); err != nil {
		logger.Errorw("order_status_sync_failed", "order_id", orderID, "stage", stage, "error", err)
		return tracking, done, err
	}
	if done {
		logger.Infow("order_delivered", "order_id", orderID)
	}
	return tracking, done, nil
}

// orderStatusForStage 配送阶段对应的订单状态
func orderStatusForStage(stage string) string {
	switch stage {
	case constants.DeliveryStageAccepted:
		return constants.OrderStatusAccepted
	case constants.DeliveryStagePreparing:
		return constants.OrderStatusPreparing
	case constants.DeliveryStagePickedUp, constants.DeliveryStageOnTheWay:
		return constants.OrderStatusOutForDelivery
	case constants.DeliveryStageDelivered:
		return constants.OrderStatusDelivered
	default:
		return ""
	}
}

// syncOrderStatus 按配送阶段逐级推进订单状态
// 每一步都走流转表，已取消等不可达状态直接跳过回写
func (s *TrackingService) syncOrderStatus(orderID uint, stage string) error {
	target := orderStatusForStage(stage)
	if target == "" {
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	current := order.Status
	for current != target {
		next := nextStatusToward(current, target)
		if next == "" {
			return nil
		}
		now := time.Now()
		updates := map[string]interface{}{"updated_at": now}
		if next == constants.OrderStatusDelivered {
			updates["delivered_at"] = now
		}
		if err := s.orderRepo.UpdateStatus(orderID, next, updates); err != nil {
			return err
		}
		logger.Infow("order_status_updated", "order_id", orderID, "from", current, "to", next)
		current = next
	}
	return nil
}
