package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/provider"
	"github.com/tavolo-next/internal/queue"
	"github.com/tavolo-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskDeliveryAdvance, c.handleDeliveryAdvance)
}

// handleDeliveryAdvance 推进配送进度，未送达则按配置间隔续排下一次任务
func (c *Consumer) handleDeliveryAdvance(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_delivery_advance_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DeliveryAdvancePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_delivery_advance_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_delivery_advance_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.TrackingService == nil {
		logger.Warnw("worker_delivery_advance_skip_tracking_service_nil", "order_id", payload.OrderID)
		return nil
	}

	tracking, done, err := c.TrackingService.Advance(payload.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrTrackingNotFound) {
			logger.Debugw("worker_delivery_advance_skip_tracking_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_delivery_advance_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if done {
		return nil
	}

	logger.Debugw("worker_delivery_advanced",
		"order_id", payload.OrderID,
		"progress", tracking.Progress,
		"stage", tracking.Stage,
	)
	if err := c.QueueClient.EnqueueDeliveryAdvance(payload, c.TrackingInterval); err != nil {
		logger.Warnw("worker_delivery_advance_requeue_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
