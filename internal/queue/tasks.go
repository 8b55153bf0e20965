package queue

import (
	"encoding/json"

	"github.com/tavolo-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskDeliveryAdvance 配送进度推进任务
	TaskDeliveryAdvance = constants.TaskDeliveryAdvance
)

// DeliveryAdvancePayload 配送进度推进任务载荷
type DeliveryAdvancePayload struct {
	OrderID uint `json:"order_id"`
}

// NewDeliveryAdvanceTask 创建配送进度推进任务
func NewDeliveryAdvanceTask(payload DeliveryAdvancePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliveryAdvance, body), nil
}
