package worker

import (
	"context"
	"testing"

	"github.com/tavolo-next/internal/provider"
	"github.com/tavolo-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleDeliveryAdvanceSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskDeliveryAdvance, []byte(`{"order_id":0}`))
	if err := consumer.handleDeliveryAdvance(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped without error, got %v", err)
	}
}

func TestHandleDeliveryAdvanceRejectsBadJSON(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskDeliveryAdvance, []byte(`{broken`))
	if err := consumer.handleDeliveryAdvance(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleDeliveryAdvanceSkipsNilTrackingService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskDeliveryAdvance, []byte(`{"order_id":7}`))
	if err := consumer.handleDeliveryAdvance(context.Background(), task); err != nil {
		t.Fatalf("nil tracking service should be skipped without error, got %v", err)
	}
}
