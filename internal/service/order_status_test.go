package service

import (
	"testing"

	"github.com/tavolo-next/internal/constants"
)

func TestNextStatusToward(t *testing.T) {
	cases := []struct {
		name   string
		from   string
		target string
		want   string
	}{
		{"one_step", constants.OrderStatusAccepted, constants.OrderStatusPreparing, constants.OrderStatusPreparing},
		{"multi_step_takes_first", constants.OrderStatusAccepted, constants.OrderStatusDelivered, constants.OrderStatusPreparing},
		{"same_status", constants.OrderStatusPreparing, constants.OrderStatusPreparing, ""},
		{"backwards", constants.OrderStatusDelivered, constants.OrderStatusAccepted, ""},
		{"from_cancelled", constants.OrderStatusCancelled, constants.OrderStatusDelivered, ""},
		{"unknown_target", constants.OrderStatusAccepted, "refunded", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextStatusToward(tc.from, tc.target); got != tc.want {
				t.Fatalf("next status want %q got %q", tc.want, got)
			}
		})
	}
}

func TestCanTransitionTable(t *testing.T) {
	if !canTransition(constants.OrderStatusPending, constants.OrderStatusAccepted) {
		t.Fatalf("pending -> accepted must be allowed")
	}
	if !canTransition(constants.OrderStatusPending, constants.OrderStatusCancelled) {
		t.Fatalf("pending -> cancelled must be allowed")
	}
	if canTransition(constants.OrderStatusPending, constants.OrderStatusDelivered) {
		t.Fatalf("pending -> delivered must be rejected")
	}
	if !canTransition(constants.OrderStatusAccepted, constants.OrderStatusAccepted) {
		t.Fatalf("same status must be an allowed no-op")
	}
}
