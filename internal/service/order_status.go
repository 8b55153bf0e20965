package service

import (
	"strings"

	"github.com/tavolo-next/internal/constants"
)

// allowedTransitions 订单状态流转表
// 同状态重复提交视为幂等，不在表内的流转一律拒绝
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusAccepted:  true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusAccepted: {
		constants.OrderStatusPreparing: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
}

// fulfillmentChain 正常履约路径上的状态顺序
var fulfillmentChain = []string{
	constants.OrderStatusPending,
	constants.OrderStatusAccepted,
	constants.OrderStatusPreparing,
	constants.OrderStatusOutForDelivery,
	constants.OrderStatusDelivered,
}

// nextStatusToward 返回从 from 朝 target 推进的下一个合法状态
// target 不在前方或下一步不被流转表允许时返回空串
func nextStatusToward(from, target string) string {
	fromIdx, targetIdx := -1, -1
	for i, status := range fulfillmentChain {
		if status == NormalizeOrderStatus(from) {
			fromIdx = i
		}
		if status == NormalizeOrderStatus(target) {
			targetIdx = i
		}
	}
	if fromIdx < 0 || targetIdx <= fromIdx {
		return ""
	}
	next := fulfillmentChain[fromIdx+1]
	if !canTransition(from, next) {
		return ""
	}
	return next
}

// NormalizeOrderStatus 归一化状态串
func NormalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsValidOrderStatus 判断是否为已知状态
func IsValidOrderStatus(status string) bool {
	switch NormalizeOrderStatus(status) {
	case constants.OrderStatusPending,
		constants.OrderStatusAccepted,
		constants.OrderStatusPreparing,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// canTransition 判断状态流转是否允许（同状态视为允许的空操作）
func canTransition(from, to string) bool {
	from = NormalizeOrderStatus(from)
	to = NormalizeOrderStatus(to)
	if from == to {
		return true
	}
	nexts, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}
