package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusAccepted       = "accepted"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// 用户角色常量
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// 用户账号状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 结账流程步骤常量（严格顺序推进）
const (
	CheckoutStepAddress    = "address"
	CheckoutStepPayment    = "payment"
	CheckoutStepOTP        = "otp"
	CheckoutStepProcessing = "processing"
	CheckoutStepSuccess    = "success"
)

// 配送进度阶段常量（按顺序映射 progress 0-100）
var DeliveryStages = []string{
	DeliveryStagePlaced,
	DeliveryStageAccepted,
	DeliveryStagePreparing,
	DeliveryStagePickedUp,
	DeliveryStageOnTheWay,
	DeliveryStageDelivered,
}

const (
	DeliveryStagePlaced    = "placed"
	DeliveryStageAccepted  = "accepted"
	DeliveryStagePreparing = "preparing"
	DeliveryStagePickedUp  = "picked_up"
	DeliveryStageOnTheWay  = "on_the_way"
	DeliveryStageDelivered = "delivered"
)

// 优惠码常量（仅识别这两个）
const (
	PromoCodeSave10       = "SAVE10"
	PromoCodeFreeDelivery = "FREEDELIVERY"
)

// 购物车数量边界
const (
	CartQuantityMin = 1
	CartQuantityMax = 99
)

// 异步任务类型常量
const (
	TaskDeliveryAdvance = "delivery:advance"
	QueueDefault        = "default"
)

// 错误码标识（对外响应 msg 使用的错误分类）
const (
	ErrCodeAuthRequired        = "AUTH_REQUIRED"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeOrderCreateFailed   = "ORDER_CREATE_FAILED"
	ErrCodeOrderItemsFailed    = "ORDER_ITEMS_FAILED"
	ErrCodePaymentUpdateFailed = "PAYMENT_UPDATE_FAILED"
	ErrCodeStatusUpdateFailed  = "STATUS_UPDATE_FAILED"
)
