package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// TotalAmount 为历史遗留字段（等于小计），金额分解存储在独立列中
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                               // 订单状态
	PaymentStatus   string         `gorm:"index;not null" json:"payment_status"`                       // 支付状态
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 历史字段（= 小计）
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`      // 小计
	Tax             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`           // 税费
	DeliveryFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`  // 配送费
	Discount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`      // 优惠金额
	Total           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`         // 实付金额
	PromoCode       string         `gorm:"type:varchar(50)" json:"promo_code,omitempty"`               // 使用的优惠码
	DeliveryAddress JSON           `gorm:"type:json" json:"delivery_address"`                          // 收货地址快照
	ItemsSummary    JSONArray      `gorm:"type:json" json:"items_summary"`                             // 订单项冗余快照
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`                                       // 支付时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                  // 送达时间
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at"`                                  // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
