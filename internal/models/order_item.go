package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// UnitPrice 为下单时的价格快照，后续菜单调价不影响已生成的订单
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	MenuItemID uint           `gorm:"index;not null" json:"menu_item_id"`                       // 菜品ID
	Name       string         `gorm:"not null" json:"name"`                                     // 菜品名称快照
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // 数量
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 下单时单价
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
