package models

import (
	"time"
)

// DeliveryTracking 配送进度表
// 服务端模拟配送进度，替代客户端本地定时器；每单一行
type DeliveryTracking struct {
	ID                uint      `gorm:"primarykey" json:"id"`                     // 主键
	OrderID           uint      `gorm:"uniqueIndex;not null" json:"order_id"`     // 订单ID
	Progress          int       `gorm:"not null;default:0" json:"progress"`       // 进度百分比（0-100）
	StageIndex        int       `gorm:"not null;default:0" json:"stage_index"`    // 阶段下标（0-5）
	Stage             string    `gorm:"not null" json:"stage"`                    // 阶段标识
	DeliveredNotified bool      `gorm:"default:false" json:"delivered_notified"`  // 已触发送达（幂等保护）
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt         time.Time `gorm:"index" json:"updated_at"`                  // 更新时间
}

// TableName 指定表名
func (DeliveryTracking) TableName() string {
	return "delivery_trackings"
}
