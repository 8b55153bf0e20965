package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID           uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID       uint           `gorm:"not null;index" json:"user_id"`           // 用户ID
	Label        string         `gorm:"type:varchar(50)" json:"label"`           // 地址标签（家/公司等）
	Street       string         `gorm:"not null" json:"street"`                  // 街道
	City         string         `gorm:"not null" json:"city"`                    // 城市
	ZipCode      string         `gorm:"type:varchar(20)" json:"zip_code"`        // 邮编
	Phone        string         `gorm:"type:varchar(30)" json:"phone"`           // 联系电话
	Instructions string         `gorm:"type:text" json:"instructions,omitempty"` // 配送备注
	IsDefault    bool           `gorm:"default:false;index" json:"is_default"`   // 默认地址
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
