package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品表
type MenuItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                           // 分类ID
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                            // 唯一标识
	Name           string         `gorm:"not null;index" json:"name"`                                  // 菜品名称
	Description    string         `gorm:"type:text" json:"description"`                                // 菜品描述
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 当前售价
	OriginalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价（0 表示无划线价）
	ImageURL       string         `gorm:"type:varchar(500)" json:"image_url"`                          // 图片地址
	Tags           StringArray    `gorm:"type:json" json:"tags"`                                       // 标签数组
	IsVegan        bool           `gorm:"default:false" json:"is_vegan"`                               // 纯素
	IsGlutenFree   bool           `gorm:"default:false" json:"is_gluten_free"`                         // 无麸质
	IsSpicy        bool           `gorm:"default:false" json:"is_spicy"`                               // 辣味
	IsFeatured     bool           `gorm:"default:false;index" json:"is_featured"`                      // 推荐菜品
	IsAvailable    bool           `gorm:"default:true;index" json:"is_available"`                      // 是否可售
	InventoryCount *int           `json:"inventory_count"`                                             // 库存（nil 表示不限量）
	Allergens      string         `gorm:"type:text" json:"allergens"`                                  // 过敏原说明
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
