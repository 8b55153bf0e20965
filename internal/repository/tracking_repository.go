package repository

import (
	"errors"

	"github.com/tavolo-next/internal/models"

	"gorm.io/gorm"
)

// TrackingRepository 配送进度数据访问接口
type TrackingRepository interface {
	GetByOrderID(orderID uint) (*models.DeliveryTracking, error)
	Create(tracking *models.DeliveryTracking) error
	Update(tracking *models.DeliveryTracking) error
	WithTx(tx *gorm.DB) *GormTrackingRepository
}

// GormTrackingRepository GORM 实现
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository 创建配送进度仓库
func NewTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTrackingRepository) WithTx(tx *gorm.DB) *GormTrackingRepository {
	if tx == nil {
		return r
	}
	return &GormTrackingRepository{db: tx}
}

// GetByOrderID 根据订单 ID 获取配送进度
func (r *GormTrackingRepository) GetByOrderID(orderID uint) (*models.DeliveryTracking, error) {
	var tracking models.DeliveryTracking
	err := r.db.Where("order_id = ?", orderID).First(&tracking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}

// Create 创建配送进度记录
func (r *GormTrackingRepository) Create(tracking *models.DeliveryTracking) error {
	return r.db.Create(tracking).Error
}

// Update 更新配送进度记录
func (r *GormTrackingRepository) Update(tracking *models.DeliveryTracking) error {
	return r.db.Save(tracking).Error
}
