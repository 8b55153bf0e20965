package service

import (
	"strings"

	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List 获取用户地址列表
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	return s.addressRepo.ListByUser(userID)
}

// Get 获取用户地址
func (s *AddressService) Get(id, userID uint) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create 创建地址
func (s *AddressService) Create(address *models.Address) error {
	if address == nil || address.UserID == 0 {
		return ErrAuthRequired
	}
	if err := validateAddress(address); err != nil {
		return err
	}
	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(address.UserID); err != nil {
			return err
		}
	}
	return s.addressRepo.Create(address)
}

// Update 更新地址（仅限地址所属用户）
func (s *AddressService) Update(address *models.Address) error {
	if address == nil || address.UserID == 0 {
		return ErrAuthRequired
	}
	existing, err := s.addressRepo.GetByIDAndUser(address.ID, address.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	if err := validateAddress(address); err != nil {
		return err
	}
	if address.IsDefault && !existing.IsDefault {
		if err := s.addressRepo.ClearDefault(address.UserID); err != nil {
			return err
		}
	}
	return s.addressRepo.Update(address)
}

// Delete 删除地址
func (s *AddressService) Delete(id, userID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	existing, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(id, userID)
}

// SetDefault 设置默认地址
func (s *AddressService) SetDefault(id, userID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	existing, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.ClearDefault(userID); err != nil {
			return err
		}
		existing.IsDefault = true
		return repo.Update(existing)
	})
	return err
}

// Snapshot 将地址转换为订单地址快照
func (s *AddressService) Snapshot(address *models.Address) models.JSON {
	if address == nil {
		return nil
	}
	return models.JSON{
		"label":        address.Label,
		"street":       address.Street,
		"city":         address.City,
		"zip_code":     address.ZipCode,
		"phone":        address.Phone,
		"instructions": address.Instructions,
	}
}

func validateAddress(address *models.Address) error {
	if strings.TrimSpace(address.Street) == "" ||
		strings.TrimSpace(address.City) == "" ||
		strings.TrimSpace(address.ZipCode) == "" ||
		strings.TrimSpace(address.Phone) == "" {
		return ErrAddressInvalid
	}
	return nil
}
