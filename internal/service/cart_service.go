package service

import (
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	MenuItemID uint             `json:"menu_item_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  models.Money     `json:"unit_price"`
	LineTotal  models.Money     `json:"line_total"`
	MenuItem   *models.MenuItem `json:"menu_item"`
}

// CartDetail 购物车详情（含金额分解）
type CartDetail struct {
	Items     []CartItemDetail `json:"items"`
	ItemCount int              `json:"item_count"`
	Breakdown PriceBreakdown   `json:"breakdown"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuItemRepository
	pricing  *PricingService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuItemRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
		pricing:  pricing,
	}
}

// clampQuantity 将数量收敛到允许区间上界，下界由调用方区分（0 表示移除）
func clampQuantity(quantity int) int {
	if quantity > constants.CartQuantityMax {
		return constants.CartQuantityMax
	}
	return quantity
}

// GetCart 获取用户购物车（含金额分解，可选优惠码）
func (s *CartService) GetCart(userID uint, promoCode string) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	details := make([]CartItemDetail, 0, len(items))
	lines := make([]PricingLine, 0, len(items))
	itemCount := 0
	for _, item := range items {
		menuItem := item.MenuItem
		if menuItem == nil || menuItem.ID == 0 {
			m, err := s.menuRepo.GetByID(item.MenuItemID)
			if err != nil {
				return nil, err
			}
			menuItem = m
		}
		// 已下架的菜品静默移出购物车
		if menuItem == nil || !menuItem.IsAvailable {
			_ = s.cartRepo.DeleteByUserAndItem(userID, item.MenuItemID)
			continue
		}

		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		details = append(details, CartItemDetail{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LineTotal:  models.NewMoneyFromDecimal(lineTotal),
			MenuItem:   menuItem,
		})
		lines = append(lines, PricingLine{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
		itemCount += item.Quantity
	}

	return &CartDetail{
		Items:     details,
		ItemCount: itemCount,
		Breakdown: s.pricing.Breakdown(lines, promoCode),
	}, nil
}

// AddItem 加入购物车（重复加入时数量累加，上限 99）
// 单价以加入时刻的菜单价格为快照，后续调价不影响购物车
func (s *CartService) AddItem(userID, menuItemID uint, quantity int) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if menuItemID == 0 || quantity <= 0 {
		return ErrQuantityInvalid
	}
	menuItem, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return err
	}
	if menuItem == nil {
		return ErrMenuItemNotFound
	}
	if !menuItem.IsAvailable {
		return ErrMenuItemNotAvailable
	}

	existing, err := s.cartRepo.GetByUserAndItem(userID, menuItemID)
	if err != nil {
		return err
	}
	newQuantity := quantity
	unitPrice := menuItem.Price
	if existing != nil {
		newQuantity = existing.Quantity + quantity
		unitPrice = existing.UnitPrice
	}
	newQuantity = clampQuantity(newQuantity)

	return s.cartRepo.Upsert(&models.CartItem{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   newQuantity,
		UnitPrice:  unitPrice,
	})
}

// UpdateQuantity 设置购物车项数量（0 及以下视为移除）
func (s *CartService) UpdateQuantity(userID, menuItemID uint, quantity int) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if menuItemID == 0 {
		return ErrQuantityInvalid
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteByUserAndItem(userID, menuItemID)
	}

	existing, err := s.cartRepo.GetByUserAndItem(userID, menuItemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrMenuItemNotFound
	}
	existing.Quantity = clampQuantity(quantity)
	return s.cartRepo.Upsert(existing)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, menuItemID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if menuItemID == 0 {
		return ErrQuantityInvalid
	}
	return s.cartRepo.DeleteByUserAndItem(userID, menuItemID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	return s.cartRepo.ClearByUser(userID)
}
