package service

import (
	"strings"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/models"

	"github.com/shopspring/decimal"
)

// PriceBreakdown 金额分解
// 所有金额均在服务端按快照单价计算，客户端提交的金额一律忽略
type PriceBreakdown struct {
	Subtotal    models.Money `json:"subtotal"`
	Tax         models.Money `json:"tax"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Discount    models.Money `json:"discount"`
	Total       models.Money `json:"total"`
	PromoCode   string       `json:"promo_code,omitempty"`
}

// PricingLine 计价输入行（单价快照 × 数量）
type PricingLine struct {
	UnitPrice models.Money
	Quantity  int
}

// PricingService 计价服务
type PricingService struct {
	taxRate       decimal.Decimal
	deliveryFee   decimal.Decimal
	freeThreshold decimal.Decimal
}

// NewPricingService 创建计价服务
func NewPricingService(cfg config.PricingConfig) *PricingService {
	taxRate := decimal.NewFromFloat(cfg.TaxRate)
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}
	fee := decimal.NewFromFloat(cfg.DeliveryFee)
	if fee.IsNegative() {
		fee = decimal.Zero
	}
	return &PricingService{
		taxRate:       taxRate,
		deliveryFee:   fee,
		freeThreshold: decimal.NewFromFloat(cfg.FreeDeliveryThreshold),
	}
}

// Subtotal 计算小计
func (s *PricingService) Subtotal(lines []PricingLine) models.Money {
	sum := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		sum = sum.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return models.NewMoneyFromDecimal(sum)
}

// Breakdown 计算完整金额分解
// 配送费规则：小计严格大于门槛时免配送费；税按小计比例取 2 位小数；
// 未识别的优惠码按无折扣处理，不报错
func (s *PricingService) Breakdown(lines []PricingLine, promoCode string) PriceBreakdown {
	subtotal := s.Subtotal(lines).Decimal

	deliveryFee := s.deliveryFee
	if subtotal.GreaterThan(s.freeThreshold) {
		deliveryFee = decimal.Zero
	}

	tax := subtotal.Mul(s.taxRate).Round(2)

	code := strings.ToUpper(strings.TrimSpace(promoCode))
	discount := decimal.Zero
	switch code {
	case constants.PromoCodeSave10:
		discount = subtotal.Mul(decimal.NewFromFloat(0.1)).Round(2)
	case constants.PromoCodeFreeDelivery:
		discount = deliveryFee
	default:
		code = ""
	}

	total := subtotal.Add(tax).Add(deliveryFee).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceBreakdown{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		Tax:         models.NewMoneyFromDecimal(tax),
		DeliveryFee: models.NewMoneyFromDecimal(deliveryFee),
		Discount:    models.NewMoneyFromDecimal(discount),
		Total:       models.NewMoneyFromDecimal(total),
		PromoCode:   code,
	}
}
