package service

import (
	"testing"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/models"
)

func defaultPricingService() *PricingService {
	return NewPricingService(config.PricingConfig{
		TaxRate:               0.08,
		DeliveryFee:           5.99,
		FreeDeliveryThreshold: 30,
	})
}

func TestBreakdownBelowFreeDeliveryThreshold(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(12.50), Quantity: 2},
	}
	got := s.Breakdown(lines, "")

	if got.Subtotal.String() != "25.00" {
		t.Fatalf("expected subtotal 25.00, got %s", got.Subtotal.String())
	}
	if got.Tax.String() != "2.00" {
		t.Fatalf("expected tax 2.00, got %s", got.Tax.String())
	}
	if got.DeliveryFee.String() != "5.99" {
		t.Fatalf("expected delivery fee 5.99, got %s", got.DeliveryFee.String())
	}
	if got.Total.String() != "32.99" {
		t.Fatalf("expected total 32.99, got %s", got.Total.String())
	}
}

func TestBreakdownAboveFreeDeliveryThreshold(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(15.50), Quantity: 2},
	}
	got := s.Breakdown(lines, "")

	if got.DeliveryFee.String() != "0.00" {
		t.Fatalf("expected free delivery, got %s", got.DeliveryFee.String())
	}
	if got.Total.String() != "33.48" {
		t.Fatalf("expected total 33.48, got %s", got.Total.String())
	}
}

func TestBreakdownThresholdBoundaryIsNotFree(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(30.00), Quantity: 1},
	}
	got := s.Breakdown(lines, "")

	if got.DeliveryFee.String() != "5.99" {
		t.Fatalf("subtotal equal to threshold should still charge delivery, got %s", got.DeliveryFee.String())
	}
}

func TestBreakdownSave10Promo(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(10.00), Quantity: 2},
	}
	got := s.Breakdown(lines, "save10")

	if got.PromoCode != "SAVE10" {
		t.Fatalf("expected promo code SAVE10, got %s", got.PromoCode)
	}
	if got.Discount.String() != "2.00" {
		t.Fatalf("expected discount 2.00, got %s", got.Discount.String())
	}
	// 20 + 1.60 + 5.99 - 2.00
	if got.Total.String() != "25.59" {
		t.Fatalf("expected total 25.59, got %s", got.Total.String())
	}
}

func TestBreakdownFreeDeliveryPromo(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(10.00), Quantity: 1},
	}
	got := s.Breakdown(lines, "FREEDELIVERY")

	if got.Discount.String() != "5.99" {
		t.Fatalf("expected discount to equal delivery fee, got %s", got.Discount.String())
	}
	if got.Total.String() != "10.80" {
		t.Fatalf("expected total 10.80, got %s", got.Total.String())
	}
}

func TestBreakdownFreeDeliveryPromoWhenAlreadyFree(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(40.00), Quantity: 1},
	}
	got := s.Breakdown(lines, "FREEDELIVERY")

	if got.Discount.String() != "0.00" {
		t.Fatalf("free delivery promo on free order should discount 0, got %s", got.Discount.String())
	}
}

func TestBreakdownUnknownPromoIsIgnored(t *testing.T) {
	s := defaultPricingService()
	lines := []PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(10.00), Quantity: 1},
	}
	got := s.Breakdown(lines, "NOPE50")

	if got.PromoCode != "" {
		t.Fatalf("unknown promo should be dropped, got %s", got.PromoCode)
	}
	if got.Discount.String() != "0.00" {
		t.Fatalf("unknown promo should not discount, got %s", got.Discount.String())
	}
}

func TestSubtotalSkipsNonPositiveQuantity(t *testing.T) {
	s := defaultPricingService()
	got := s.Subtotal([]PricingLine{
		{UnitPrice: models.NewMoneyFromFloat(9.99), Quantity: 0},
		{UnitPrice: models.NewMoneyFromFloat(5.00), Quantity: 3},
	})
	if got.String() != "15.00" {
		t.Fatalf("expected subtotal 15.00, got %s", got.String())
	}
}
