package services

import (
	"math"

	"github.com/example/yaqeen/internal/models"
)

// EffectivePrice applies the first non-zero sale percentage to the price.
// With no non-zero percentage the full price is returned unchanged.
func EffectivePrice(price float64, percents ...int) float64 {
	for _, pct := range percents {
		if pct > 0 {
			return math.Round(price * (1 - float64(pct)/100))
		}
	}
	return price
}

func tagSalePercent(tag *models.Tag) int {
	if tag == nil {
		return 0
	}
	return tag.SalePercent
}

// ApplySalePricing fills in the product's computed sale price. Priority:
// the product's own percentage, then its collection's, then its category's.
// Resolved fresh on every read; nothing is cached.
func ApplySalePricing(product *models.Product) {
	product.SalePrice = EffectivePrice(
		product.Price,
		product.SalePercent,
		tagSalePercent(product.Collection),
		tagSalePercent(product.Category),
	)
}

// ApplySalePricingAll decorates a product slice in place.
func ApplySalePricingAll(products []models.Product) {
	for i := range products {
		ApplySalePricing(&products[i])
	}
}
