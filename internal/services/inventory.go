package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/models"
)

// deductFromProduct locates the ordered color and size on the loaded product
// and decrements its stock, clamped at zero. It returns the mutated size row
// to persist, or a warning describing why the item could not be matched.
// Unmatched items do not fail the order; the warning is recorded on it.
func deductFromProduct(product *models.Product, item models.OrderItem) (*models.ProductSize, string) {
	for ci := range product.Colors {
		color := &product.Colors[ci]
		if color.Name != item.Color {
			continue
		}
		for si := range color.Sizes {
			size := &color.Sizes[si]
			if size.Label != item.Size {
				continue
			}
			size.Stock -= item.Quantity
			if size.Stock < 0 {
				size.Stock = 0
			}
			return size, ""
		}
		return nil, fmt.Sprintf("size %q of color %q not found for product %q; stock not adjusted", item.Size, item.Color, product.Name)
	}
	return nil, fmt.Sprintf("color %q not found for product %q; stock not adjusted", item.Color, product.Name)
}

// DeductStock decrements the stock of every ordered product/color/size inside
// the given transaction. Items whose product, color or size cannot be located
// are skipped and reported as warnings instead of failing the order.
func DeductStock(tx *gorm.DB, items []models.OrderItem) ([]string, error) {
	var warnings []string

	for _, item := range items {
		if item.ProductID == nil {
			warnings = append(warnings, fmt.Sprintf("item %q has no product reference; stock not adjusted", item.Name))
			continue
		}

		var product models.Product
		err := tx.Preload("Colors.Sizes").First(&product, "id = ?", *item.ProductID).Error
		if err == gorm.ErrRecordNotFound {
			warnings = append(warnings, fmt.Sprintf("product %q no longer exists; stock not adjusted", item.Name))
			continue
		}
		if err != nil {
			return nil, err
		}

		size, warning := deductFromProduct(&product, item)
		if warning != "" {
			warnings = append(warnings, warning)
			continue
		}

		if err := tx.Model(&models.ProductSize{}).
			Where("id = ?", size.ID).
			Update("stock", size.Stock).Error; err != nil {
			return nil, err
		}
	}

	return warnings, nil
}
