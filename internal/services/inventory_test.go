package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/yaqeen/internal/models"
)

func testProduct() *models.Product {
	return &models.Product{
		Name: "Linen Shirt",
		Colors: []models.ProductColor{
			{
				Name: "Black",
				Sizes: []models.ProductSize{
					{Label: "M", Stock: 5},
					{Label: "L", Stock: 2},
				},
			},
			{
				Name: "White",
				Sizes: []models.ProductSize{
					{Label: "M", Stock: 0},
				},
			},
		},
	}
}

func TestDeductFromProduct(t *testing.T) {
	t.Run("decrements matched size", func(t *testing.T) {
		product := testProduct()
		size, warning := deductFromProduct(product, models.OrderItem{
			Color: "Black", Size: "M", Quantity: 2,
		})

		assert.Empty(t, warning)
		assert.NotNil(t, size)
		assert.Equal(t, 3, size.Stock)
		assert.Equal(t, 3, product.Colors[0].Sizes[0].Stock)
	})

	t.Run("stock clamps at zero when ordering more than available", func(t *testing.T) {
		product := testProduct()
		size, warning := deductFromProduct(product, models.OrderItem{
			Color: "Black", Size: "L", Quantity: 6,
		})

		assert.Empty(t, warning)
		assert.Equal(t, 0, size.Stock)
	})

	t.Run("already empty stays at zero", func(t *testing.T) {
		product := testProduct()
		size, warning := deductFromProduct(product, models.OrderItem{
			Color: "White", Size: "M", Quantity: 1,
		})

		assert.Empty(t, warning)
		assert.Equal(t, 0, size.Stock)
	})

	t.Run("unknown color yields warning and leaves stock untouched", func(t *testing.T) {
		product := testProduct()
		size, warning := deductFromProduct(product, models.OrderItem{
			Color: "Red", Size: "M", Quantity: 1,
		})

		assert.Nil(t, size)
		assert.Contains(t, warning, `color "Red" not found`)
		assert.Equal(t, 5, product.Colors[0].Sizes[0].Stock)
	})

	t.Run("unknown size yields warning and leaves stock untouched", func(t *testing.T) {
		product := testProduct()
		size, warning := deductFromProduct(product, models.OrderItem{
			Color: "Black", Size: "XXL", Quantity: 1,
		})

		assert.Nil(t, size)
		assert.Contains(t, warning, `size "XXL" of color "Black" not found`)
		assert.Equal(t, 5, product.Colors[0].Sizes[0].Stock)
		assert.Equal(t, 2, product.Colors[0].Sizes[1].Stock)
	})
}
