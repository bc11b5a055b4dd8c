package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/yaqeen/internal/models"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		percents []int
		expected float64
	}{
		{
			name:     "no percentages returns full price",
			price:    500,
			percents: nil,
			expected: 500,
		},
		{
			name:     "all zero percentages returns full price",
			price:    500,
			percents: []int{0, 0, 0},
			expected: 500,
		},
		{
			name:     "single percentage applies",
			price:    500,
			percents: []int{20},
			expected: 400,
		},
		{
			name:     "first non-zero percentage wins",
			price:    1000,
			percents: []int{0, 30, 50},
			expected: 700,
		},
		{
			name:     "result rounds to nearest unit",
			price:    99.99,
			percents: []int{15},
			expected: 85,
		},
		{
			name:     "full discount",
			price:    250,
			percents: []int{100},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectivePrice(tt.price, tt.percents...))
		})
	}
}

func TestApplySalePricing(t *testing.T) {
	category := &models.Tag{Name: "Shirts", Kind: models.TagKindCategory, SalePercent: 10}
	collection := &models.Tag{Name: "Summer", Kind: models.TagKindCollection, SalePercent: 25}

	tests := []struct {
		name     string
		product  models.Product
		expected float64
	}{
		{
			name:     "product percentage beats both tags",
			product:  models.Product{Price: 1000, SalePercent: 50, Category: category, Collection: collection},
			expected: 500,
		},
		{
			name:     "collection beats category",
			product:  models.Product{Price: 1000, Category: category, Collection: collection},
			expected: 750,
		},
		{
			name:     "category applies when nothing else is set",
			product:  models.Product{Price: 1000, Category: category},
			expected: 900,
		},
		{
			name:     "no sale anywhere keeps the full price",
			product:  models.Product{Price: 1000},
			expected: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ApplySalePricing(&tt.product)
			assert.Equal(t, tt.expected, tt.product.SalePrice)
		})
	}
}

func TestApplySalePricingAll(t *testing.T) {
	products := []models.Product{
		{Price: 200, SalePercent: 50},
		{Price: 300},
	}

	ApplySalePricingAll(products)

	assert.Equal(t, float64(100), products[0].SalePrice)
	assert.Equal(t, float64(300), products[1].SalePrice)
}
