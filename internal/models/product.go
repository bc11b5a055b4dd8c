package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog item. Category and collection are normalized Tag
// references; stock lives on the per-color size entries.
type Product struct {
	BaseModel
	Name         string         `gorm:"index" json:"name"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	SalePercent  int            `json:"sale_percent"` // 0-100, 0 means no sale
	SalePrice    float64        `gorm:"-" json:"sale_price"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category     *Tag           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CollectionID *uuid.UUID     `gorm:"type:uuid" json:"collection_id"`
	Collection   *Tag           `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Colors       []ProductColor `json:"colors,omitempty"`
}

// ProductColor is one color variant of a product.
type ProductColor struct {
	BaseModel
	ProductID uuid.UUID     `gorm:"type:uuid;index" json:"product_id"`
	Name      string        `json:"name"`
	Hex       string        `json:"hex"`
	Image     string        `json:"image"`
	Sizes     []ProductSize `json:"sizes,omitempty"`
}

// ProductSize holds the stock for one size of one color. Stock never goes
// negative; order placement clamps it at zero.
type ProductSize struct {
	BaseModel
	ProductColorID uuid.UUID `gorm:"type:uuid;index" json:"product_color_id"`
	Label          string    `json:"size"`
	Stock          int       `json:"stock"`
}
