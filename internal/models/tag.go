package models

// TagKind discriminates the two label namespaces.
type TagKind string

const (
	TagKindCategory   TagKind = "category"
	TagKindCollection TagKind = "collection"
)

// Valid reports whether the kind is known.
func (k TagKind) Valid() bool {
	return k == TagKindCategory || k == TagKindCollection
}

// Tag is a named category or collection label. A tag may carry its own
// promotional discount applied to every product referencing it.
type Tag struct {
	BaseModel
	Name        string  `gorm:"uniqueIndex" json:"name"`
	Kind        TagKind `gorm:"type:text;index" json:"kind"`
	SalePercent int     `json:"sale_percent"` // 0-100, 0 means no sale
}
