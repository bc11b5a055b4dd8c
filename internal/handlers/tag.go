package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/models"
)

// TagHandler manages category and collection tags.
type TagHandler struct {
	db *gorm.DB
}

// NewTagHandler constructs TagHandler.
func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{db: db}
}

type tagRequest struct {
	Name        string         `json:"name"`
	Kind        models.TagKind `json:"kind"`
	SalePercent int            `json:"sale_percent"`
}

// CreateTag persists a new category or collection tag.
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tag name is required")
	}
	if !req.Kind.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "kind must be category or collection")
	}
	if req.SalePercent < 0 || req.SalePercent > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "sale_percent must be between 0 and 100")
	}

	var existing models.Tag
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "tag already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	tag := models.Tag{
		Name:        req.Name,
		Kind:        req.Kind,
		SalePercent: req.SalePercent,
	}
	if err := h.db.Create(&tag).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": tag})
}

// GetTag returns a single tag by name.
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tag name is required")
	}

	var tag models.Tag
	if err := h.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "tag not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": tag})
}

// ListCategories returns all category tags.
func (h *TagHandler) ListCategories(c *fiber.Ctx) error {
	return h.listByKind(c, models.TagKindCategory)
}

// ListCollections returns all collection tags.
func (h *TagHandler) ListCollections(c *fiber.Ctx) error {
	return h.listByKind(c, models.TagKindCollection)
}

func (h *TagHandler) listByKind(c *fiber.Ctx, kind models.TagKind) error {
	var tags []models.Tag
	if err := h.db.Where("kind = ?", kind).Order("name asc").Find(&tags).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tags})
}

// DeleteTag removes a tag by name. Products referencing it fall back to
// untagged; their own sale percentage is untouched.
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tag name is required")
	}

	var tag models.Tag
	if err := h.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "tag not found")
		}
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", tag.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).
			Where("collection_id = ?", tag.ID).
			Update("collection_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Tag deleted successfully"})
}

type tagSaleRequest struct {
	Name        string `json:"name"`
	SalePercent *int   `json:"sale_percent"`
}

// SetTagSale sets the promotional percentage applied to every product
// referencing the tag.
func (h *TagHandler) SetTagSale(c *fiber.Ctx) error {
	var req tagSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.SalePercent == nil {
		return fiber.NewError(fiber.StatusBadRequest, "both name and sale_percent are required")
	}
	if *req.SalePercent < 0 || *req.SalePercent > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "sale_percent must be between 0 and 100")
	}

	var tag models.Tag
	if err := h.db.Where("name = ?", req.Name).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "tag not found")
		}
		return err
	}

	tag.SalePercent = *req.SalePercent
	if err := h.db.Model(&tag).Update("sale_percent", tag.SalePercent).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": tag})
}
