package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
	"github.com/example/yaqeen/internal/utils"
)

// ProductHandler manages product CRUD and catalog reads.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type sizeRequest struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type colorRequest struct {
	Name  string        `json:"name"`
	Hex   string        `json:"hex"`
	Image string        `json:"image"`
	Sizes []sizeRequest `json:"sizes"`
}

type productRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	SalePercent int            `json:"sale_percent"`
	Images      []string       `json:"images"`
	Category    string         `json:"category"`
	Collection  string         `json:"collection"`
	Colors      []colorRequest `json:"colors"`
}

func (h *ProductHandler) buildProductFromRequest(req productRequest) (models.Product, error) {
	if req.Name == "" {
		return models.Product{}, errors.New("product name is required")
	}
	if req.Price < 0 {
		return models.Product{}, errors.New("price must be non-negative")
	}
	if req.SalePercent < 0 || req.SalePercent > 100 {
		return models.Product{}, errors.New("sale_percent must be between 0 and 100")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePercent: req.SalePercent,
		Images:      pq.StringArray(req.Images),
	}

	for _, color := range req.Colors {
		productColor := models.ProductColor{
			Name:  color.Name,
			Hex:   color.Hex,
			Image: color.Image,
		}
		for _, size := range color.Sizes {
			stock := size.Stock
			if stock < 0 {
				stock = 0
			}
			productColor.Sizes = append(productColor.Sizes, models.ProductSize{
				Label: strings.TrimSpace(size.Size),
				Stock: stock,
			})
		}
		product.Colors = append(product.Colors, productColor)
	}

	return product, nil
}

func (h *ProductHandler) resolveTag(tx *gorm.DB, name string, kind models.TagKind) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	var tag models.Tag
	if err := tx.Where("name = ? AND kind = ?", name, kind).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("unknown " + string(kind) + " " + name)
		}
		return nil, err
	}
	return &tag.ID, nil
}

func (h *ProductHandler) attachTags(tx *gorm.DB, product *models.Product, req productRequest) error {
	categoryID, err := h.resolveTag(tx, req.Category, models.TagKindCategory)
	if err != nil {
		return err
	}
	collectionID, err := h.resolveTag(tx, req.Collection, models.TagKindCollection)
	if err != nil {
		return err
	}
	product.CategoryID = categoryID
	product.CollectionID = collectionID
	return nil
}

// ListProducts returns paginated products with optional filters. Sale
// prices are resolved fresh on every read.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if name := c.Query("category"); name != "" {
		id, err := h.resolveTag(h.db, name, models.TagKindCategory)
		if err != nil || id == nil {
			return emptyPage(c, pg)
		}
		query = query.Where("category_id = ?", *id)
	}

	if name := c.Query("collection"); name != "" {
		id, err := h.resolveTag(h.db, name, models.TagKindCollection)
		if err != nil || id == nil {
			return emptyPage(c, pg)
		}
		query = query.Where("collection_id = ?", *id)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Collection").Preload("Colors.Sizes").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	services.ApplySalePricingAll(products)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

func emptyPage(c *fiber.Ctx, pg utils.Pagination) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    []models.Product{},
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    0,
		},
	})
}

// GetProduct loads one product with its colors, sizes and tags.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Category").Preload("Collection").Preload("Colors.Sizes").
		First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	services.ApplySalePricing(&product)

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// GetProductByName loads one product by exact name.
func (h *ProductHandler) GetProductByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product name is required")
	}

	var product models.Product
	if err := h.db.Preload("Category").Preload("Collection").Preload("Colors.Sizes").
		First(&product, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	services.ApplySalePricing(&product)

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// ListByCategory returns paginated products of a category tag.
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	return h.listByTag(c, c.Params("name"), models.TagKindCategory)
}

// ListByCollection returns paginated products of a collection tag.
func (h *ProductHandler) ListByCollection(c *fiber.Ctx) error {
	return h.listByTag(c, c.Params("name"), models.TagKindCollection)
}

func (h *ProductHandler) listByTag(c *fiber.Ctx, name string, kind models.TagKind) error {
	var tag models.Tag
	if err := h.db.Where("name = ? AND kind = ?", name, kind).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, string(kind)+" not found")
		}
		return err
	}

	pg := utils.ParsePagination(c)
	column := "category_id"
	if kind == models.TagKindCollection {
		column = "collection_id"
	}
	query := h.db.Model(&models.Product{}).Where(column+" = ?", tag.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Collection").Preload("Colors.Sizes").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	services.ApplySalePricingAll(products)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// CreateProduct handles product creation with nested colors and sizes.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.attachTags(tx, &product, req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return tx.Create(&product).Error
	}); err != nil {
		return err
	}

	services.ApplySalePricing(&product)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct updates a product and replaces its color variants.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.Preload("Colors.Sizes").First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.attachTags(tx, &product, req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := h.deleteColors(tx, existing.ID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":          product.Name,
			"description":   product.Description,
			"price":         product.Price,
			"sale_percent":  product.SalePercent,
			"images":        product.Images,
			"category_id":   product.CategoryID,
			"collection_id": product.CollectionID,
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
			return err
		}

		for i := range product.Colors {
			product.Colors[i].ProductID = product.ID
		}
		if len(product.Colors) > 0 {
			if err := tx.Create(&product.Colors).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	services.ApplySalePricing(&product)

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product and its color variants.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.deleteColors(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

func (h *ProductHandler) deleteColors(tx *gorm.DB, productID uuid.UUID) error {
	var colorIDs []uuid.UUID
	if err := tx.Model(&models.ProductColor{}).
		Where("product_id = ?", productID).
		Pluck("id", &colorIDs).Error; err != nil {
		return err
	}
	if len(colorIDs) > 0 {
		if err := tx.Where("product_color_id IN ?", colorIDs).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("product_id = ?", productID).Delete(&models.ProductColor{}).Error
}
