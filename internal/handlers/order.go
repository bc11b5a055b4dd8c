package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/middleware"
	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
	"github.com/example/yaqeen/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db    *gorm.DB
	email *services.EmailService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, email *services.EmailService) *OrderHandler {
	return &OrderHandler{db: db, email: email}
}

type orderItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ordererRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress models.Address     `json:"shipping_address"`
	TotalPrice      float64            `json:"total_price"`
	PaymentMethod   string             `json:"payment_method"`
	Orderer         ordererRequest     `json:"orderer"`
}

// CreateOrder places an order. Registered users are attached via their
// token; without a token the order is a guest checkout identified by the
// orderer name and email. The sequence bump, the order insert and every
// stock decrement run in one transaction, so a partial write cannot occur.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	order := models.Order{
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		TotalPrice:      req.TotalPrice,
		GuestName:       req.Orderer.Name,
		GuestEmail:      req.Orderer.Email,
		PlacedAt:        time.Now(),
	}

	if order.PaymentMethod == "" {
		order.PaymentMethod = "Cash"
	}

	principal, _ := middleware.GetPrincipal(c)
	if principal != nil && principal.Type == utils.PrincipalUser && principal.User != nil {
		order.UserID = &principal.User.ID
		order.GuestName = ""
		order.GuestEmail = ""
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item quantity must be positive")
		}

		orderItem := models.OrderItem{
			Name:      item.Name,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
		if item.ProductID != "" {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				orderItem.ProductID = &id
			}
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		number, err := services.NextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		warnings, err := services.DeductStock(tx, order.Items)
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			order.StockWarnings = warnings
			if err := tx.Model(&models.Order{}).
				Where("id = ?", order.ID).
				Update("stock_warnings", order.StockWarnings).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	if principal != nil && principal.Type == utils.PrincipalUser {
		order.User = principal.User
	}

	var emailWarning *string
	if err := h.email.SendOrderConfirmation(&order); err != nil {
		warning := "Order placed, but failed to send confirmation email."
		emailWarning = &warning
		log.Printf("[Order] Confirmation email failed for %s: %v", order.OrderNumber, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"orderNumber":  order.OrderNumber,
		"order":        order,
		"emailWarning": emailWarning,
	})
}

// GetOrder returns a single order by its order number. Only the orderer or
// staff may read it.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var order models.Order
	if err := h.db.Preload("Items").Preload("User").
		First(&order, "order_number = ?", c.Params("orderNumber")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !principal.IsStaff() {
		if order.UserID == nil || *order.UserID != principal.ID() {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListAllOrders returns all orders for staff, with pagination and an
// optional status filter.
func (h *OrderHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus lets staff set any valid lifecycle status.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !req.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order status")
	}

	var order models.Order
	if err := h.db.First(&order, "order_number = ?", c.Params("orderNumber")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	order.Status = req.Status
	if err := h.db.Model(&order).Update("status", req.Status).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// MyOrders returns the authenticated user's own orders, paginated.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.Type != utils.PrincipalUser {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("user_id = ?", principal.ID())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
