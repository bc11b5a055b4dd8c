package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
	"github.com/example/yaqeen/internal/utils"
)

// MessageHandler manages contact-form messages.
type MessageHandler struct {
	db    *gorm.DB
	email *services.EmailService
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(db *gorm.DB, email *services.EmailService) *MessageHandler {
	return &MessageHandler{db: db, email: email}
}

type messageRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// CreateMessage stores a contact-form submission and notifies the store
// admin by email. A failed notification never fails the submission.
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	message := models.Message{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    cleanEmail(req.Email),
		Body:     req.Message,
		Category: req.Category,
	}
	if err := h.db.Create(&message).Error; err != nil {
		return err
	}

	var emailWarning *string
	if err := h.email.NotifyNewMessage(message); err != nil {
		warning := "Message received, but failed to notify the admin."
		emailWarning = &warning
		log.Printf("[Message] Admin notification failed for %s: %v", message.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"data":         message,
		"emailWarning": emailWarning,
	})
}

// ListMessages returns all messages for staff, paginated.
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Message{}).Count(&total).Error; err != nil {
		return err
	}

	var messages []models.Message
	if err := h.db.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&messages).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    messages,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListUserMessages returns every message submitted from one email address.
func (h *MessageHandler) ListUserMessages(c *fiber.Ctx) error {
	email := cleanEmail(c.Params("email"))
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var messages []models.Message
	if err := h.db.Where("email = ?", email).
		Order("created_at desc").
		Find(&messages).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": messages})
}
