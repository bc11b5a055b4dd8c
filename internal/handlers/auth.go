package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/config"
	"github.com/example/yaqeen/internal/middleware"
	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
	"github.com/example/yaqeen/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	email *services.EmailService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, email *services.EmailService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, email: email}
}

type registerRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phone    string         `json:"phone"`
	Address  models.Address `json:"address"`
}

func cleanEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account and sends a welcome email. A failed
// email send never fails the registration; it surfaces as emailWarning.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := cleanEmail(req.Email)
	if req.Name == "" || email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if len(req.Password) < 5 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 5 characters")
	}

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, utils.PrincipalUser, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	var emailWarning *string
	if err := h.email.SendWelcome(user.Email, user.Name); err != nil {
		warning := "Registration succeeded, but failed to send welcome email."
		emailWarning = &warning
		log.Printf("[Auth] Welcome email failed for %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered",
		"user": fiber.Map{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"type":    utils.PrincipalUser,
			"address": user.Address,
			"phone":   user.Phone,
		},
		"token":        token,
		"emailWarning": emailWarning,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the user table first and falls back to the
// admin table, issuing a token whose type claim records which one matched.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := cleanEmail(req.Email)

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !utils.CheckPassword(user.PasswordHash, req.Password) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
		}

		token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, utils.PrincipalUser, h.cfg.TokenExpires)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":      user.ID,
				"name":    user.Name,
				"email":   user.Email,
				"type":    utils.PrincipalUser,
				"role":    "user",
				"address": user.Address,
				"phone":   user.Phone,
			},
		})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var admin models.Admin
	if err := h.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, utils.PrincipalAdmin, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"type":  utils.PrincipalAdmin,
			"role":  admin.Role,
		},
	})
}

// Verify confirms the bearer token is valid and returns the account behind it.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}

	resp := fiber.Map{"valid": true}
	if principal.Type == utils.PrincipalAdmin {
		resp["user"] = fiber.Map{
			"id":    principal.Admin.ID,
			"name":  principal.Admin.Name,
			"email": principal.Admin.Email,
			"type":  utils.PrincipalAdmin,
			"role":  principal.Admin.Role,
		}
	} else {
		resp["user"] = fiber.Map{
			"id":      principal.User.ID,
			"name":    principal.User.Name,
			"email":   principal.User.Email,
			"type":    utils.PrincipalUser,
			"role":    "user",
			"address": principal.User.Address,
			"phone":   principal.User.Phone,
		}
	}

	return c.JSON(resp)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword updates the authenticated user's password after checking
// the old one.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.Type != utils.PrincipalUser {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 5 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 5 characters")
	}

	user := principal.User
	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "old password incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("password_hash", hash).Error; err != nil {
		return err
	}

	var emailWarning *string
	if err := h.email.SendPasswordChanged(user.Email, user.Name); err != nil {
		warning := "Password changed, but failed to send confirmation email."
		emailWarning = &warning
		log.Printf("[Auth] Password-changed email failed for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Password changed successfully",
		"emailWarning": emailWarning,
	})
}
