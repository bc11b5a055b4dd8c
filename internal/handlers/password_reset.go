package handlers

import (
	"crypto/rand"
	"fmt"
	"log"
	"math"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/services"
	"github.com/example/yaqeen/internal/utils"
)

const (
	otpTTL            = 15 * time.Minute
	otpResendCooldown = 60 * time.Second
)

// PasswordResetHandler manages the OTP-based forgot-password flow.
type PasswordResetHandler struct {
	db    *gorm.DB
	email *services.EmailService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(db *gorm.DB, email *services.EmailService) *PasswordResetHandler {
	return &PasswordResetHandler{db: db, email: email}
}

func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// otpResendWait returns how many seconds remain of the resend cooldown.
// The issuance time is reconstructed from the stored expiry minus the TTL.
func otpResendWait(expiresAt, now time.Time) int {
	issuedAt := expiresAt.Add(-otpTTL)
	elapsed := now.Sub(issuedAt)
	if elapsed >= otpResendCooldown {
		return 0
	}
	return int(math.Ceil((otpResendCooldown - elapsed).Seconds()))
}

// otpMatches reports whether the submitted code is the stored one and the
// expiry has not elapsed. The expiry instant itself counts as elapsed.
func otpMatches(stored, submitted string, expiresAt *time.Time, now time.Time) bool {
	if stored == "" || stored != submitted || expiresAt == nil {
		return false
	}
	return now.Before(*expiresAt)
}

func (h *PasswordResetHandler) issueOTP(user *models.User) (string, error) {
	otp, err := generateOTP()
	if err != nil {
		return "", err
	}

	expires := time.Now().Add(otpTTL)
	if err := h.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"reset_otp":         otp,
			"reset_otp_expires": expires,
		}).Error; err != nil {
		return "", err
	}

	return otp, nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword generates a 6-digit OTP valid for 15 minutes and mails it
// to the user. Email failures surface as emailWarning, not as errors.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", cleanEmail(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "user not found")
		}
		return err
	}

	otp, err := h.issueOTP(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate OTP")
	}

	var emailWarning *string
	if err := h.email.SendOTP(user.Email, user.Name, otp); err != nil {
		warning := "OTP generated, but failed to send email."
		emailWarning = &warning
		log.Printf("[PasswordReset] OTP email failed for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"message":      "OTP sent to email",
		"emailWarning": emailWarning,
	})
}

// ResendOTP re-issues the reset code. A resend within 60 seconds of the
// previous issuance is rejected with the remaining wait time.
func (h *PasswordResetHandler) ResendOTP(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", cleanEmail(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "user not found")
		}
		return err
	}

	if user.ResetOTP != "" && user.ResetOTPExpires != nil {
		if wait := otpResendWait(*user.ResetOTPExpires, time.Now()); wait > 0 {
			return fiber.NewError(fiber.StatusTooManyRequests,
				fmt.Sprintf("please wait %d seconds before resending OTP", wait))
		}
	}

	otp, err := h.issueOTP(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate OTP")
	}

	var emailWarning *string
	if err := h.email.SendOTP(user.Email, user.Name, otp); err != nil {
		warning := "OTP generated, but failed to send email."
		emailWarning = &warning
		log.Printf("[PasswordReset] OTP email failed for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"message":      "OTP resent to email",
		"emailWarning": emailWarning,
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ResetPassword sets a new password when the submitted OTP matches the
// stored one and has not expired, then clears the code and expiry.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 5 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 5 characters")
	}

	var user models.User
	if err := h.db.Where("email = ?", cleanEmail(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid or expired OTP")
		}
		return err
	}

	if !otpMatches(user.ResetOTP, req.OTP, user.ResetOTPExpires, time.Now()) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired OTP")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"password_hash":     hash,
			"reset_otp":         "",
			"reset_otp_expires": nil,
		}).Error; err != nil {
		return err
	}

	var emailWarning *string
	if err := h.email.SendPasswordChanged(user.Email, user.Name); err != nil {
		warning := "Password reset, but failed to send confirmation email."
		emailWarning = &warning
		log.Printf("[PasswordReset] Confirmation email failed for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"message":      "Password reset successful",
		"emailWarning": emailWarning,
	})
}
