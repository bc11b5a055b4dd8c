package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/yaqeen/internal/config"
	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/utils"
)

const principalContextKey = "currentPrincipal"

// Principal is the authenticated account behind a request: either a
// registered user or a staff admin, depending on the token's type claim.
type Principal struct {
	Type  string
	User  *models.User
	Admin *models.Admin
}

// ID returns the account ID of the principal.
func (p *Principal) ID() uuid.UUID {
	if p.Type == utils.PrincipalAdmin && p.Admin != nil {
		return p.Admin.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return uuid.Nil
}

// Role returns the staff role, or the zero Role for regular users.
func (p *Principal) Role() models.Role {
	if p.Type == utils.PrincipalAdmin && p.Admin != nil {
		return p.Admin.Role
	}
	return ""
}

// IsStaff reports whether the principal is an admin or superadmin.
func (p *Principal) IsStaff() bool {
	return p.Role().CanManageStore()
}

func resolvePrincipal(db *gorm.DB, id uuid.UUID, principalType string) (*Principal, error) {
	if principalType == utils.PrincipalAdmin {
		var admin models.Admin
		if err := db.First(&admin, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &Principal{Type: utils.PrincipalAdmin, Admin: &admin}, nil
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &Principal{Type: utils.PrincipalUser, User: &user}, nil
}

// Auth validates the bearer token and loads the principal into context.
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		id, principalType, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		principal, err := resolvePrincipal(db, id, principalType)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// OptionalAuth loads the principal when a valid token is present and lets
// the request through as a guest otherwise. Used on guest-checkout routes.
func OptionalAuth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}

		id, principalType, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return c.Next()
		}

		if principal, err := resolvePrincipal(db, id, principalType); err == nil {
			c.Locals(principalContextKey, principal)
		}
		return c.Next()
	}
}

// RequireRole rejects requests whose principal lacks one of the given roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.Role().In(roles...) {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context.
func GetPrincipal(c *fiber.Ctx) (*Principal, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return nil, false
	}

	if principal, ok := value.(*Principal); ok {
		return principal, true
	}

	return nil, false
}
