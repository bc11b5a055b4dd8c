package models

// Role distinguishes staff permission levels.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is a known staff role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// In reports whether the role is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// CanManageStore covers catalog, tag and order administration.
func (r Role) CanManageStore() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// CanManageStaff covers admin-account and user-account administration.
func (r Role) CanManageStaff() bool {
	return r == RoleSuperadmin
}

// Admin represents a staff account.
type Admin struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"type:text" json:"role"`
}
