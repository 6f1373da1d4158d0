package model

import "time"

type UserRole string // back office role

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleEditor     UserRole = "EDITOR"
	RoleViewer     UserRole = "VIEWER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Role sets used by the access gate.
var (
	EditRoles   = []UserRole{RoleSuperAdmin, RoleAdmin, RoleEditor}
	DeleteRoles = []UserRole{RoleSuperAdmin, RoleAdmin}
	ManageRoles = []UserRole{RoleSuperAdmin}
)

// HasRole reports whether role is one of allowed.
func HasRole(role UserRole, allowed []UserRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// User is a back office account. Public visitors never have one.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'EDITOR'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
