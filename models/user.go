package models

import (
	"time"
)

// RoleName is one of the three user classes of the platform
type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RoleOwner    RoleName = "owner"
	RoleCustomer RoleName = "customer"
)

// Valid reports whether r is a known role
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleCustomer:
		return true
	}
	return false
}

// DefaultRoles are created at startup when missing
var DefaultRoles = []Role{
	{Name: RoleAdmin, Description: "Superuser"},
	{Name: RoleCustomer, Description: "General customer"},
	{Name: RoleOwner, Description: "Restaurant owner"},
}

type Role struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        RoleName `json:"name" gorm:"uniqueIndex;size:80;not null"`
	Description string   `json:"description" gorm:"size:255"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"size:255"`
	Active       bool      `json:"active" gorm:"not null"` // false = blocked
	Roles        []Role    `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole requires Roles to be loaded
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}

func (u *User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
