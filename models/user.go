package models

import (
	"time"
)

// User roles. Role gates the approve/reject transition and the admin surface.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

// RoleValid reports whether role is one of the recognized roles.
func RoleValid(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// RoleCanApprove reports whether a role may decide claims. Every transition
// guard goes through this predicate so the call sites cannot drift apart.
func RoleCanApprove(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

type User struct {
	UserID   string     `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Name     string     `gorm:"column:name" json:"name"`
	Role     string     `gorm:"column:role" json:"role"`
	Password string     `gorm:"column:password" json:"-"`
	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
