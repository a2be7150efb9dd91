package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles form a closed set; the superuser flag is orthogonal and grants the
// same rights as the admin role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   *string    `gorm:"size:150" json:"first_name,omitempty"`
	LastName    *string    `gorm:"size:150" json:"last_name,omitempty"`
	Bio         *string    `gorm:"type:text" json:"bio,omitempty"`
	Role        string     `gorm:"size:20;default:'user';not null" json:"role"`
	IsSuperuser bool       `gorm:"default:false;not null" json:"is_superuser"`
	Password    string     `gorm:"column:password_hash" json:"-"` // Not shown in JSON
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// IsAdmin reports whether the user holds administrator rights, either via
// the admin role or the superuser flag.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the user holds the moderator role.
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

// ValidRole reports whether the given role is one of the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

func (User) TableName() string {
	return "users"
}
