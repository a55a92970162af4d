package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Platform roles.
const (
	RoleAdmin      = "admin"
	RoleResearcher = "researcher"
	RoleMember     = "member"
)

type (
	// User represents a platform account managed from the admin panel
	User struct {
		ID          uuid.UUID `gorm:"type:uuid;primaryKey"` // Unique identifier
		UserName    string    // Display name
		Email       string    `gorm:"uniqueIndex"` // Login email
		Phone       string    // Formatted phone number
		Role        string    // admin, researcher or member
		Designation string    // Free-form job title
		IsActive    bool      // Whether the account may sign in
		LastLogin   *time.Time
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// OutputUser is a DTO for user data in API responses
	OutputUser struct {
		ID          string `json:"id"`
		UserName    string `json:"user_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Role        string `json:"role"`
		Designation string `json:"designation"`
		IsActive    bool   `json:"is_active"`
		LastLogin   string `json:"last_login"`
		CreatedAt   string `json:"created_at"`
	}
)

func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return errors.New("user ID can not be nil")
	}
	if u.Email == "" {
		return errors.New("user email can not be empty")
	}

	return nil
}

// EntityID implements the stable identity used when merging paged results.
func (u User) EntityID() string {
	return u.ID.String()
}

// ToOutput converts a User entity to its DTO representation
func (u *User) ToOutput() OutputUser {
	lastLogin := ""
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.String()
	}

	return OutputUser{
		ID:          u.ID.String(),
		UserName:    u.UserName,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		Designation: u.Designation,
		IsActive:    u.IsActive,
		LastLogin:   lastLogin,
		CreatedAt:   u.CreatedAt.String(),
	}
}
