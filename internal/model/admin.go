package model

import "time"

// AdminRole is the coarse authorization level of an admin account.
// Editors author content; superadmins additionally manage students and
// see orders.
type AdminRole string

const (
	AdminRoleSuperadmin AdminRole = "superadmin"
	AdminRoleEditor     AdminRole = "editor"
)

// Admin is a back-office account.
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         AdminRole `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminLoginRequest is the payload for admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
