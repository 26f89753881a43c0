package domain

import "time"

// User is an employee record. The ledger only reads users: it needs the
// user->company mapping for batch allocations and reports, and the admin flag
// plus password hash for the admin login. Everything else about users is
// owned by the surrounding platform.
type User struct {
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CompanyID    *string   `json:"companyID,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
