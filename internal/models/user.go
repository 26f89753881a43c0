package models

import "time"

// User mirrors one users row. The ledger reads users, it never writes them.
type User struct {
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	CompanyID    *string   `db:"company_id"`
	IsAdmin      bool      `db:"is_admin"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
