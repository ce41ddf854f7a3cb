package models

import "time"

// User is a row of the audituser table.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedDate  time.Time `json:"created_date"`
}
