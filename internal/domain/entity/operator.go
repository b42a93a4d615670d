package entity

import "time"

// Operator es un usuario del almacén con acceso a la API.
type Operator struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
