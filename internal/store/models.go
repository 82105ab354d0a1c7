package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// AdminUser is an operator allowed to manage projects.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Project is a portfolio entry as stored.
type Project struct {
	ID             int64
	Title          string
	Description    sql.NullString
	Location       sql.NullString
	Status         string
	Category       sql.NullString
	ImageURL       sql.NullString
	Area           sql.NullString
	Bedrooms       sql.NullInt64
	Bathrooms      sql.NullInt64
	Price          decimal.NullDecimal
	CompletionDate sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
