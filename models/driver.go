package models

import "github.com/uptrace/bun"

// Driver is a grid entry. Inactive drivers stay in the table so older
// predictions and results keep resolving.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	ID       string `bun:"id,pk" json:"id" validate:"required,max=64"`
	Name     string `bun:"name,notnull" json:"name" validate:"required,max=128"`
	Team     string `bun:"team,notnull" json:"team" validate:"max=128"`
	Number   int    `bun:"number" json:"number,omitempty" validate:"gte=0,lte=99"`
	IsActive bool   `bun:"is_active,notnull" json:"isActive"`
}
