package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// User is a league player with a bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          string    `bun:"id,pk" json:"id"`
	Username    string    `bun:"username,notnull,unique" json:"username"`
	DisplayName string    `bun:"display_name,notnull" json:"displayName"`
	Password    string    `bun:"password,notnull" json:"-"`
	IsAdmin     bool      `bun:"is_admin,notnull" json:"isAdmin"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
}

func (u User) Scoring() scoring.User {
	return scoring.User{ID: u.ID, DisplayName: u.DisplayName}
}
