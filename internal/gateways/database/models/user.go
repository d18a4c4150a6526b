package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID    string    `bun:"user_id,pk"`
	Username  string    `bun:"username,notnull"`
	CardCount int       `bun:"card_count,notnull"`
	PackCount int       `bun:"pack_count,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (u *User) ToDomain() packs.User {
	return packs.User{
		UserID:    u.UserID,
		Username:  u.Username,
		CardCount: u.CardCount,
		PackCount: u.PackCount,
		CreatedAt: u.CreatedAt,
	}
}
