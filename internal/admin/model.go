package admin

import (
	"time"

	"github.com/uptrace/bun"
)

// Administrator is an operator allowed to manage contact messages.
// Only the bcrypt hash of the password is ever stored.
type Administrator struct {
	bun.BaseModel `bun:"table:admin_users,alias:au"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,unique,notnull" json:"username"`
	PasswordHash string    `bun:"password,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Info is the redacted view of an administrator returned to clients.
type Info struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (a *Administrator) Info() Info {
	return Info{ID: a.ID, Username: a.Username}
}
