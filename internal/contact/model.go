package contact

import (
	"time"

	"github.com/uptrace/bun"
)

// Contact is one visitor-submitted message. Phone and company are
// optional and stored as NULL when omitted. is_read starts false and
// only ever flips to true.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Phone     *string   `bun:"phone" json:"phone"`
	Company   *string   `bun:"company" json:"company"`
	Message   string    `bun:"message,notnull" json:"message"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	IsRead    bool      `bun:"is_read,notnull,default:false" json:"is_read"`
}

// SubmitRequest is the request body for the public contact form.
// Email format is intentionally not validated here; the form is open to
// any visitor and filtering is a caller concern.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message" validate:"required"`
}

// Pagination describes one page of the admin contact listing.
type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	TotalContacts int `json:"totalContacts"`
	Limit         int `json:"limit"`
}

// ListResponse is the response body for the admin contact listing.
type ListResponse struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// SubmittedEvent is published when a new contact message is accepted.
type SubmittedEvent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
