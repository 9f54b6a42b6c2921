// internal/domain/notification/entity.go
package notification

import "time"

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
)

type Notification struct {
	ID        string    `json:"id" db:"id"` // ULID, synthesized on add
	UserID    int64     `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      Type      `json:"type" db:"type"`
	Category  string    `json:"category,omitempty" db:"category"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

type AddRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Message  string `json:"message" binding:"required"`
	Type     Type   `json:"type" binding:"omitempty,oneof=success error info warning"`
	Category string `json:"category" binding:"max=100"`
}

type Summary struct {
	TotalUnread int `json:"total_unread"`
	TotalRead   int `json:"total_read"`
	Total       int `json:"total"`
}
