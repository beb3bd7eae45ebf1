package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"hr-dashboard-api/core/entity"

	"github.com/google/uuid"
)

const (
	TypeSlotBooked      = "one_on_one_booked"
	TypeSlotCancelled   = "one_on_one_cancelled"
	TypeSlotReleased    = "one_on_one_released"
	TypeSlotRescheduled = "one_on_one_rescheduled"
)

type Notification struct {
	UserID  uuid.UUID `db:"user_id" json:"userId"`
	Title   string    `db:"title" json:"title"`
	Message string    `db:"message" json:"message"`
	Type    string    `db:"type" json:"type"`
	Data    JSONB     `db:"data" json:"data"`
	IsRead  bool      `db:"is_read" json:"isRead"`
	entity.BaseEntity
}

// JSONB stores free-form notification payloads in a jsonb column.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
	return json.Unmarshal(b, j)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
