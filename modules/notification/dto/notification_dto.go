package dto

import (
	"github.com/google/uuid"
)

// MarkAsReadRequest marks the listed notifications read, or all of them when IDs is empty.
type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
	Data    map[string]any
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
