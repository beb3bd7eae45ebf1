package entity

import (
	"hr-dashboard-api/core/entity"
)

// Profile is the contact card of a dashboard user.
type Profile struct {
	FullName string `db:"full_name" json:"fullName"`
	Email    string `db:"email" json:"email"`
	Role     string `db:"role" json:"role"`
	entity.BaseEntity
}
