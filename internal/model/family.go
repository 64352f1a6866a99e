package model

import "time"

type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

type Family struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChildAccount holds the allowance settings for a child profile. Every child
// profile has exactly one child account row sharing its id.
type ChildAccount struct {
	ProfileID             int64 `json:"profile_id"`
	FamilyID              int64 `json:"family_id"`
	MonthlyAllowanceCents int64 `json:"monthly_allowance_cents"`
	RewardsEnabled        bool  `json:"rewards_enabled"`
}

// Child combines a child profile with its account for API responses.
type Child struct {
	Profile
	MonthlyAllowanceCents int64 `json:"monthly_allowance_cents"`
	RewardsEnabled        bool  `json:"rewards_enabled"`
}
