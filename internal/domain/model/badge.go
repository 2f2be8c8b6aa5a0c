package model

import "time"

// Badge is immutable once earned.
type Badge struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

type AwardBadgeRequest struct {
	UserID      string  `json:"userId" validate:"required"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        string  `json:"icon" validate:"required,max=50"`
}
