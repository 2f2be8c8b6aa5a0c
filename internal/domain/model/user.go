package model

import (
	"time"
)

type User struct {
	ID               string    `json:"id"`
	Email            *string   `json:"email"`
	FirstName        *string   `json:"firstName"`
	LastName         *string   `json:"lastName"`
	ProfileImageURL  *string   `json:"profileImageUrl"`
	College          *string   `json:"college"`
	Course           *string   `json:"course"`
	GraduationYear   *int      `json:"graduationYear"`
	PreferredJobRole *string   `json:"preferredJobRole"`
	IsAdmin          bool      `json:"isAdmin"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// JobRole returns the preferred job role, or "" when unset.
func (u *User) JobRole() string {
	if u == nil || u.PreferredJobRole == nil {
		return ""
	}
	return *u.PreferredJobRole
}

// UpsertUser carries the identity-provider fields written on login.
type UpsertUser struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

type ProfileUpdate struct {
	FirstName        *string `json:"firstName" validate:"omitempty,max=100"`
	LastName         *string `json:"lastName" validate:"omitempty,max=100"`
	College          *string `json:"college" validate:"omitempty,max=200"`
	Course           *string `json:"course" validate:"omitempty,max=200"`
	GraduationYear   *int    `json:"graduationYear" validate:"omitempty,min=1950,max=2100"`
	PreferredJobRole *string `json:"preferredJobRole" validate:"omitempty,max=100"`
}

type Stats struct {
	TotalUsers  int `json:"totalUsers"`
	TotalSkills int `json:"totalSkills"`
	ActiveUsers int `json:"activeUsers"`
}
