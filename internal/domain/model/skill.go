package model

import "time"

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Skill struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Level          string    `json:"level"`
	Progress       int       `json:"progress"`
	CertificateURL *string   `json:"certificateUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateSkillRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Category       string  `json:"category" validate:"required,max=100"`
	Level          string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Progress       *int    `json:"progress" validate:"omitempty,min=0,max=100"`
	CertificateURL *string `json:"certificateUrl" validate:"omitempty,url"`
}

type UpdateSkillRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category       *string `json:"category" validate:"omitempty,min=1,max=100"`
	Level          *string `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Progress       *int    `json:"progress" validate:"omitempty,min=0,max=100"`
	CertificateURL *string `json:"certificateUrl" validate:"omitempty,url"`
}

func (r UpdateSkillRequest) Empty() bool {
	return r.Name == nil && r.Category == nil && r.Level == nil && r.Progress == nil && r.CertificateURL == nil
}
