package model

import "time"

// Challenge is a time-bounded goal, e.g. "add 5 skills this week".
type Challenge struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	TargetCount int       `json:"targetCount"`
	RewardBadge *string   `json:"rewardBadge"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"`
}

type ChallengeProgress struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	ChallengeID int64      `json:"challengeId"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type ActiveChallenge struct {
	Challenge *Challenge         `json:"challenge"`
	Progress  *ChallengeProgress `json:"progress"`
}

type CreateChallengeRequest struct {
	Title       string     `json:"title" yaml:"title" validate:"required,max=200"`
	Description *string    `json:"description" yaml:"description"`
	TargetCount int        `json:"targetCount" yaml:"targetCount" validate:"required,gt=0"`
	RewardBadge *string    `json:"rewardBadge" yaml:"rewardBadge" validate:"omitempty,max=100"`
	StartDate   *time.Time `json:"startDate" yaml:"startDate"`
	EndDate     time.Time  `json:"endDate" yaml:"endDate" validate:"required"`
}
