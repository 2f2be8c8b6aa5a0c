package model

import "time"

const (
	ActivitySkillCreated    = "skill_created"
	ActivitySkillUpdated    = "skill_updated"
	ActivitySkillDeleted    = "skill_deleted"
	ActivityCodingSubmitted = "coding_submitted"
)

// ActivityEvent is queued after a user mutation so the worker can award
// badges and advance challenge progress.
type ActivityEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
