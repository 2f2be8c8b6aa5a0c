package model

import "time"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusCorrect   = "correct"
	SubmissionStatusIncorrect = "incorrect"

	// ManualSubmissionScore is what a non-graded submission is worth.
	ManualSubmissionScore = 10
	DefaultLanguage       = "text"
	DefaultExpectedOutput = "Correct implementation"
)

type CodingChallenge struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Difficulty       string    `json:"difficulty"`
	Category         string    `json:"category"`
	JobRole          string    `json:"jobRole"`
	ProblemStatement string    `json:"problemStatement"`
	ExpectedOutput   *string   `json:"expectedOutput"`
	Hints            []string  `json:"hints"`
	Tags             []string  `json:"tags"`
	Points           int       `json:"points"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CodingSubmission struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	ChallengeID int64     `json:"challengeId"`
	Solution    string    `json:"solution"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	Score       int       `json:"score"`
	Feedback    *string   `json:"feedback"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type CreateCodingChallengeRequest struct {
	Title            string   `json:"title" yaml:"title" validate:"required,max=200"`
	Description      string   `json:"description" yaml:"description" validate:"required"`
	Difficulty       string   `json:"difficulty" yaml:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Category         string   `json:"category" yaml:"category" validate:"required,max=100"`
	JobRole          string   `json:"jobRole" yaml:"jobRole" validate:"required,max=100"`
	ProblemStatement string   `json:"problemStatement" yaml:"problemStatement" validate:"required"`
	ExpectedOutput   *string  `json:"expectedOutput" yaml:"expectedOutput"`
	Hints            []string `json:"hints" yaml:"hints"`
	Tags             []string `json:"tags" yaml:"tags"`
	Points           *int     `json:"points" yaml:"points" validate:"omitempty,min=0"`
}

type CreateCodingSubmissionRequest struct {
	ChallengeID int64  `json:"challengeId" validate:"required,gt=0"`
	Solution    string `json:"solution" validate:"required"`
	Language    string `json:"language" validate:"required,max=50"`
}

type SubmitSolutionRequest struct {
	ChallengeID int64  `json:"challengeId" validate:"required,gt=0"`
	Solution    string `json:"solution" validate:"required"`
	Language    string `json:"language" validate:"omitempty,max=50"`
}

type SubmitSolutionResponse struct {
	Submission *CodingSubmission    `json:"submission"`
	Result     SolutionCheckResult `json:"result"`
}
