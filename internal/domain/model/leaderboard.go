package model

type LeaderboardEntry struct {
	Rank       int   `json:"rank"`
	User       *User `json:"user"`
	SkillCount int   `json:"skillCount"`
}

type CodingLeaderboardEntry struct {
	Rank            int   `json:"rank"`
	User            *User `json:"user"`
	TotalScore      int   `json:"totalScore"`
	SubmissionCount int   `json:"submissionCount"`
}
