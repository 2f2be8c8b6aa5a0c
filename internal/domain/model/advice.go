package model

type SolutionCheckResult struct {
	IsCorrect   bool     `json:"isCorrect"`
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

type CareerGuidance struct {
	Roadmap         []string `json:"roadmap"`
	SuggestedSkills []string `json:"suggestedSkills"`
	TimelineWeeks   int      `json:"timelineWeeks"`
	Resources       []string `json:"resources"`
}
