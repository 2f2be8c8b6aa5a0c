// Package advisor talks to a hosted language model to grade coding
// solutions and draft career roadmaps. Its methods never return errors:
// every failure degrades to a fixed, user-facing fallback.
package advisor

import (
	"context"

	"skill_tracker/internal/domain/model"
)

type SolutionCheckInput struct {
	ProblemStatement string
	ExpectedOutput   string
	Solution         string
	Difficulty       string
}

type CareerGuidanceInput struct {
	CurrentSkills []string
	TargetJobRole string
	CurrentLevel  string
}

type Client interface {
	CheckSolution(ctx context.Context, in SolutionCheckInput) model.SolutionCheckResult
	CareerGuidance(ctx context.Context, in CareerGuidanceInput) model.CareerGuidance
}

const (
	DefaultTimelineWeeks = 12

	defaultFeedback  = "Unable to evaluate solution"
	fallbackFeedback = "Error occurred while checking solution. Please try again."
	fallbackSuggest  = "Please ensure your code is properly formatted and try again."
	fallbackRoadmap  = "Complete your profile and add more skills to get personalized guidance"
)

// SolutionFallback is returned when a solution could not be graded.
func SolutionFallback() model.SolutionCheckResult {
	return model.SolutionCheckResult{
		IsCorrect:   false,
		Score:       0,
		Feedback:    fallbackFeedback,
		Suggestions: []string{fallbackSuggest},
	}
}

// GuidanceFallback is returned when guidance could not be generated.
func GuidanceFallback() model.CareerGuidance {
	return model.CareerGuidance{
		Roadmap:         []string{fallbackRoadmap},
		SuggestedSkills: []string{},
		TimelineWeeks:   DefaultTimelineWeeks,
		Resources:       []string{},
	}
}
