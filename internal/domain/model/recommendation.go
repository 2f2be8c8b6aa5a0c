package model

import "time"

const (
	RecommendationCourse        = "Course"
	RecommendationInternship    = "Internship"
	RecommendationEvent         = "Event"
	RecommendationCertification = "Certification"
)

type Recommendation struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Type            string     `json:"type"`
	URL             *string    `json:"url"`
	Provider        *string    `json:"provider"`
	ImageURL        *string    `json:"imageUrl"`
	Level           *string    `json:"level"`
	Duration        *string    `json:"duration"`
	Price           *string    `json:"price"`
	Rating          *string    `json:"rating"`
	ReviewCount     *string    `json:"reviewCount"`
	MatchPercentage *int       `json:"matchPercentage"`
	Deadline        *time.Time `json:"deadline"`
	Location        *string    `json:"location"`
	Tags            []string   `json:"tags"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// StoredMatch is the display match percentage, 0 when unset.
func (r Recommendation) StoredMatch() int {
	if r.MatchPercentage == nil {
		return 0
	}
	return *r.MatchPercentage
}

type CreateRecommendationRequest struct {
	Title           string     `json:"title" yaml:"title" validate:"required,max=200"`
	Description     *string    `json:"description" yaml:"description"`
	Type            string     `json:"type" yaml:"type" validate:"required,oneof=Course Internship Event Certification"`
	URL             *string    `json:"url" yaml:"url" validate:"omitempty,url"`
	Provider        *string    `json:"provider" yaml:"provider"`
	ImageURL        *string    `json:"imageUrl" yaml:"imageUrl" validate:"omitempty,url"`
	Level           *string    `json:"level" yaml:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration        *string    `json:"duration" yaml:"duration"`
	Price           *string    `json:"price" yaml:"price"`
	Rating          *string    `json:"rating" yaml:"rating"`
	ReviewCount     *string    `json:"reviewCount" yaml:"reviewCount"`
	MatchPercentage *int       `json:"matchPercentage" yaml:"matchPercentage" validate:"omitempty,min=0,max=100"`
	Deadline        *time.Time `json:"deadline" yaml:"deadline"`
	Location        *string    `json:"location" yaml:"location"`
	Tags            []string   `json:"tags" yaml:"tags" validate:"omitempty,dive,required"`
	IsActive        *bool      `json:"isActive" yaml:"isActive"`
}
