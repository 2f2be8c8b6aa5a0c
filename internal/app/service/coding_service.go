package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"skill_tracker/internal/app/advisor"
	"skill_tracker/internal/app/matching"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"
)

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type CodingService struct {
	codingRepo repository.CodingRepository
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
	advisor    advisor.Client
	activity   ActivityPublisher
	rng        matching.Rand
	log        *logger.Logger
}

func NewCodingService(
	codingRepo repository.CodingRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	advisorClient advisor.Client,
	activity ActivityPublisher,
	log *logger.Logger,
) *CodingService {
	return &CodingService{
		codingRepo: codingRepo,
		userRepo:   userRepo,
		skillRepo:  skillRepo,
		advisor:    advisorClient,
		activity:   activity,
		rng:        globalRand{},
		log:        log,
	}
}

// WithRand replaces the random source used for personalized picks.
func (s *CodingService) WithRand(rng matching.Rand) *CodingService {
	s.rng = rng
	return s
}

func (s *CodingService) ListChallenges(ctx context.Context) ([]model.CodingChallenge, error) {
	return s.codingRepo.ListActiveChallenges(ctx)
}

// PersonalizedChallenge returns nil when no challenge fits the user.
func (s *CodingService) PersonalizedChallenge(ctx context.Context, userID string) (*model.CodingChallenge, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	skills, err := s.skillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	candidates, err := s.codingRepo.ListActiveChallengesByDifficulty(ctx, matching.TargetDifficulty(skills))
	if err != nil {
		return nil, fmt.Errorf("failed to load coding challenges: %w", err)
	}
	return matching.PickCodingChallenge(user, skills, candidates, s.rng), nil
}

// Submit records an ungraded submission worth a fixed score.
func (s *CodingService) Submit(ctx context.Context, userID string, req model.CreateCodingSubmissionRequest) (*model.CodingSubmission, error) {
	if _, err := s.codingRepo.FindChallengeByID(ctx, req.ChallengeID); err != nil {
		return nil, fmt.Errorf("coding challenge %d: %w", req.ChallengeID, err)
	}
	sub := &model.CodingSubmission{
		UserID:      userID,
		ChallengeID: req.ChallengeID,
		Solution:    req.Solution,
		Language:    req.Language,
		Status:      model.SubmissionStatusSubmitted,
		Score:       model.ManualSubmissionScore,
	}
	if err := s.codingRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	publishActivity(ctx, s.activity, s.log, model.ActivityCodingSubmitted, userID)
	return sub, nil
}

// SubmitForGrading grades the solution with the advisor and stores the
// result. Grading failures still produce a stored, incorrect submission.
func (s *CodingService) SubmitForGrading(ctx context.Context, userID string, req model.SubmitSolutionRequest) (*model.SubmitSolutionResponse, error) {
	challenge, err := s.codingRepo.FindChallengeByID(ctx, req.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("coding challenge %d: %w", req.ChallengeID, err)
	}

	expected := model.DefaultExpectedOutput
	if challenge.ExpectedOutput != nil && *challenge.ExpectedOutput != "" {
		expected = *challenge.ExpectedOutput
	}
	result := s.advisor.CheckSolution(ctx, advisor.SolutionCheckInput{
		ProblemStatement: challenge.ProblemStatement,
		ExpectedOutput:   expected,
		Solution:         req.Solution,
		Difficulty:       challenge.Difficulty,
	})

	language := req.Language
	if language == "" {
		language = model.DefaultLanguage
	}
	status := model.SubmissionStatusIncorrect
	if result.IsCorrect {
		status = model.SubmissionStatusCorrect
	}
	feedback := result.Feedback
	sub := &model.CodingSubmission{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Solution:    req.Solution,
		Language:    language,
		Status:      status,
		Score:       result.Score,
		Feedback:    &feedback,
	}
	if err := s.codingRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	publishActivity(ctx, s.activity, s.log, model.ActivityCodingSubmitted, userID)
	return &model.SubmitSolutionResponse{Submission: sub, Result: result}, nil
}

func (s *CodingService) MySubmissions(ctx context.Context, userID string) ([]model.CodingSubmission, error) {
	return s.codingRepo.ListSubmissionsByUser(ctx, userID)
}

func (s *CodingService) CreateChallenge(ctx context.Context, req model.CreateCodingChallengeRequest) (*model.CodingChallenge, error) {
	return s.codingRepo.CreateChallenge(ctx, req)
}
