// Package memory implements the repository interfaces in process memory.
// It backs service and handler tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"

	"github.com/gosimple/slug"
)

// Store holds every table. The repositories returned by its methods share
// one lock.
type Store struct {
	mu sync.Mutex

	nextID int64
	now    func() time.Time

	users       map[string]*model.User
	skills      []model.Skill
	badges      []model.Badge
	recs        []model.Recommendation
	challenges  []model.Challenge
	progress    []model.ChallengeProgress
	codingChals []model.CodingChallenge
	submissions []model.CodingSubmission
	revoked     map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		users:   map[string]*model.User{},
		revoked: map[string]time.Time{},
	}
}

// SetClock overrides the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// PutUser inserts or replaces a user as is.
func (s *Store) PutUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
		u.UpdatedAt = u.CreatedAt
	}
	s.users[u.ID] = &u
}

// PutSkill inserts a skill as is, assigning an id when missing.
func (s *Store) PutSkill(sk model.Skill) model.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk.ID == 0 {
		sk.ID = s.id()
	}
	if sk.CreatedAt.IsZero() {
		sk.CreatedAt = s.now()
		sk.UpdatedAt = sk.CreatedAt
	}
	s.skills = append(s.skills, sk)
	return sk
}

func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Skills() repository.SkillRepository { return skillRepo{s} }
func (s *Store) Badges() repository.BadgeRepository { return badgeRepo{s} }
func (s *Store) Recommendations() repository.RecommendationRepository { return recRepo{s} }
func (s *Store) Challenges() repository.ChallengeRepository { return challengeRepo{s} }
func (s *Store) Coding() repository.CodingRepository { return codingRepo{s} }
func (s *Store) Sessions() repository.SessionRepository { return sessionRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) Upsert(_ context.Context, in model.UpsertUser) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	u, ok := r.s.users[in.ID]
	if !ok {
		u = &model.User{ID: in.ID, CreatedAt: now}
		r.s.users[in.ID] = u
	}
	u.Email, u.FirstName, u.LastName, u.ProfileImageURL = in.Email, in.FirstName, in.LastName, in.ProfileImageURL
	u.UpdatedAt = now
	cp := *u
	return &cp, nil
}

func (r userRepo) UpdateProfile(_ context.Context, id string, p model.ProfileUpdate) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	set := func(dst **string, v *string) {
		if v != nil {
			*dst = v
		}
	}
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.College, p.College)
	set(&u.Course, p.Course)
	set(&u.PreferredJobRole, p.PreferredJobRole)
	if p.GraduationYear != nil {
		u.GraduationYear = p.GraduationYear
	}
	u.UpdatedAt = r.s.now()
	cp := *u
	return &cp, nil
}

func (r userRepo) ListAll(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b model.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r userRepo) Stats(_ context.Context) (*model.Stats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	since := r.s.now().Add(-7 * 24 * time.Hour)
	active := map[string]bool{}
	for _, sk := range r.s.skills {
		if !sk.UpdatedAt.Before(since) {
			active[sk.UserID] = true
		}
	}
	return &model.Stats{TotalUsers: len(r.s.users), TotalSkills: len(r.s.skills), ActiveUsers: len(active)}, nil
}

func (r userRepo) SkillCounts(_ context.Context, limit int) ([]repository.UserSkillCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int{}
	for _, sk := range r.s.skills {
		counts[sk.UserID]++
	}
	out := make([]repository.UserSkillCount, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, repository.UserSkillCount{User: *u, SkillCount: counts[u.ID]})
	}
	slices.SortFunc(out, func(a, b repository.UserSkillCount) int {
		if c := cmp.Compare(b.SkillCount, a.SkillCount); c != 0 {
			return c
		}
		return strings.Compare(a.User.ID, b.User.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r userRepo) CodingTotals(_ context.Context) ([]repository.UserCodingTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byUser := map[string]*repository.UserCodingTotal{}
	var order []string
	for _, sub := range r.s.submissions {
		t, ok := byUser[sub.UserID]
		if !ok {
			u := r.s.users[sub.UserID]
			if u == nil {
				continue
			}
			t = &repository.UserCodingTotal{User: *u}
			byUser[sub.UserID] = t
			order = append(order, sub.UserID)
		}
		t.TotalScore += sub.Score
		t.SubmissionCount++
	}
	out := make([]repository.UserCodingTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	return out, nil
}

type skillRepo struct{ s *Store }

func (r skillRepo) ListByUser(_ context.Context, userID string) ([]model.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Skill{}
	for _, sk := range r.s.skills {
		if sk.UserID == userID {
			out = append(out, sk)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Skill) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return out, nil
}

func (r skillRepo) Create(_ context.Context, userID string, req model.CreateSkillRequest) (*model.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return nil, common.ErrNotFound
	}
	now := r.s.now()
	sk := model.Skill{
		ID: r.s.id(), UserID: userID, Name: req.Name, Category: req.Category, Level: req.Level,
		CertificateURL: req.CertificateURL, CreatedAt: now, UpdatedAt: now,
	}
	if req.Progress != nil {
		sk.Progress = *req.Progress
	}
	r.s.skills = append(r.s.skills, sk)
	return &sk, nil
}

func (r skillRepo) Update(_ context.Context, userID string, id int64, req model.UpdateSkillRequest) (*model.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.skills {
		sk := &r.s.skills[i]
		if sk.ID != id || sk.UserID != userID {
			continue
		}
		if req.Name != nil {
			sk.Name = *req.Name
		}
		if req.Category != nil {
			sk.Category = *req.Category
		}
		if req.Level != nil {
			sk.Level = *req.Level
		}
		if req.Progress != nil {
			sk.Progress = *req.Progress
		}
		if req.CertificateURL != nil {
			sk.CertificateURL = req.CertificateURL
		}
		sk.UpdatedAt = r.s.now()
		cp := *sk
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r skillRepo) Delete(_ context.Context, userID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sk := range r.s.skills {
		if sk.ID == id && sk.UserID == userID {
			r.s.skills = slices.Delete(r.s.skills, i, i+1)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r skillRepo) CountCreatedBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, sk := range r.s.skills {
		if sk.UserID == userID && !sk.CreatedAt.Before(from) && sk.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type badgeRepo struct{ s *Store }

func (r badgeRepo) ListByUser(_ context.Context, userID string) ([]model.Badge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Badge{}
	for _, b := range r.s.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Badge) int { return b.EarnedAt.Compare(a.EarnedAt) })
	return out, nil
}

func (r badgeRepo) Create(_ context.Context, b *model.Badge) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.Slug == "" {
		b.Slug = slug.Make(b.Name)
	}
	for _, held := range r.s.badges {
		if held.UserID == b.UserID && held.Slug == b.Slug {
			return false, nil
		}
	}
	b.ID = r.s.id()
	b.EarnedAt = r.s.now()
	r.s.badges = append(r.s.badges, *b)
	return true, nil
}

type recRepo struct{ s *Store }

func (r recRepo) ListActive(_ context.Context) ([]model.Recommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Recommendation{}
	for _, rec := range r.s.recs {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Recommendation) int { return cmp.Compare(b.StoredMatch(), a.StoredMatch()) })
	return out, nil
}

func (r recRepo) Create(_ context.Context, req model.CreateRecommendationRequest) (*model.Recommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec := model.Recommendation{
		ID: r.s.id(), Title: req.Title, Description: req.Description, Type: req.Type, URL: req.URL,
		Provider: req.Provider, ImageURL: req.ImageURL, Level: req.Level, Duration: req.Duration,
		Price: req.Price, Rating: req.Rating, ReviewCount: req.ReviewCount, MatchPercentage: req.MatchPercentage,
		Deadline: req.Deadline, Location: req.Location, Tags: req.Tags, IsActive: true, CreatedAt: r.s.now(),
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}
	r.s.recs = append(r.s.recs, rec)
	return &rec, nil
}

type challengeRepo struct{ s *Store }

func (r challengeRepo) FindActive(_ context.Context, now time.Time) (*model.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *model.Challenge
	for i := range r.s.challenges {
		c := &r.s.challenges[i]
		if !c.IsActive || c.StartDate.After(now) || !c.EndDate.After(now) {
			continue
		}
		if found == nil || c.StartDate.After(found.StartDate) {
			found = c
		}
	}
	if found == nil {
		return nil, common.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (r challengeRepo) GetProgress(_ context.Context, userID string, challengeID int64) (*model.ChallengeProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.progress {
		if p.UserID == userID && p.ChallengeID == challengeID {
			cp := p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r challengeRepo) UpsertProgress(_ context.Context, userID string, challengeID int64, progress int) (*model.ChallengeProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	for i := range r.s.progress {
		p := &r.s.progress[i]
		if p.UserID == userID && p.ChallengeID == challengeID {
			p.Progress = progress
			if progress >= 100 && !p.Completed {
				p.Completed = true
				p.CompletedAt = &now
			}
			cp := *p
			return &cp, nil
		}
	}
	p := model.ChallengeProgress{ID: r.s.id(), UserID: userID, ChallengeID: challengeID, Progress: progress}
	if progress >= 100 {
		p.Completed = true
		p.CompletedAt = &now
	}
	r.s.progress = append(r.s.progress, p)
	return &p, nil
}

func (r challengeRepo) Create(_ context.Context, req model.CreateChallengeRequest) (*model.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	start := r.s.now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if !req.EndDate.After(start) {
		return nil, fmt.Errorf("endDate must be after startDate: %w", common.ErrValidation)
	}
	c := model.Challenge{
		ID: r.s.id(), Title: req.Title, Description: req.Description, TargetCount: req.TargetCount,
		RewardBadge: req.RewardBadge, StartDate: start, EndDate: req.EndDate, IsActive: true,
	}
	r.s.challenges = append(r.s.challenges, c)
	return &c, nil
}

type codingRepo struct{ s *Store }

func (r codingRepo) ListActiveChallenges(_ context.Context) ([]model.CodingChallenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.CodingChallenge{}
	for _, c := range r.s.codingChals {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r codingRepo) ListActiveChallengesByDifficulty(ctx context.Context, difficulty string) ([]model.CodingChallenge, error) {
	all, _ := r.ListActiveChallenges(ctx)
	out := []model.CodingChallenge{}
	for _, c := range all {
		if strings.EqualFold(c.Difficulty, difficulty) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r codingRepo) FindChallengeByID(_ context.Context, id int64) (*model.CodingChallenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.codingChals {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r codingRepo) CreateChallenge(_ context.Context, req model.CreateCodingChallengeRequest) (*model.CodingChallenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := model.CodingChallenge{
		ID: r.s.id(), Title: req.Title, Description: req.Description, Difficulty: req.Difficulty,
		Category: req.Category, JobRole: req.JobRole, ProblemStatement: req.ProblemStatement,
		ExpectedOutput: req.ExpectedOutput, Hints: req.Hints, Tags: req.Tags, Points: 10,
		IsActive: true, CreatedAt: r.s.now(),
	}
	if req.Points != nil {
		c.Points = *req.Points
	}
	r.s.codingChals = append(r.s.codingChals, c)
	return &c, nil
}

func (r codingRepo) CreateSubmission(_ context.Context, sub *model.CodingSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub.ID = r.s.id()
	sub.SubmittedAt = r.s.now()
	r.s.submissions = append(r.s.submissions, *sub)
	return nil
}

func (r codingRepo) ListSubmissionsByUser(_ context.Context, userID string) ([]model.CodingSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.CodingSubmission{}
	for i := len(r.s.submissions) - 1; i >= 0; i-- {
		if r.s.submissions[i].UserID == userID {
			out = append(out, r.s.submissions[i])
		}
	}
	return out, nil
}

func (r codingRepo) CountCorrectSubmissions(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, sub := range r.s.submissions {
		if sub.UserID == userID && sub.Status == model.SubmissionStatusCorrect {
			n++
		}
	}
	return n, nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ttl > 0 {
		r.s.revoked[tokenID] = r.s.now().Add(ttl)
	}
	return nil
}

func (r sessionRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	until, ok := r.s.revoked[tokenID]
	return ok && r.s.now().Before(until), nil
}
