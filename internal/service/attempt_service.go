package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/config"
	"github.com/mockdrill/mockdrill-backend/internal/exam"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// Domain errors.
var (
	ErrAttemptActive    = errors.New("an attempt on this test is already in progress")
	ErrAttemptNotActive = errors.New("attempt is not in progress")
	ErrAttemptNotScored = errors.New("attempt has not been scored yet")
	ErrNotAttemptOwner  = errors.New("attempt belongs to another student")
	ErrTimeElapsed      = errors.New("attempt time has elapsed")
)

// answerPayload is the autosave queue item drained by the AutosaveWorker.
type answerPayload struct {
	AttemptID  string `json:"attempt_id"`
	QuestionID string `json:"question_id"`
	Selected   []int  `json:"selected"`
}

// scorePayload is the scoring queue item drained by the ScoringWorker.
type scorePayload struct {
	AttemptID     string               `json:"attempt_id"`
	TotalScore    float64              `json:"total_score"`
	MaxScore      float64              `json:"max_score"`
	SectionScores []model.SectionScore `json:"section_scores"`
}

// AttemptService handles the exam-taking flow: start, autosave, submit
// with in-RAM grading, and result retrieval.
type AttemptService struct {
	attemptRepo  *repository.AttemptRepository
	testService  *TestService
	orderService *OrderService
	companyRepo  *repository.CompanyRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	testService *TestService,
	orderService *OrderService,
	companyRepo *repository.CompanyRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		testService:  testService,
		orderService: orderService,
		companyRepo:  companyRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start opens an attempt on a generated test the student has access to.
// An existing in-progress attempt on the same test is resumed instead of
// opening a second one.
func (s *AttemptService) Start(ctx context.Context, studentID int, testID uuid.UUID) (*model.Attempt, error) {
	test, err := s.testService.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if !test.IsGenerated {
		return nil, ErrTestNotGenerated
	}

	allowed, err := s.orderService.HasAccess(ctx, studentID, model.ItemTypeTest, testID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPaymentRequired
	}

	if existing, err := s.attemptRepo.GetActive(ctx, studentID, testID); err == nil {
		return existing, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	attempt := &model.Attempt{
		TestID:    testID,
		StudentID: studentID,
		Status:    model.AttemptStatusInProgress,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	activeKey := config.CacheKey.StudentActiveAttemptKey(studentID)
	if err := s.rdb.Set(ctx, activeKey, attempt.ID.String(), 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attempt.ID.String()).Msg("Failed to cache active attempt")
	}

	s.log.Info().
		Str("attempt_id", attempt.ID.String()).
		Str("test_id", testID.String()).
		Int("student_id", studentID).
		Msg("Attempt started")
	return attempt, nil
}

// GetOwned loads an attempt and verifies ownership.
func (s *AttemptService) GetOwned(ctx context.Context, attemptID uuid.UUID, studentID int) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, ErrNotAttemptOwner
	}
	return attempt, nil
}

// GetPaper returns the cached paper for an in-progress attempt together
// with whatever answers have been autosaved so far.
func (s *AttemptService) GetPaper(ctx context.Context, attemptID uuid.UUID, studentID int) (*model.TestPaper, map[string]model.AnswerKey, error) {
	attempt, err := s.GetOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, nil, err
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, nil, ErrAttemptNotActive
	}

	paper, err := s.testService.GetPaper(ctx, attempt.TestID)
	if err != nil {
		return nil, nil, err
	}

	saved, err := s.loadAutosaved(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	return paper, saved, nil
}

// SaveAnswer autosaves one answer to Redis and queues it for persistence.
// Deselecting every option is sent as an empty list and clears the entry.
func (s *AttemptService) SaveAnswer(ctx context.Context, attemptID uuid.UUID, studentID int, questionID uuid.UUID, selected []int) error {
	attempt, err := s.GetOwned(ctx, attemptID, studentID)
	if err != nil {
		return err
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return ErrAttemptNotActive
	}

	if deadline, ok := s.deadline(ctx, attempt); ok && time.Now().After(deadline) {
		return ErrTimeElapsed
	}

	answersKey := config.CacheKey.AttemptAnswersKey(attemptID.String())
	if len(selected) == 0 {
		if err := s.rdb.HDel(ctx, answersKey, questionID.String()).Err(); err != nil {
			return fmt.Errorf("clear answer: %w", err)
		}
	} else {
		val, err := json.Marshal(selected)
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		if err := s.rdb.HSet(ctx, answersKey, questionID.String(), val).Err(); err != nil {
			return fmt.Errorf("autosave answer: %w", err)
		}
	}

	payload, err := json.Marshal(answerPayload{
		AttemptID:  attemptID.String(),
		QuestionID: questionID.String(),
		Selected:   selected,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistAnswersQueue, payload).Err(); err != nil {
		return fmt.Errorf("queue answer: %w", err)
	}
	return nil
}

// Submit grades the attempt entirely from Redis, marks it submitted in
// PostgreSQL, and queues the scores for batch persistence. The result is
// returned immediately; the worker flips status to scored asynchronously.
func (s *AttemptService) Submit(ctx context.Context, attemptID uuid.UUID, studentID int) (*model.AttemptResult, error) {
	attempt, err := s.GetOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, ErrAttemptNotActive
	}

	marking, err := s.testService.GetMarking(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	keys, err := s.testService.GetAnswerKeys(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}
	saved, err := s.loadAutosaved(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	graded := make([]exam.GradedQuestion, len(marking))
	answers := make(map[int]model.AnswerKey, len(saved))
	for i, entry := range marking {
		graded[i] = exam.GradedQuestion{
			Section:       entry.Section,
			Key:           keys[entry.QuestionID.String()],
			Marks:         entry.Marks,
			NegativeMarks: entry.NegativeMarks,
		}
		if sel, ok := saved[entry.QuestionID.String()]; ok {
			answers[i] = sel
		}
	}

	score := exam.ScoreAttempt(graded, answers)

	now := time.Now()
	if err := s.attemptRepo.MarkSubmitted(ctx, attemptID, now); err != nil {
		return nil, fmt.Errorf("mark submitted: %w", err)
	}
	s.rdb.Del(ctx, config.CacheKey.StudentActiveAttemptKey(studentID))

	payload, err := json.Marshal(scorePayload{
		AttemptID:     attemptID.String(),
		TotalScore:    score.Total,
		MaxScore:      score.Max,
		SectionScores: score.Sections,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal scores: %w", err)
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistScoresQueue, payload).Err(); err != nil {
		return nil, fmt.Errorf("queue scores: %w", err)
	}

	attempt.Status = model.AttemptStatusSubmitted
	attempt.SubmittedAt = &now
	attempt.TotalScore = &score.Total
	attempt.MaxScore = &score.Max
	attempt.SectionScores = score.Sections

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Float64("score", score.Total).
		Float64("max", score.Max).
		Msg("Attempt submitted and graded")

	return s.buildResult(ctx, attempt)
}

// GetResult retrieves a graded attempt with pass/fail evaluated against
// the company cutoff.
func (s *AttemptService) GetResult(ctx context.Context, attemptID uuid.UUID, studentID int) (*model.AttemptResult, error) {
	attempt, err := s.GetOwned(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptStatusInProgress {
		return nil, ErrAttemptNotScored
	}
	return s.buildResult(ctx, attempt)
}

// ListByStudent retrieves a student's attempt history.
func (s *AttemptService) ListByStudent(ctx context.Context, studentID, page, perPage int) ([]model.Attempt, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	attempts, total, err := s.attemptRepo.ListByStudentPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if attempts == nil {
		attempts = []model.Attempt{}
	}
	return attempts, paginate(page, perPage, total), nil
}

func (s *AttemptService) buildResult(ctx context.Context, attempt *model.Attempt) (*model.AttemptResult, error) {
	result := &model.AttemptResult{Attempt: *attempt}

	test, err := s.testService.testRepo.GetByID(ctx, attempt.TestID)
	if err != nil {
		return result, nil
	}
	result.TestTitle = test.Title

	company, err := s.companyRepo.GetByID(ctx, test.CompanyID)
	if err != nil || attempt.TotalScore == nil || attempt.MaxScore == nil {
		return result, nil
	}
	result.Cutoff = company.CutoffPercentage
	result.Passed = exam.Passed(exam.AttemptScore{
		Total:    *attempt.TotalScore,
		Max:      *attempt.MaxScore,
		Sections: attempt.SectionScores,
	}, company.CutoffPercentage)
	return result, nil
}

// deadline derives the hard stop of an attempt from its start time and
// the cached paper's total duration.
func (s *AttemptService) deadline(ctx context.Context, attempt *model.Attempt) (time.Time, bool) {
	paper, err := s.testService.GetPaper(ctx, attempt.TestID)
	if err != nil || paper.TotalDuration <= 0 {
		return time.Time{}, false
	}
	return attempt.StartedAt.Add(time.Duration(paper.TotalDuration) * time.Minute), true
}

func (s *AttemptService) loadAutosaved(ctx context.Context, attemptID uuid.UUID) (map[string]model.AnswerKey, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.AttemptAnswersKey(attemptID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("load autosaved answers: %w", err)
	}

	saved := make(map[string]model.AnswerKey, len(raw))
	for qID, val := range raw {
		var sel model.AnswerKey
		if err := json.Unmarshal([]byte(val), &sel); err != nil {
			return nil, fmt.Errorf("unmarshal answer for %s: %w", qID, err)
		}
		saved[qID] = sel
	}
	return saved, nil
}
