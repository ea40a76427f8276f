package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/exam"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
)

// QuestionService handles authoring of test questions.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	testService  *TestService
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, testService *TestService) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, testService: testService}
}

// ListByTest retrieves all questions of a test.
func (s *QuestionService) ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	return s.questionRepo.ListByTest(ctx, testID)
}

// GetByID retrieves a question.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Save validates the editor state, derives the answer key from the
// is_correct flags, and creates or updates the question. A zero id
// means create. The cached paper is refreshed when the test is live.
func (s *QuestionService) Save(ctx context.Context, testID, questionID uuid.UUID, req *model.SaveQuestionRequest) (*model.Question, error) {
	test, err := s.testService.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	validOptions, key, err := exam.CheckQuestionSave(req, test.Sections)
	if err != nil {
		return nil, err
	}
	if err := exam.CheckImageDims(req.ImageWidth, req.ImageHeight); err != nil {
		return nil, err
	}

	difficulty := model.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	q := &model.Question{
		ID:              questionID,
		TestID:          testID,
		Section:         req.Section,
		QuestionType:    model.QuestionType(req.QuestionType),
		QuestionText:    req.QuestionText,
		QuestionHTML:    req.QuestionHTML,
		Options:         validOptions,
		CorrectAnswer:   key,
		Marks:           req.Marks,
		NegativeMarks:   req.NegativeMarks,
		Difficulty:      difficulty,
		ImageURL:        req.ImageURL,
		ImageWidth:      req.ImageWidth,
		ImageHeight:     req.ImageHeight,
		ImageAlign:      model.ImageAlign(req.ImageAlign),
		Explanation:     req.Explanation,
		ExplanationHTML: req.ExplanationHTML,
	}

	if questionID == uuid.Nil {
		err = s.questionRepo.Create(ctx, q)
	} else {
		existing, getErr := s.questionRepo.GetByID(ctx, questionID)
		if getErr != nil {
			return nil, getErr
		}
		q.CreatedAt = existing.CreatedAt
		err = s.questionRepo.Update(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	if test.IsGenerated {
		if err := s.testService.WarmTestCache(ctx, test); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Delete removes a question and refreshes the cache when the test is live.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}

	test, err := s.testService.testRepo.GetByID(ctx, q.TestID)
	if err != nil {
		return err
	}
	if test.IsGenerated {
		return s.testService.WarmTestCache(ctx, test)
	}
	return nil
}
