package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
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
	ErrTestNotGenerated     = errors.New("test has not been generated yet")
	ErrTestAlreadyGenerated = errors.New("test has already been generated")
	ErrBankExhausted        = errors.New("question banks cannot fill the requested pattern")
	ErrPaperNotCached       = errors.New("test paper not cached")
)

// MarkingEntry carries one delivered question's grading data, cached in
// Redis alongside the answer key so submissions grade without touching
// PostgreSQL.
type MarkingEntry struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Section       string    `json:"section"`
	Marks         float64   `json:"marks"`
	NegativeMarks float64   `json:"negative_marks"`
}

// TestService handles mock-test business logic and Redis caching.
type TestService struct {
	testRepo     *repository.TestRepository
	questionRepo *repository.QuestionRepository
	bankRepo     *repository.QuestionBankRepository
	companyRepo  *repository.CompanyRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(
	testRepo *repository.TestRepository,
	questionRepo *repository.QuestionRepository,
	bankRepo *repository.QuestionBankRepository,
	companyRepo *repository.CompanyRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *TestService {
	return &TestService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		bankRepo:     bankRepo,
		companyRepo:  companyRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "test_service").Logger(),
	}
}

// GetByID retrieves a test with derived totals and the owning company
// joined in.
func (s *TestService) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	test, err := s.testRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ctx, test)
	return test, nil
}

// List retrieves tests with pagination, optionally scoped to a company.
func (s *TestService) List(ctx context.Context, companyID uuid.UUID, page, perPage int) ([]model.Test, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	tests, total, err := s.testRepo.ListPaginated(ctx, companyID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if tests == nil {
		tests = []model.Test{}
	}
	for i := range tests {
		totals := exam.Totals(tests[i].Sections)
		tests[i].Totals = &totals
	}
	return tests, paginate(page, perPage, total), nil
}

// Create validates sections and the price rule, inheriting the company's
// default pattern when no sections are given, then inserts the test.
func (s *TestService) Create(ctx context.Context, test *model.Test) error {
	company, err := s.companyRepo.GetByID(ctx, test.CompanyID)
	if err != nil {
		return err
	}
	if len(test.Sections) == 0 {
		test.Sections = company.DefaultPattern
	}
	if err := exam.CheckSections(test.Sections); err != nil {
		return err
	}
	if err := exam.CheckPrice(test.Type, test.Price); err != nil {
		return err
	}
	if test.Type == model.TestTypeFree {
		test.Price = 0
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		return err
	}
	totals := exam.Totals(test.Sections)
	test.Totals = &totals
	return nil
}

// Update validates and overwrites a test. Changing sections of a generated
// test resets the generation flag since the stored questions no longer
// match the pattern.
func (s *TestService) Update(ctx context.Context, test *model.Test) error {
	existing, err := s.testRepo.GetByID(ctx, test.ID)
	if err != nil {
		return err
	}
	if err := exam.CheckSections(test.Sections); err != nil {
		return err
	}
	if err := exam.CheckPrice(test.Type, test.Price); err != nil {
		return err
	}
	if test.Type == model.TestTypeFree {
		test.Price = 0
	}
	if err := s.testRepo.Update(ctx, test); err != nil {
		return err
	}

	if existing.IsGenerated && !sectionsEqual(existing.Sections, test.Sections) {
		if err := s.questionRepo.DeleteByTest(ctx, test.ID); err != nil {
			return fmt.Errorf("reset questions: %w", err)
		}
		if err := s.testRepo.SetGenerated(ctx, test.ID, false); err != nil {
			return fmt.Errorf("reset generation flag: %w", err)
		}
		s.dropCache(ctx, test.ID)
		s.log.Info().Str("test_id", test.ID.String()).Msg("Sections changed, generation reset")
	}
	return nil
}

// Delete removes a test along with its questions and attempts.
func (s *TestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.testRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCache(ctx, id)
	return nil
}

// Generate fills every section of the test with questions sampled from
// the company's banks for that section name, flips the generation flag,
// and warms the paper cache. Each question inherits the section's marking.
func (s *TestService) Generate(ctx context.Context, testID uuid.UUID) (*model.Test, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.IsGenerated {
		return nil, ErrTestAlreadyGenerated
	}

	for _, section := range test.Sections {
		sampled, err := s.bankRepo.SampleForSection(ctx, test.CompanyID, section.SectionName, section.QuestionCount)
		if err != nil {
			return nil, fmt.Errorf("sample section %q: %w", section.SectionName, err)
		}
		if len(sampled) < section.QuestionCount {
			return nil, fmt.Errorf("%w: section %q has %d of %d questions",
				ErrBankExhausted, section.SectionName, len(sampled), section.QuestionCount)
		}

		for _, bq := range sampled {
			q := &model.Question{
				TestID:        testID,
				Section:       section.SectionName,
				QuestionType:  bq.QuestionType,
				QuestionText:  bq.QuestionText,
				Options:       bq.Options,
				CorrectAnswer: bq.CorrectAnswer,
				Marks:         section.MarksPerQ,
				NegativeMarks: section.NegativeMarking,
				Difficulty:    bq.Difficulty,
				Explanation:   bq.Explanation,
			}
			if err := s.questionRepo.Create(ctx, q); err != nil {
				return nil, fmt.Errorf("insert question: %w", err)
			}
		}
	}

	if err := s.testRepo.SetGenerated(ctx, testID, true); err != nil {
		return nil, fmt.Errorf("set generated: %w", err)
	}
	test.IsGenerated = true

	if err := s.WarmTestCache(ctx, test); err != nil {
		return nil, err
	}

	s.log.Info().Str("test_id", testID.String()).Msg("Test generated")
	s.decorate(ctx, test)
	return test, nil
}

// WarmTestCache loads a generated test's paper, answer key, and marking
// data from PostgreSQL into Redis.
func (s *TestService) WarmTestCache(ctx context.Context, test *model.Test) error {
	questions, err := s.questionRepo.ListByTest(ctx, test.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrTestNotGenerated
	}

	totals := exam.Totals(test.Sections)
	paper := model.TestPaper{
		TestID:        test.ID,
		Title:         test.Title,
		Sections:      test.Sections,
		TotalDuration: totals.TotalDuration,
	}
	marking := make([]MarkingEntry, 0, len(questions))
	answerKey := make(map[string]interface{}, len(questions))

	for _, q := range questions {
		valid := exam.FilterOptions(q.Options)
		paperOptions := make([]model.PaperOption, len(valid))
		for i, o := range valid {
			paperOptions[i] = model.PaperOption{
				Text:        o.Text,
				HTML:        o.HTML,
				ImageURL:    o.ImageURL,
				ImageWidth:  o.ImageWidth,
				ImageHeight: o.ImageHeight,
				ImageAlign:  o.ImageAlign,
			}
		}
		paper.Questions = append(paper.Questions, model.PaperQuestion{
			ID:            q.ID,
			Section:       q.Section,
			QuestionType:  q.QuestionType,
			QuestionText:  q.QuestionText,
			QuestionHTML:  q.QuestionHTML,
			Options:       paperOptions,
			Marks:         q.Marks,
			NegativeMarks: q.NegativeMarks,
			ImageURL:      q.ImageURL,
			ImageWidth:    q.ImageWidth,
			ImageHeight:   q.ImageHeight,
			ImageAlign:    q.ImageAlign,
		})
		marking = append(marking, MarkingEntry{
			QuestionID:    q.ID,
			Section:       q.Section,
			Marks:         q.Marks,
			NegativeMarks: q.NegativeMarks,
		})

		keyJSON, err := json.Marshal(q.CorrectAnswer)
		if err != nil {
			return fmt.Errorf("marshal answer key: %w", err)
		}
		answerKey[q.ID.String()] = keyJSON
	}

	paperJSON, err := json.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshal paper: %w", err)
	}
	markingJSON, err := json.Marshal(marking)
	if err != nil {
		return fmt.Errorf("marshal marking: %w", err)
	}

	testID := test.ID.String()
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.TestPaperKey(testID), paperJSON, 0)
	pipe.Set(ctx, config.CacheKey.TestMarkingKey(testID), markingJSON, 0)
	pipe.Del(ctx, config.CacheKey.TestAnswerKeyKey(testID))
	pipe.HSet(ctx, config.CacheKey.TestAnswerKeyKey(testID), answerKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().Str("test_id", testID).Int("questions", len(questions)).Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads every generated test into Redis on startup.
func (s *TestService) PrewarmAllCaches(ctx context.Context) error {
	tests, _, err := s.testRepo.ListPaginated(ctx, uuid.Nil, 10000, 0)
	if err != nil {
		return fmt.Errorf("list tests: %w", err)
	}

	warmed := 0
	for i := range tests {
		if !tests[i].IsGenerated {
			continue
		}
		if err := s.WarmTestCache(ctx, &tests[i]); err != nil {
			s.log.Warn().Err(err).Str("test_id", tests[i].ID.String()).Msg("Failed to warm test, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().Int("warmed", warmed).Msg("Prewarming complete")
	return nil
}

// GetPaper retrieves the cached student paper from Redis.
func (s *TestService) GetPaper(ctx context.Context, testID uuid.UUID) (*model.TestPaper, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.TestPaperKey(testID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPaperNotCached
		}
		return nil, fmt.Errorf("get paper: %w", err)
	}

	var paper model.TestPaper
	if err := json.Unmarshal(data, &paper); err != nil {
		return nil, fmt.Errorf("unmarshal paper: %w", err)
	}
	return &paper, nil
}

// GetAnswerKeys retrieves the cached answer keys for instant grading.
func (s *TestService) GetAnswerKeys(ctx context.Context, testID uuid.UUID) (map[string]model.AnswerKey, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.TestAnswerKeyKey(testID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("get answer keys: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrPaperNotCached
	}

	keys := make(map[string]model.AnswerKey, len(raw))
	for qID, val := range raw {
		var key model.AnswerKey
		if err := json.Unmarshal([]byte(val), &key); err != nil {
			return nil, fmt.Errorf("unmarshal key for %s: %w", qID, err)
		}
		keys[qID] = key
	}
	return keys, nil
}

// GetMarking retrieves the cached marking entries in delivery order.
func (s *TestService) GetMarking(ctx context.Context, testID uuid.UUID) ([]MarkingEntry, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.TestMarkingKey(testID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPaperNotCached
		}
		return nil, fmt.Errorf("get marking: %w", err)
	}

	var marking []MarkingEntry
	if err := json.Unmarshal(data, &marking); err != nil {
		return nil, fmt.Errorf("unmarshal marking: %w", err)
	}
	return marking, nil
}

func (s *TestService) decorate(ctx context.Context, test *model.Test) {
	totals := exam.Totals(test.Sections)
	test.Totals = &totals
	if company, err := s.companyRepo.GetByID(ctx, test.CompanyID); err == nil {
		test.Company = company
	}
}

func (s *TestService) dropCache(ctx context.Context, testID uuid.UUID) {
	id := testID.String()
	s.rdb.Del(ctx,
		config.CacheKey.TestPaperKey(id),
		config.CacheKey.TestMarkingKey(id),
		config.CacheKey.TestAnswerKeyKey(id))
}

func sectionsEqual(a, b []model.Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
