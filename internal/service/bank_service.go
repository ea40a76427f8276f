package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/ingest"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
)

// ErrEmptyUpload means no row of the upload survived parsing.
var ErrEmptyUpload = errors.New("upload contains no valid questions")

// UploadReport summarizes one bank upload.
type UploadReport struct {
	Bank     *model.QuestionBank `json:"bank"`
	Inserted int                 `json:"inserted"`
	Errors   []ingest.RowError   `json:"errors,omitempty"`
}

// BankService handles question-bank authoring and ingestion.
type BankService struct {
	bankRepo    *repository.QuestionBankRepository
	companyRepo *repository.CompanyRepository
	log         zerolog.Logger
}

// NewBankService creates a new BankService.
func NewBankService(bankRepo *repository.QuestionBankRepository, companyRepo *repository.CompanyRepository, log zerolog.Logger) *BankService {
	return &BankService{
		bankRepo:    bankRepo,
		companyRepo: companyRepo,
		log:         log.With().Str("component", "bank_service").Logger(),
	}
}

// GetByID retrieves a bank.
func (s *BankService) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionBank, error) {
	return s.bankRepo.GetByID(ctx, id)
}

// ListByCompany retrieves a company's banks.
func (s *BankService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.QuestionBank, error) {
	banks, err := s.bankRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []model.QuestionBank{}
	}
	return banks, nil
}

// ListQuestions retrieves every question of a bank.
func (s *BankService) ListQuestions(ctx context.Context, bankID uuid.UUID) ([]model.BankQuestion, error) {
	return s.bankRepo.ListQuestions(ctx, bankID)
}

// CreateFromUpload parses the uploaded file, creates the bank, and
// inserts every valid row. Parsing is best-effort; failed rows come back
// in the report. An upload with zero valid rows is rejected and no bank
// is created.
func (s *BankService) CreateFromUpload(ctx context.Context, req *model.CreateBankRequest, filename string, file io.Reader) (*UploadReport, error) {
	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	result, err := ingest.ParseFile(filename, file)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return &UploadReport{Errors: result.Errors}, ErrEmptyUpload
	}

	bank := &model.QuestionBank{
		CompanyID:   req.CompanyID,
		Section:     req.Section,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}

	inserted, err := s.bankRepo.InsertQuestions(ctx, bank.ID, result.Questions)
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}
	bank.TotalQuestions = inserted

	s.log.Info().
		Str("bank_id", bank.ID.String()).
		Int("inserted", inserted).
		Int("failed", len(result.Errors)).
		Msg("Bank created from upload")

	return &UploadReport{Bank: bank, Inserted: inserted, Errors: result.Errors}, nil
}

// AppendUpload parses another file into an existing bank.
func (s *BankService) AppendUpload(ctx context.Context, bankID uuid.UUID, filename string, file io.Reader) (*UploadReport, error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return nil, err
	}

	result, err := ingest.ParseFile(filename, file)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return &UploadReport{Bank: bank, Errors: result.Errors}, ErrEmptyUpload
	}

	inserted, err := s.bankRepo.InsertQuestions(ctx, bankID, result.Questions)
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}
	bank.TotalQuestions += inserted

	return &UploadReport{Bank: bank, Inserted: inserted, Errors: result.Errors}, nil
}

// Delete removes a bank and its questions.
func (s *BankService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bankRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.bankRepo.Delete(ctx, id)
}
