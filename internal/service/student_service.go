package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/mailer"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// StudentService handles student accounts.
type StudentService struct {
	studentRepo *repository.StudentRepository
	auth        *AuthService
	mail        *mailer.Mailer
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, auth *AuthService, mail *mailer.Mailer, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		auth:        auth,
		mail:        mail,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// Register creates a student account and logs it in.
func (s *StudentService) Register(ctx context.Context, req *model.RegisterStudentRequest) (*model.Student, string, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	student := &model.Student{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateStudentToken(ctx, student.ID)
	if err != nil {
		return nil, "", err
	}

	s.mail.Send(mailer.Message{
		To:       student.Email,
		Template: "welcome",
		Data:     map[string]any{"name": student.Name},
	})

	s.log.Info().Int("student_id", student.ID).Msg("Student registered")
	return student, token, nil
}

// Login verifies credentials and issues a session token.
func (s *StudentService) Login(ctx context.Context, email, password string) (*model.Student, string, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(student.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateStudentToken(ctx, student.ID)
	if err != nil {
		return nil, "", err
	}
	return student, token, nil
}

// GetByID retrieves a student profile.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves students for the admin panel, with optional search.
func (s *StudentService) List(ctx context.Context, search string, page, perPage int) ([]model.Student, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	students, total, err := s.studentRepo.ListPaginated(ctx, search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, paginate(page, perPage, total), nil
}
