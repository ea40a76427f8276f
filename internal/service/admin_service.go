package service

import (
	"context"

	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
)

// AdminService handles admin accounts.
type AdminService struct {
	adminRepo *repository.AdminRepository
	auth      *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository, auth *AuthService) *AdminService {
	return &AdminService{adminRepo: adminRepo, auth: auth}
}

// Login verifies credentials and issues an admin token.
func (s *AdminService) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateAdminToken(admin.ID, admin.Role)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// GetByID retrieves an admin profile.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}
