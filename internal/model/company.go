package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is an organizational grouping (e.g., a hiring company or exam
// board) that tests and question banks belong to. Its default pattern is a
// section template new tests may inherit.
type Company struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"`
	DefaultPattern   []Section `json:"default_pattern"`
	CutoffPercentage *float64  `json:"cutoff_percentage,omitempty"`
	PassingCriteria  string    `json:"passing_criteria,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateCompanyRequest is the payload for creating a new company.
type CreateCompanyRequest struct {
	Name             string    `json:"name" binding:"required,min=2,max=255"`
	Category         string    `json:"category" binding:"omitempty,max=100"`
	Difficulty       string    `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	DefaultPattern   []Section `json:"default_pattern" binding:"omitempty,dive"`
	CutoffPercentage *float64  `json:"cutoff_percentage" binding:"omitempty,min=0,max=100"`
	PassingCriteria  string    `json:"passing_criteria" binding:"omitempty,max=500"`
}

// UpdateCompanyRequest is the payload for updating an existing company.
type UpdateCompanyRequest struct {
	Name             string    `json:"name" binding:"omitempty,min=2,max=255"`
	Category         string    `json:"category" binding:"omitempty,max=100"`
	Difficulty       string    `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	DefaultPattern   []Section `json:"default_pattern" binding:"omitempty,dive"`
	CutoffPercentage *float64  `json:"cutoff_percentage" binding:"omitempty,min=0,max=100"`
	PassingCriteria  string    `json:"passing_criteria" binding:"omitempty,max=500"`
}
