package model

import (
	"time"

	"github.com/google/uuid"
)

// TestType distinguishes free tests from purchase-gated ones.
type TestType string

const (
	TestTypeFree TestType = "free"
	TestTypePaid TestType = "paid"
)

// Test is a collection of sections belonging to a company. A test is not
// attemptable by students until it has been generated (its sections filled
// with questions from the company's banks).
type Test struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        TestType  `json:"type"`
	Price       float64   `json:"price"`
	Sections    []Section `json:"sections"`
	IsGenerated bool      `json:"is_generated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Totals are derived from Sections on read, never stored.
	Totals *SectionTotals `json:"totals,omitempty"`
	// Company is an optional joined lookup; CompanyID is always the
	// canonical reference.
	Company *Company `json:"company,omitempty"`
}

// CreateTestRequest is the payload for creating a new test.
// Sections may be omitted to inherit the company's default pattern.
type CreateTestRequest struct {
	CompanyID   uuid.UUID `json:"company_id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Type        string    `json:"type" binding:"required,oneof=free paid"`
	Price       float64   `json:"price" binding:"min=0"`
	Sections    []Section `json:"sections" binding:"omitempty,dive"`
}

// UpdateTestRequest is the payload for updating an existing test.
type UpdateTestRequest struct {
	Title       string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Type        string    `json:"type" binding:"omitempty,oneof=free paid"`
	Price       *float64  `json:"price" binding:"omitempty,min=0"`
	Sections    []Section `json:"sections" binding:"omitempty,dive"`
}
