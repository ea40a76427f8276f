package model

import (
	"time"

	"github.com/google/uuid"
)

// Course groups a set of recordings. Paid courses lock their recordings
// behind enrollment.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        TestType  `json:"type"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// RecordingCount is derived by COUNT, never stored.
	RecordingCount int `json:"recording_count"`
}

// Recording is one video lecture of a course. VideoURL is omitted from
// responses when the requesting student has no access.
type Recording struct {
	ID              uuid.UUID `json:"id"`
	CourseID        uuid.UUID `json:"course_id"`
	Title           string    `json:"title"`
	VideoURL        string    `json:"video_url,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Sequence        int       `json:"sequence"`
	Locked          bool      `json:"locked"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCourseRequest is the payload for creating a new course.
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=255"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Type        string  `json:"type" binding:"required,oneof=free paid"`
	Price       float64 `json:"price" binding:"min=0"`
}

// UpdateCourseRequest is the payload for updating an existing course.
type UpdateCourseRequest struct {
	Title       string   `json:"title" binding:"omitempty,min=3,max=255"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Type        string   `json:"type" binding:"omitempty,oneof=free paid"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
}

// CreateRecordingRequest is the payload for adding a recording to a course.
type CreateRecordingRequest struct {
	Title           string `json:"title" binding:"required,min=3,max=255"`
	VideoURL        string `json:"video_url" binding:"required,url,max=1000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Sequence        int    `json:"sequence" binding:"min=0"`
}
