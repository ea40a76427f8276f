package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/exam"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// CourseService handles course and recording business logic.
type CourseService struct {
	courseRepo     *repository.CourseRepository
	enrollmentRepo *repository.EnrollmentRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo}
}

// GetByID retrieves a course.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves courses with pagination.
func (s *CourseService) List(ctx context.Context, page, perPage int) ([]model.Course, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	courses, total, err := s.courseRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, paginate(page, perPage, total), nil
}

// Create validates the price rule and inserts the course.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	if err := exam.CheckPrice(course.Type, course.Price); err != nil {
		return err
	}
	if course.Type == model.TestTypeFree {
		course.Price = 0
	}
	return s.courseRepo.Create(ctx, course)
}

// Update validates and overwrites a course.
func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	if _, err := s.courseRepo.GetByID(ctx, course.ID); err != nil {
		return err
	}
	if err := exam.CheckPrice(course.Type, course.Price); err != nil {
		return err
	}
	if course.Type == model.TestTypeFree {
		course.Price = 0
	}
	return s.courseRepo.Update(ctx, course)
}

// Delete removes a course and its recordings.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

// ListRecordings retrieves a course's recordings. For a paid course the
// video URL is stripped from every entry unless the student is enrolled;
// studentID 0 means an anonymous caller.
func (s *CourseService) ListRecordings(ctx context.Context, courseID uuid.UUID, studentID int) ([]model.Recording, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	recordings, err := s.courseRepo.ListRecordings(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if recordings == nil {
		recordings = []model.Recording{}
	}

	unlocked := course.Type == model.TestTypeFree
	if !unlocked && studentID > 0 {
		unlocked, err = s.enrollmentRepo.Exists(ctx, studentID, model.ItemTypeCourse, courseID)
		if err != nil {
			return nil, err
		}
	}
	if !unlocked {
		for i := range recordings {
			recordings[i].VideoURL = ""
			recordings[i].Locked = true
		}
	}
	return recordings, nil
}

// CreateRecording appends a recording to a course.
func (s *CourseService) CreateRecording(ctx context.Context, rec *model.Recording) error {
	if _, err := s.courseRepo.GetByID(ctx, rec.CourseID); err != nil {
		return err
	}
	return s.courseRepo.CreateRecording(ctx, rec)
}

// DeleteRecording removes one recording.
func (s *CourseService) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	return s.courseRepo.DeleteRecording(ctx, id)
}
