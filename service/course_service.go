package service

import (
	"context"
	"errors"

	"casedesk-backend/logger"
	"casedesk-backend/models"
	"casedesk-backend/repository"
)

// CourseService handles the public course catalogue
type CourseService struct {
	courses *repository.CourseRepository
}

// CourseServiceOption is a functional option for CourseService
type CourseServiceOption func(*CourseService)

func WithCourseRepository(repo *repository.CourseRepository) CourseServiceOption {
	return func(s *CourseService) {
		s.courses = repo
	}
}

// NewCourseService creates a new course service
func NewCourseService(opts ...CourseServiceOption) *CourseService {
	s := &CourseService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCourseRequest represents a new catalogue entry
type CreateCourseRequest struct {
	Title       string
	Description string
}

func (s *CourseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	if s.courses == nil {
		return nil, errors.New("course repository not set")
	}
	return s.courses.List(ctx), nil
}

// CreateCourse adds a course; a duplicate title is rejected
func (s *CourseService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if s.courses == nil {
		return nil, errors.New("course repository not set")
	}
	course := &models.Course{Title: req.Title, Description: req.Description}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrCourseTitleTaken) {
			return nil, ErrCourseTitleTaken
		}
		return nil, err
	}
	logger.From(ctx).Info("course created", logger.Op("courses.create"), logger.CourseID(course.ID))
	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	if s.courses == nil {
		return nil, errors.New("course repository not set")
	}
	c, ok := s.courses.GetByID(ctx, id)
	if !ok {
		return nil, ErrCourseNotFound
	}
	return c, nil
}
