package repository

import (
	"context"
	"errors"
	"strconv"

	"casedesk-backend/models"
)

// ErrCourseTitleTaken is returned when a course with the same title already exists
var ErrCourseTitleTaken = errors.New("course title already exists")

// CourseRepository handles storage of courses. Ids are sequential from 1.
type CourseRepository struct {
	courses *table[models.Course]
	lastID  int
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{courses: newTable[models.Course]()}
}

// Create assigns the next id and inserts the course.
// The title check, id assignment and insert happen under one lock.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.courses.mu.Lock()
	defer r.courses.mu.Unlock()
	for _, c := range r.courses.rows {
		if c.Title == course.Title {
			return ErrCourseTitleTaken
		}
	}
	r.lastID++
	course.ID = r.lastID
	r.courses.putLocked(strconv.Itoa(course.ID), *course)
	return nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*models.Course, bool) {
	c, ok := r.courses.get(strconv.Itoa(id))
	if !ok {
		return nil, false
	}
	return &c, true
}

// List returns every course in creation order
func (r *CourseRepository) List(ctx context.Context) []models.Course {
	return r.courses.filter(nil)
}
