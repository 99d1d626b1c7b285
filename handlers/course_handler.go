package handlers

import (
	"net/http"
	"strconv"

	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// CourseHandler serves the public course catalogue
type CourseHandler struct {
	courses *service.CourseService
}

func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// CreateCourseRequest represents the request body for POST /courses
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	list, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.CreateCourse(c.Request.Context(), service.CreateCourseRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// GetCourse handles GET /courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		validationFailed(c, map[string]string{"id": "must be an integer"})
		return
	}
	course, err := h.courses.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
