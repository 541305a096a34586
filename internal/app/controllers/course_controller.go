package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/services"
	"github.com/yigit/coachcenter/internal/middleware"
)

// CourseController handles course operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse creates a course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Please provide all required fields"
// @Router /courses [post]
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	course, err := cc.courseService.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(course))
}

// GetAllCourses lists courses, newest first, with relations resolved
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Router /courses [get]
func (cc *CourseController) GetAllCourses(c *gin.Context) {
	courses, err := cc.courseService.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(courses, len(courses)))
}

// GetCourse returns one course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (cc *CourseController) GetCourse(c *gin.Context) {
	course, err := cc.courseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(course))
}

// UpdateCourse overwrites a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	course, err := cc.courseService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(course))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	if err := cc.courseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}
