package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/services"
	"github.com/yigit/coachcenter/internal/middleware"
)

// ClassSubjectController handles classes and their subjects
type ClassSubjectController struct {
	classSubjectService services.ClassSubjectService
}

// NewClassSubjectController creates a new ClassSubjectController
func NewClassSubjectController(classSubjectService services.ClassSubjectService) *ClassSubjectController {
	return &ClassSubjectController{classSubjectService: classSubjectService}
}

// CreateClassSubject creates a class with its initial subjects
// @Summary Create a class
// @Tags class-subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassSubjectRequest true "Class with subjects"
// @Success 201 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Class already exists"
// @Router /class-subjects [post]
func (cc *ClassSubjectController) CreateClassSubject(c *gin.Context) {
	var req dto.CreateClassSubjectRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	cs, err := cc.classSubjectService.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(cs))
}

// GetAllClassSubjects lists every class ordered by name
// @Summary List classes
// @Tags class-subjects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ClassSubject}
// @Router /class-subjects [get]
func (cc *ClassSubjectController) GetAllClassSubjects(c *gin.Context) {
	classes, err := cc.classSubjectService.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(classes, len(classes)))
}

// GetClassSubject returns one class
// @Summary Get a class
// @Tags class-subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class-subjects/{id} [get]
func (cc *ClassSubjectController) GetClassSubject(c *gin.Context) {
	cs, err := cc.classSubjectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(cs))
}

// UpdateClassSubject renames a class
// @Summary Rename a class
// @Tags class-subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.UpdateClassSubjectRequest true "New class name"
// @Success 200 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Class name already exists"
// @Router /class-subjects/{id} [put]
func (cc *ClassSubjectController) UpdateClassSubject(c *gin.Context) {
	var req dto.UpdateClassSubjectRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	cs, err := cc.classSubjectService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(cs))
}

// DeleteClassSubject deletes a class that no course uses
// @Summary Delete a class
// @Tags class-subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Class is used in courses"
// @Router /class-subjects/{id} [delete]
func (cc *ClassSubjectController) DeleteClassSubject(c *gin.Context) {
	if err := cc.classSubjectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Class and all its subjects deleted successfully"))
}

// AddSubject appends a subject to a class
// @Summary Add a subject
// @Tags class-subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.SubjectRequest true "Subject name"
// @Success 200 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /class-subjects/{id}/subjects [post]
func (cc *ClassSubjectController) AddSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	cs, err := cc.classSubjectService.AddSubject(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(cs))
}

// UpdateSubject renames a subject of a class
// @Summary Rename a subject
// @Tags class-subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param subjectId path string true "Subject ID"
// @Param request body dto.SubjectRequest true "Subject name"
// @Success 200 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /class-subjects/{id}/subjects/{subjectId} [put]
func (cc *ClassSubjectController) UpdateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	cs, err := cc.classSubjectService.UpdateSubject(c.Request.Context(), c.Param("id"), c.Param("subjectId"), req.Name)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(cs))
}

// DeleteSubject removes a subject from a class
// @Summary Delete a subject
// @Tags class-subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=models.ClassSubject}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Subject is used in courses"
// @Router /class-subjects/{id}/subjects/{subjectId} [delete]
func (cc *ClassSubjectController) DeleteSubject(c *gin.Context) {
	cs, err := cc.classSubjectService.DeleteSubject(c.Request.Context(), c.Param("id"), c.Param("subjectId"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(cs))
}
