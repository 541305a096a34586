package dto

import (
	"time"

	"github.com/yigit/coachcenter/internal/app/models"
)

// CreateCourseRequest is the body of POST /api/courses.
// Pointer fields tell a missing field apart from a zero value.
type CreateCourseRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255" example:"Physics Crash Course"`
	Description *string  `json:"description" example:"Eight weeks of mechanics"`
	Duration    *string  `json:"duration" binding:"omitempty,max=255" example:"8 weeks"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0" example:"199.99"`
}

// UpdateCourseRequest is the body of PUT /api/courses/:id
type UpdateCourseRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=255"`
	Description    *string  `json:"description"`
	Duration       *string  `json:"duration" binding:"omitempty,max=255"`
	Price          *float64 `json:"price" binding:"omitempty,gte=0"`
	RelatedPdfs    []string `json:"relatedPdfs"`
	ClassSubjectID *string  `json:"classSubjectId"`
}

// ClassSubjectRef is the resolved class shown on a course
type ClassSubjectRef struct {
	ID        string           `json:"id"`
	ClassName string           `json:"className"`
	Subjects  []models.Subject `json:"subjects"`
}

// PdfRef is the resolved pdf shown on a course
type PdfRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FileName string `json:"fileName"`
}

// CourseResponse is a course with its relations resolved for display
type CourseResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Duration     string           `json:"duration"`
	Price        float64          `json:"price"`
	ClassSubject *ClassSubjectRef `json:"classSubject"`
	RelatedPdfs  []PdfRef         `json:"relatedPdfs"`
	CreatedAt    time.Time        `json:"createdAt"`
}
