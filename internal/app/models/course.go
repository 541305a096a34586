package models

import "time"

// Course is a paid course offered by the center.
type Course struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Duration       string    `json:"duration" db:"duration"`
	Price          float64   `json:"price" db:"price"`
	ClassSubjectID *string   `json:"classSubjectId,omitempty" db:"class_subject_id"`
	RelatedPdfs    []string  `json:"relatedPdfs" db:"related_pdfs"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
