package models

import (
	"strings"
	"time"
)

// Subject is owned by its ClassSubject and never resolved on its own.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassSubject is a class together with its ordered subject list.
type ClassSubject struct {
	ID          string    `json:"id" db:"id"`
	ClassName   string    `json:"className" db:"class_name"`
	Subjects    []Subject `json:"subjects" db:"subjects"`
	RelatedPdfs []string  `json:"relatedPdfs" db:"related_pdfs"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// FindSubject returns the index of the subject with the given id, or -1.
func (c *ClassSubject) FindSubject(subjectID string) int {
	for i, s := range c.Subjects {
		if s.ID == subjectID {
			return i
		}
	}
	return -1
}

// HasSubjectNamed reports whether another subject already uses name, ignoring case
// and surrounding whitespace.
// The subject with id exceptID is skipped.
func (c *ClassSubject) HasSubjectNamed(name, exceptID string) bool {
	name = strings.TrimSpace(name)
	for _, s := range c.Subjects {
		if s.ID != exceptID && strings.EqualFold(strings.TrimSpace(s.Name), name) {
			return true
		}
	}
	return false
}
