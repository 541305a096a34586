package dto

// SubjectInput names one subject of a new class
type SubjectInput struct {
	Name string `json:"name" binding:"max=255" example:"Physics"`
}

// CreateClassSubjectRequest is the body of POST /api/class-subjects
type CreateClassSubjectRequest struct {
	ClassName   string         `json:"className" binding:"max=255" example:"Grade 10"`
	Subjects    []SubjectInput `json:"subjects" binding:"dive"`
	RelatedPdfs []string       `json:"relatedPdfs,omitempty"`
}

// UpdateClassSubjectRequest renames a class
type UpdateClassSubjectRequest struct {
	ClassName string `json:"className" binding:"max=255" example:"Grade 11"`
}

// SubjectRequest adds or renames a subject
type SubjectRequest struct {
	Name string `json:"name" binding:"max=255" example:"Chemistry"`
}
