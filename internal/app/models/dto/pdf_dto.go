package dto

// UploadPdfForm carries the text fields sent next to an uploaded file
type UploadPdfForm struct {
	Title       string `form:"title" binding:"max=255" example:"Algebra worksheet"`
	Description string `form:"description" example:"Chapter 3 exercises"`
}

// UpdatePdfRequest is the body of PUT /api/pdfs/:id. An omitted description is kept.
type UpdatePdfRequest struct {
	Title       string  `json:"title" binding:"max=255" example:"Algebra worksheet v2"`
	Description *string `json:"description"`
}
