package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/services"
	"github.com/yigit/coachcenter/internal/middleware"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// Multipart field names of the two upload routes.
const (
	pdfFormField   = "pdf"
	driveFormField = "file"
)

// PdfController handles pdf uploads and their metadata
type PdfController struct {
	pdfService services.PdfService
	logger     zerolog.Logger
}

// NewPdfController creates a new PdfController
func NewPdfController(pdfService services.PdfService) *PdfController {
	return &PdfController{
		pdfService: pdfService,
		logger:     logger.WithField("controller", "pdf"),
	}
}

// readUpload returns the uploaded file of field together with the text fields.
// A missing file yields a nil header so the service can report it.
func readUpload(c *gin.Context, field string) (*multipart.FileHeader, dto.UploadPdfForm, bool) {
	var form dto.UploadPdfForm

	file, err := c.FormFile(field)
	if err != nil {
		return nil, form, true
	}

	if !middleware.BindForm(c, &form) {
		return nil, form, false
	}
	return file, form, true
}

// UploadPdf stores an uploaded pdf on local disk
// @Summary Upload a PDF
// @Tags pdfs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param pdf formData file true "PDF file (max 10 MB)"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} dto.APIResponse{data=models.Pdf}
// @Failure 400 {object} dto.ErrorResponse
// @Router /pdfs [post]
func (pc *PdfController) UploadPdf(c *gin.Context) {
	file, form, ok := readUpload(c, pdfFormField)
	if !ok {
		return
	}

	pdf, err := pc.pdfService.Upload(c.Request.Context(), file, form)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(pdf))
}

// UploadToDrive stores an uploaded pdf on Google Drive
// @Summary Upload a PDF to Google Drive
// @Tags pdfs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file (max 10 MB)"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 200 {object} dto.APIResponse{data=models.Pdf}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Drive not configured or upload failed"
// @Router /haha/upload [post]
func (pc *PdfController) UploadToDrive(c *gin.Context) {
	file, form, ok := readUpload(c, driveFormField)
	if !ok {
		return
	}

	pdf, err := pc.pdfService.IngestRemote(c.Request.Context(), file, form)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	pc.logger.Info().Str("pdfID", pdf.ID).Str("ip", c.ClientIP()).Msg("PDF received for drive")
	c.JSON(http.StatusOK, dto.NewDataResponse(pdf))
}

// GetAllPdfs lists pdfs, newest first
// @Summary List PDFs
// @Tags pdfs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Pdf}
// @Router /pdfs [get]
func (pc *PdfController) GetAllPdfs(c *gin.Context) {
	pdfs, err := pc.pdfService.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(pdfs, len(pdfs)))
}

// GetPdf returns one pdf
// @Summary Get a PDF
// @Tags pdfs
// @Produce json
// @Security BearerAuth
// @Param id path string true "PDF ID"
// @Success 200 {object} dto.APIResponse{data=models.Pdf}
// @Failure 404 {object} dto.ErrorResponse "PDF not found"
// @Router /pdfs/{id} [get]
func (pc *PdfController) GetPdf(c *gin.Context) {
	pdf, err := pc.pdfService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(pdf))
}

// UpdatePdf changes the title and description of a pdf
// @Summary Update a PDF
// @Tags pdfs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "PDF ID"
// @Param request body dto.UpdatePdfRequest true "Title and description"
// @Success 200 {object} dto.APIResponse{data=models.Pdf}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pdfs/{id} [put]
func (pc *PdfController) UpdatePdf(c *gin.Context) {
	var req dto.UpdatePdfRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	pdf, err := pc.pdfService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(pdf))
}

// DeletePdf deletes a pdf and its local file
// @Summary Delete a PDF
// @Tags pdfs
// @Produce json
// @Security BearerAuth
// @Param id path string true "PDF ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /pdfs/{id} [delete]
func (pc *PdfController) DeletePdf(c *gin.Context) {
	if err := pc.pdfService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("PDF deleted successfully"))
}
