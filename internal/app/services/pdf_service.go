package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/filestorage"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// PdfService defines pdf operations
type PdfService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, form dto.UploadPdfForm) (*models.Pdf, error)
	IngestRemote(ctx context.Context, file *multipart.FileHeader, form dto.UploadPdfForm) (*models.Pdf, error)
	List(ctx context.Context) ([]*models.Pdf, error)
	Get(ctx context.Context, id string) (*models.Pdf, error)
	Update(ctx context.Context, id string, req dto.UpdatePdfRequest) (*models.Pdf, error)
	Delete(ctx context.Context, id string) error
}

type pdfServiceImpl struct {
	pdfs           PdfStore
	storage        filestorage.FileStorage
	staging        filestorage.FileStorage
	remote         filestorage.RemoteStorage
	maxUploadBytes int64
}

// NewPdfService creates a new pdf service. staging holds drive-bound copies and
// must not be a publicly served directory. remote may be nil when no drive is configured.
func NewPdfService(pdfs PdfStore, storage, staging filestorage.FileStorage, remote filestorage.RemoteStorage, maxUploadBytes int64) PdfService {
	return &pdfServiceImpl{
		pdfs:           pdfs,
		storage:        storage,
		staging:        staging,
		remote:         remote,
		maxUploadBytes: maxUploadBytes,
	}
}

func pdfNotFound() error {
	return apperrors.NewNotFoundError("PDF not found")
}

// checkUpload runs the PDF gate. Nothing has been written when it fails.
func (s *pdfServiceImpl) checkUpload(file *multipart.FileHeader, unsupportedMessage string) error {
	if file == nil {
		return apperrors.NewBadRequestError("Please upload a PDF file")
	}
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return apperrors.NewBadRequestError(fmt.Sprintf("File too large. Maximum size is %d MB", s.maxUploadBytes>>20))
	}
	if err := filestorage.CheckPDF(file); err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedFileType) {
			logger.Warn().Err(err).Str("filename", file.Filename).Msg("Rejected non-PDF upload")
			return apperrors.NewBadRequestError(unsupportedMessage)
		}
		return apperrors.NewInternalError("Server Error", err)
	}
	return nil
}

// Upload stores a pdf in the local upload directory
func (s *pdfServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader, form dto.UploadPdfForm) (*models.Pdf, error) {
	if err := s.checkUpload(file, "File type not supported. Please upload a PDF file."); err != nil {
		return nil, err
	}

	info, err := s.storage.SaveFile(file, "pdf")
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	if strings.TrimSpace(form.Title) == "" {
		s.discard(info.Path)
		return nil, apperrors.NewBadRequestError("Please provide a title")
	}

	pdf := &models.Pdf{
		ID:          newID(),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		FilePath:    info.Path,
		FileName:    info.Filename,
		Storage:     models.StorageLocal,
		FileSize:    info.FileSize,
		PageCount:   filestorage.PageCount(info.FullPath),
	}
	if err := s.pdfs.Create(ctx, pdf); err != nil {
		s.discard(info.Path)
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("pdfID", pdf.ID).Str("file", pdf.FileName).Int("pages", pdf.PageCount).Msg("PDF uploaded")
	return pdf, nil
}

// IngestRemote uploads a pdf to the configured drive through a temporary local copy
func (s *pdfServiceImpl) IngestRemote(ctx context.Context, file *multipart.FileHeader, form dto.UploadPdfForm) (*models.Pdf, error) {
	if err := s.checkUpload(file, "Only PDF files allowed!"); err != nil {
		return nil, err
	}
	if s.remote == nil {
		return nil, apperrors.NewInternalError("Remote storage is not configured", apperrors.ErrRemoteNotConfigured)
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, apperrors.NewBadRequestError("Please provide a title")
	}

	info, err := s.staging.SaveFile(file, "drive")
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	defer func() {
		if err := s.staging.DeleteFile(info.Path); err != nil {
			logger.Warn().Err(err).Str("path", info.FullPath).Msg("Failed to remove staged file")
		}
	}()

	pageCount := filestorage.PageCount(info.FullPath)

	remoteFile, err := s.remote.Upload(ctx, info.FullPath, file.Filename, filestorage.PDFMimeType)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to upload file to drive", err)
	}

	remoteID := remoteFile.ID
	pdf := &models.Pdf{
		ID:          newID(),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		FilePath:    remoteFile.WebViewLink,
		FileName:    remoteFile.Name,
		Storage:     models.StorageDrive,
		RemoteID:    &remoteID,
		FileSize:    info.FileSize,
		PageCount:   pageCount,
	}
	if err := s.pdfs.Create(ctx, pdf); err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("pdfID", pdf.ID).Str("remoteID", remoteID).Msg("PDF ingested to drive")
	return pdf, nil
}

func (s *pdfServiceImpl) discard(path string) {
	if err := s.storage.DeleteFile(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove uploaded file")
	}
}

// List returns every pdf, newest first
func (s *pdfServiceImpl) List(ctx context.Context) ([]*models.Pdf, error) {
	pdfs, err := s.pdfs.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return pdfs, nil
}

// Get returns one pdf
func (s *pdfServiceImpl) Get(ctx context.Context, id string) (*models.Pdf, error) {
	if !isValidID(id) {
		return nil, pdfNotFound()
	}
	pdf, err := s.pdfs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, pdfNotFound()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return pdf, nil
}

// Update changes title and, when given, description
func (s *pdfServiceImpl) Update(ctx context.Context, id string, req dto.UpdatePdfRequest) (*models.Pdf, error) {
	pdf, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewBadRequestError("Please provide a title")
	}

	pdf.Title = strings.TrimSpace(req.Title)
	if req.Description != nil {
		pdf.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.pdfs.Update(ctx, pdf); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, pdfNotFound()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return pdf, nil
}

// Delete removes the record and, for local pdfs, the backing file. Drive copies stay.
func (s *pdfServiceImpl) Delete(ctx context.Context, id string) error {
	pdf, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if pdf.Storage != models.StorageDrive && s.storage.Exists(pdf.FilePath) {
		if err := s.storage.DeleteFile(pdf.FilePath); err != nil {
			return apperrors.NewInternalError("Server Error", err)
		}
	}

	if err := s.pdfs.Delete(ctx, pdf.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return pdfNotFound()
		}
		return apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("pdfID", pdf.ID).Str("storage", string(pdf.Storage)).Msg("PDF deleted")
	return nil
}
