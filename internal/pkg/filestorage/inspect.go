package filestorage

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// PDFMimeType is the only content type accepted for study materials.
const PDFMimeType = "application/pdf"

// CheckPDF accepts the upload only when both the declared content type and the
// sniffed content are PDF. Nothing is written to disk.
func CheckPDF(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return fmt.Errorf("%w: no file", apperrors.ErrUnsupportedFileType)
	}

	declared := strings.ToLower(strings.TrimSpace(fileHeader.Header.Get("Content-Type")))
	if mt, _, found := strings.Cut(declared, ";"); found {
		declared = strings.TrimSpace(mt)
	}
	if declared != PDFMimeType {
		return fmt.Errorf("%w: declared %q", apperrors.ErrUnsupportedFileType, declared)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to sniff uploaded file: %w", err)
	}
	if !detected.Is(PDFMimeType) {
		return fmt.Errorf("%w: detected %q", apperrors.ErrUnsupportedFileType, detected.String())
	}
	return nil
}

// PageCount returns the number of pages of a PDF on disk, or 0 when the document
// cannot be parsed.
func PageCount(fullPath string) (pages int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Str("path", fullPath).Msg("PDF parser panicked, page count unknown")
			pages = 0
		}
	}()

	f, reader, err := pdf.Open(fullPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", fullPath).Msg("Could not read PDF page count")
		return 0
	}
	defer f.Close()

	return reader.NumPage()
}
