package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/pkg/helpers"
)

// Services defined in this package:
// - AuthService: registration, login and the current administrator
// - ClassSubjectService: classes and their embedded subjects
// - CourseService: courses with resolved class and pdf relations
// - PdfService: local uploads and remote drive ingestion

// AdminStore persists administrators
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PdfStore persists pdf records
type PdfStore interface {
	Create(ctx context.Context, pdf *models.Pdf) error
	FindAll(ctx context.Context) ([]*models.Pdf, error)
	FindByID(ctx context.Context, id string) (*models.Pdf, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Pdf, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
	Update(ctx context.Context, pdf *models.Pdf) error
	Delete(ctx context.Context, id string) error
}

// ClassSubjectStore persists classes together with their subjects
type ClassSubjectStore interface {
	Create(ctx context.Context, cs *models.ClassSubject) error
	FindAll(ctx context.Context) ([]*models.ClassSubject, error)
	FindByID(ctx context.Context, id string) (*models.ClassSubject, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.ClassSubject, error)
	ExistsByClassName(ctx context.Context, className, excludeID string) (bool, error)
	Update(ctx context.Context, cs *models.ClassSubject) error
	Delete(ctx context.Context, id string) error
}

// CourseStore persists courses
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	FindAll(ctx context.Context) ([]*models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByClassSubject(ctx context.Context, classSubjectID string) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs bearer tokens for administrators
type TokenIssuer interface {
	Issue(adminID string) (string, time.Time, error)
}

// isValidID reports whether id can name a stored record. Anything that is not a UUID never resolves.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func newID() string {
	return uuid.New().String()
}

// pdfReferencesExist reports whether every id in ids names an existing pdf.
// Duplicates are counted once.
func pdfReferencesExist(ctx context.Context, pdfs PdfStore, ids []string) (bool, error) {
	distinct := helpers.DedupeStrings(ids)
	for _, id := range distinct {
		if !isValidID(id) {
			return false, nil
		}
	}

	count, err := pdfs.CountByIDs(ctx, distinct)
	if err != nil {
		return false, err
	}
	return count == len(distinct), nil
}
