package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coachcenter/internal/db"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/dberrors"
)

// Common repository errors
var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = apperrors.ErrNotFound
	// ErrAlreadyExists is returned when a unique constraint rejects a write.
	ErrAlreadyExists = errors.New("resource already exists")
)

// Unique constraints that services translate into conflicts.
const (
	ConstraintAdminEmail       = "admins_email_key"
	ConstraintClassSubjectName = "class_subjects_class_name_key"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func isDuplicateKeyError(err error, constraint string) bool {
	return dberrors.IsDuplicateConstraintError(err, constraint)
}

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository        *AdminRepository
	PdfRepository          *PdfRepository
	ClassSubjectRepository *ClassSubjectRepository
	CourseRepository       *CourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		AdminRepository:        NewAdminRepository(conn),
		PdfRepository:          NewPdfRepository(conn),
		ClassSubjectRepository: NewClassSubjectRepository(conn),
		CourseRepository:       NewCourseRepository(conn),
	}
}
