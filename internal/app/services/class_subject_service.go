package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// ClassSubjectService defines operations on classes and their subjects
type ClassSubjectService interface {
	Create(ctx context.Context, req dto.CreateClassSubjectRequest) (*models.ClassSubject, error)
	List(ctx context.Context) ([]*models.ClassSubject, error)
	Get(ctx context.Context, id string) (*models.ClassSubject, error)
	Update(ctx context.Context, id string, req dto.UpdateClassSubjectRequest) (*models.ClassSubject, error)
	AddSubject(ctx context.Context, classID, name string) (*models.ClassSubject, error)
	UpdateSubject(ctx context.Context, classID, subjectID, name string) (*models.ClassSubject, error)
	DeleteSubject(ctx context.Context, classID, subjectID string) (*models.ClassSubject, error)
	Delete(ctx context.Context, classID string) error
}

type classSubjectServiceImpl struct {
	classes ClassSubjectStore
	courses CourseStore
	pdfs    PdfStore
}

// NewClassSubjectService creates a new class subject service
func NewClassSubjectService(classes ClassSubjectStore, courses CourseStore, pdfs PdfStore) ClassSubjectService {
	return &classSubjectServiceImpl{classes: classes, courses: courses, pdfs: pdfs}
}

func classNotFound() error {
	return apperrors.NewNotFoundError("Class not found")
}

func subjectNotFound() error {
	return apperrors.NewNotFoundError("Subject not found")
}

// Create stores a class with at least one subject
func (s *classSubjectServiceImpl) Create(ctx context.Context, req dto.CreateClassSubjectRequest) (*models.ClassSubject, error) {
	className := strings.TrimSpace(req.ClassName)
	if className == "" || len(req.Subjects) == 0 {
		return nil, apperrors.NewBadRequestError("Please provide a class name and at least one subject")
	}

	cs := &models.ClassSubject{
		ID:        newID(),
		ClassName: className,
		Subjects:  make([]models.Subject, 0, len(req.Subjects)),
	}
	for _, subject := range req.Subjects {
		name := strings.TrimSpace(subject.Name)
		if name == "" {
			return nil, apperrors.NewBadRequestError("Subject names cannot be empty")
		}
		if cs.HasSubjectNamed(name, "") {
			return nil, apperrors.NewConflictError("Subject already exists in this class")
		}
		cs.Subjects = append(cs.Subjects, models.Subject{ID: newID(), Name: name})
	}

	exists, err := s.classes.ExistsByClassName(ctx, className, "")
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Class already exists")
	}

	if len(req.RelatedPdfs) > 0 {
		ok, err := pdfReferencesExist(ctx, s.pdfs, req.RelatedPdfs)
		if err != nil {
			return nil, apperrors.NewInternalError("Server Error", err)
		}
		if !ok {
			return nil, apperrors.NewBadRequestError("One or more related PDFs do not exist")
		}
	}

	cs.RelatedPdfs = req.RelatedPdfs
	if cs.RelatedPdfs == nil {
		cs.RelatedPdfs = []string{}
	}

	if err := s.classes.Create(ctx, cs); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperrors.NewConflictError("Class already exists")
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("classSubjectID", cs.ID).Str("className", cs.ClassName).Int("subjects", len(cs.Subjects)).Msg("Class created")
	return cs, nil
}

// List returns every class ordered by name
func (s *classSubjectServiceImpl) List(ctx context.Context) ([]*models.ClassSubject, error) {
	classes, err := s.classes.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return classes, nil
}

// Get returns one class
func (s *classSubjectServiceImpl) Get(ctx context.Context, id string) (*models.ClassSubject, error) {
	return s.load(ctx, id)
}

func (s *classSubjectServiceImpl) load(ctx context.Context, id string) (*models.ClassSubject, error) {
	if !isValidID(id) {
		return nil, classNotFound()
	}
	cs, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, classNotFound()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return cs, nil
}

func (s *classSubjectServiceImpl) save(ctx context.Context, cs *models.ClassSubject, conflictMessage string) error {
	if err := s.classes.Update(ctx, cs); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return classNotFound()
		case errors.Is(err, repositories.ErrAlreadyExists):
			return apperrors.NewConflictError(conflictMessage)
		}
		return apperrors.NewInternalError("Server Error", err)
	}
	return nil
}

// Update renames a class; its subjects are untouched
func (s *classSubjectServiceImpl) Update(ctx context.Context, id string, req dto.UpdateClassSubjectRequest) (*models.ClassSubject, error) {
	cs, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	className := strings.TrimSpace(req.ClassName)
	if className == "" {
		return nil, apperrors.NewBadRequestError("Please provide a class name")
	}

	if className != cs.ClassName {
		exists, err := s.classes.ExistsByClassName(ctx, className, cs.ID)
		if err != nil {
			return nil, apperrors.NewInternalError("Server Error", err)
		}
		if exists {
			return nil, apperrors.NewConflictError("Class name already exists")
		}
	}

	cs.ClassName = className
	if err := s.save(ctx, cs, "Class name already exists"); err != nil {
		return nil, err
	}
	return cs, nil
}

// AddSubject appends a subject whose name is new to the class, ignoring case
func (s *classSubjectServiceImpl) AddSubject(ctx context.Context, classID, name string) (*models.ClassSubject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Please provide a subject name")
	}

	cs, err := s.load(ctx, classID)
	if err != nil {
		return nil, err
	}

	if cs.HasSubjectNamed(name, "") {
		return nil, apperrors.NewConflictError("Subject already exists in this class")
	}

	cs.Subjects = append(cs.Subjects, models.Subject{ID: newID(), Name: name})
	if err := s.save(ctx, cs, "Class name already exists"); err != nil {
		return nil, err
	}
	return cs, nil
}

// UpdateSubject renames one subject of a class
func (s *classSubjectServiceImpl) UpdateSubject(ctx context.Context, classID, subjectID, name string) (*models.ClassSubject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Please provide a subject name")
	}

	cs, err := s.load(ctx, classID)
	if err != nil {
		return nil, err
	}

	idx := cs.FindSubject(subjectID)
	if idx < 0 {
		return nil, subjectNotFound()
	}

	if cs.HasSubjectNamed(name, subjectID) {
		return nil, apperrors.NewConflictError("Subject name already exists in this class")
	}

	cs.Subjects[idx].Name = name
	if err := s.save(ctx, cs, "Class name already exists"); err != nil {
		return nil, err
	}
	return cs, nil
}

// DeleteSubject removes a subject unless a course uses its class
func (s *classSubjectServiceImpl) DeleteSubject(ctx context.Context, classID, subjectID string) (*models.ClassSubject, error) {
	cs, err := s.load(ctx, classID)
	if err != nil {
		return nil, err
	}

	idx := cs.FindSubject(subjectID)
	if idx < 0 {
		return nil, subjectNotFound()
	}

	// Courses reference the class, not the subject, so any course on the class blocks the delete.
	inUse, err := s.courses.ExistsByClassSubject(ctx, cs.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	if inUse {
		return nil, apperrors.NewConflictError("Subject is used in courses and cannot be deleted")
	}

	cs.Subjects = append(cs.Subjects[:idx], cs.Subjects[idx+1:]...)
	if err := s.save(ctx, cs, "Class name already exists"); err != nil {
		return nil, err
	}
	return cs, nil
}

// Delete removes a class unless a course references it
func (s *classSubjectServiceImpl) Delete(ctx context.Context, classID string) error {
	cs, err := s.load(ctx, classID)
	if err != nil {
		return err
	}

	inUse, err := s.courses.ExistsByClassSubject(ctx, cs.ID)
	if err != nil {
		return apperrors.NewInternalError("Server Error", err)
	}
	if inUse {
		return apperrors.NewConflictError("Class is used in courses and cannot be deleted")
	}

	if err := s.classes.Delete(ctx, cs.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return classNotFound()
		}
		return apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("classSubjectID", cs.ID).Msg("Class deleted")
	return nil
}
