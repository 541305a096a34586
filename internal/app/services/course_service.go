package services

import (
	"context"
	"errors"

	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/helpers"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// CourseService defines course operations
type CourseService interface {
	Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	List(ctx context.Context) ([]*dto.CourseResponse, error)
	Get(ctx context.Context, id string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseServiceImpl struct {
	courses CourseStore
	classes ClassSubjectStore
	pdfs    PdfStore
}

// NewCourseService creates a new course service
func NewCourseService(courses CourseStore, classes ClassSubjectStore, pdfs PdfStore) CourseService {
	return &courseServiceImpl{courses: courses, classes: classes, pdfs: pdfs}
}

func courseNotFound() error {
	return apperrors.NewNotFoundError("Course not found")
}

func missingString(v *string) bool {
	return v == nil || helpers.IsBlank(*v)
}

// Create stores a course. Relations are only set through Update.
func (s *courseServiceImpl) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if missingString(req.Title) || missingString(req.Description) || missingString(req.Duration) || req.Price == nil {
		return nil, apperrors.NewBadRequestError("Please provide all required fields")
	}

	course := &models.Course{
		ID:          newID(),
		Title:       *req.Title,
		Description: *req.Description,
		Duration:    *req.Duration,
		Price:       *req.Price,
		RelatedPdfs: []string{},
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return course, nil
}

// List returns every course, newest first, with relations resolved
func (s *courseServiceImpl) List(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return s.resolve(ctx, courses)
}

// Get returns one course with relations resolved
func (s *courseServiceImpl) Get(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, course)
}

func (s *courseServiceImpl) load(ctx context.Context, id string) (*models.Course, error) {
	if !isValidID(id) {
		return nil, courseNotFound()
	}
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return course, nil
}

// Update overwrites the primary fields. Omitted relations keep their previous values.
func (s *courseServiceImpl) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title == nil || req.Description == nil || req.Duration == nil || req.Price == nil {
		return nil, apperrors.NewBadRequestError("Please provide all required fields")
	}

	classSubjectID := course.ClassSubjectID
	if req.ClassSubjectID != nil && *req.ClassSubjectID != "" {
		if err := s.ensureClassSubject(ctx, *req.ClassSubjectID); err != nil {
			return nil, err
		}
		v := *req.ClassSubjectID
		classSubjectID = &v
	}

	relatedPdfs := course.RelatedPdfs
	if req.RelatedPdfs != nil {
		if len(req.RelatedPdfs) > 0 {
			ok, err := pdfReferencesExist(ctx, s.pdfs, req.RelatedPdfs)
			if err != nil {
				return nil, apperrors.NewInternalError("Server Error", err)
			}
			if !ok {
				return nil, apperrors.NewBadRequestError("One or more related PDFs do not exist")
			}
		}
		relatedPdfs = req.RelatedPdfs
	}

	course.Title = *req.Title
	course.Description = *req.Description
	course.Duration = *req.Duration
	course.Price = *req.Price
	course.ClassSubjectID = classSubjectID
	course.RelatedPdfs = relatedPdfs

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, courseNotFound()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	return s.resolveOne(ctx, course)
}

func (s *courseServiceImpl) ensureClassSubject(ctx context.Context, id string) error {
	notFound := apperrors.NewNotFoundError("Class/Subject not found")
	if !isValidID(id) {
		return notFound
	}
	if _, err := s.classes.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound
		}
		return apperrors.NewInternalError("Server Error", err)
	}
	return nil
}

// Delete removes a course. Nothing references courses, so there is no reference check.
func (s *courseServiceImpl) Delete(ctx context.Context, id string) error {
	course, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, course.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return courseNotFound()
		}
		return apperrors.NewInternalError("Server Error", err)
	}

	logger.Info().Str("courseID", course.ID).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) resolveOne(ctx context.Context, course *models.Course) (*dto.CourseResponse, error) {
	resolved, err := s.resolve(ctx, []*models.Course{course})
	if err != nil {
		return nil, err
	}
	return resolved[0], nil
}

// resolve loads the referenced classes and pdfs in two batched queries.
// References that no longer resolve are left out.
func (s *courseServiceImpl) resolve(ctx context.Context, courses []*models.Course) ([]*dto.CourseResponse, error) {
	var classIDs, pdfIDs []string
	for _, c := range courses {
		if c.ClassSubjectID != nil && isValidID(*c.ClassSubjectID) {
			classIDs = append(classIDs, *c.ClassSubjectID)
		}
		for _, id := range c.RelatedPdfs {
			if isValidID(id) {
				pdfIDs = append(pdfIDs, id)
			}
		}
	}

	classes, err := s.classes.FindByIDs(ctx, helpers.DedupeStrings(classIDs))
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	pdfs, err := s.pdfs.FindByIDs(ctx, helpers.DedupeStrings(pdfIDs))
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	classByID := make(map[string]*models.ClassSubject, len(classes))
	for _, cs := range classes {
		classByID[cs.ID] = cs
	}
	pdfByID := make(map[string]*models.Pdf, len(pdfs))
	for _, p := range pdfs {
		pdfByID[p.ID] = p
	}

	out := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp := &dto.CourseResponse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Duration:    c.Duration,
			Price:       c.Price,
			RelatedPdfs: []dto.PdfRef{},
			CreatedAt:   c.CreatedAt,
		}
		if c.ClassSubjectID != nil {
			if cs, ok := classByID[*c.ClassSubjectID]; ok {
				resp.ClassSubject = &dto.ClassSubjectRef{ID: cs.ID, ClassName: cs.ClassName, Subjects: cs.Subjects}
			}
		}
		for _, id := range c.RelatedPdfs {
			if p, ok := pdfByID[id]; ok {
				resp.RelatedPdfs = append(resp.RelatedPdfs, dto.PdfRef{ID: p.ID, Title: p.Title, FileName: p.FileName})
			}
		}
		out = append(out, resp)
	}
	return out, nil
}
