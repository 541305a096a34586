package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/db"
	"github.com/yigit/coachcenter/internal/pkg/dberrors"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "title", "description", "duration", "price", "class_subject_id", "related_pdfs", "created_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{db: conn, sb: newStatementBuilder()}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Duration, &c.Price, &c.ClassSubjectID, &c.RelatedPdfs, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.RelatedPdfs == nil {
		c.RelatedPdfs = []string{}
	}
	return c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("id", "title", "description", "duration", "price", "class_subject_id", "related_pdfs").
		Values(course.ID, course.Title, course.Description, course.Duration, course.Price, course.ClassSubjectID, nonNilIDs(course.RelatedPdfs)).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.CreatedAt); err != nil {
		logger.Error().Err(err).Str("title", course.Title).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// FindAll returns every course, newest first
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// FindByID retrieves a course by id
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return c, nil
}

// ExistsByClassSubject checks whether any course references the class
func (r *CourseRepository) ExistsByClassSubject(ctx context.Context, classSubjectID string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"class_subject_id": classSubjectID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course reference query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("classSubjectID", classSubjectID).Msg("Error checking course references")
		return false, fmt.Errorf("error checking course references: %w", err)
	}
	return exists, nil
}

// Update overwrites every mutable field
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":            course.Title,
			"description":      course.Description,
			"duration":         course.Duration,
			"price":            course.Price,
			"class_subject_id": course.ClassSubjectID,
			"related_pdfs":     nonNilIDs(course.RelatedPdfs),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, r.sb, "courses", id)
}
