package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/db"
	"github.com/yigit/coachcenter/internal/pkg/dberrors"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

var classSubjectColumns = []string{"id", "class_name", "subjects", "related_pdfs", "created_at"}

// ClassSubjectRepository handles class subject database operations.
// Subjects are stored as a JSONB array on the class row and always written as a whole.
type ClassSubjectRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewClassSubjectRepository creates a new ClassSubjectRepository
func NewClassSubjectRepository(conn db.DBTX) *ClassSubjectRepository {
	return &ClassSubjectRepository{db: conn, sb: newStatementBuilder()}
}

func scanClassSubject(row rowScanner) (*models.ClassSubject, error) {
	cs := &models.ClassSubject{}
	var subjects []byte
	if err := row.Scan(&cs.ID, &cs.ClassName, &subjects, &cs.RelatedPdfs, &cs.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subjects, &cs.Subjects); err != nil {
		return nil, fmt.Errorf("invalid subjects payload: %w", err)
	}
	if cs.Subjects == nil {
		cs.Subjects = []models.Subject{}
	}
	if cs.RelatedPdfs == nil {
		cs.RelatedPdfs = []string{}
	}
	return cs, nil
}

func encodeSubjects(subjects []models.Subject) ([]byte, error) {
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return json.Marshal(subjects)
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// Create inserts a class with its subjects
func (r *ClassSubjectRepository) Create(ctx context.Context, cs *models.ClassSubject) error {
	subjects, err := encodeSubjects(cs.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects: %w", err)
	}

	sql, args, err := r.sb.Insert("class_subjects").
		Columns("id", "class_name", "subjects", "related_pdfs").
		Values(cs.ID, cs.ClassName, subjects, nonNilIDs(cs.RelatedPdfs)).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class subject query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cs.CreatedAt); err != nil {
		if isDuplicateKeyError(err, ConstraintClassSubjectName) {
			return ErrAlreadyExists
		}
		logger.Error().Err(err).Str("className", cs.ClassName).Msg("Error creating class subject")
		return fmt.Errorf("error creating class subject: %w", err)
	}
	return nil
}

// FindAll returns every class ordered by name
func (r *ClassSubjectRepository) FindAll(ctx context.Context) ([]*models.ClassSubject, error) {
	return r.list(ctx, r.sb.Select(classSubjectColumns...).From("class_subjects").OrderBy("class_name ASC"))
}

// FindByIDs returns the classes whose id is in ids
func (r *ClassSubjectRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.ClassSubject, error) {
	if len(ids) == 0 {
		return []*models.ClassSubject{}, nil
	}
	return r.list(ctx, r.sb.Select(classSubjectColumns...).From("class_subjects").Where(squirrel.Eq{"id": ids}))
}

func (r *ClassSubjectRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.ClassSubject, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list class subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying class subjects")
		return nil, fmt.Errorf("error querying class subjects: %w", err)
	}
	defer rows.Close()

	classes := []*models.ClassSubject{}
	for rows.Next() {
		cs, err := scanClassSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class subject row: %w", err)
		}
		classes = append(classes, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class subject rows: %w", err)
	}
	return classes, nil
}

// FindByID retrieves a class by id
func (r *ClassSubjectRepository) FindByID(ctx context.Context, id string) (*models.ClassSubject, error) {
	sql, args, err := r.sb.Select(classSubjectColumns...).From("class_subjects").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class subject query: %w", err)
	}

	cs, err := scanClassSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("classSubjectID", id).Msg("Error scanning class subject row")
		return nil, fmt.Errorf("error getting class subject by ID: %w", err)
	}
	return cs, nil
}

// ExistsByClassName checks whether a class other than excludeID already uses className
func (r *ClassSubjectRepository) ExistsByClassName(ctx context.Context, className, excludeID string) (bool, error) {
	where := squirrel.And{squirrel.Eq{"class_name": className}}
	if excludeID != "" {
		where = append(where, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := r.sb.Select("1").
		From("class_subjects").
		Where(where).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build class name exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("className", className).Msg("Error checking class name")
		return false, fmt.Errorf("error checking class name: %w", err)
	}
	return exists, nil
}

// Update writes the whole aggregate: name, subjects and related pdfs
func (r *ClassSubjectRepository) Update(ctx context.Context, cs *models.ClassSubject) error {
	subjects, err := encodeSubjects(cs.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects: %w", err)
	}

	sql, args, err := r.sb.Update("class_subjects").
		SetMap(map[string]interface{}{
			"class_name":   cs.ClassName,
			"subjects":     subjects,
			"related_pdfs": nonNilIDs(cs.RelatedPdfs),
		}).
		Where(squirrel.Eq{"id": cs.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err, ConstraintClassSubjectName) {
			return ErrAlreadyExists
		}
		logger.Error().Err(err).Str("classSubjectID", cs.ID).Msg("Error updating class subject")
		return fmt.Errorf("error updating class subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a class and its subjects
func (r *ClassSubjectRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, r.sb, "class_subjects", id)
}
