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

var pdfColumns = []string{
	"id", "title", "description", "file_path", "file_name",
	"storage", "remote_id", "file_size", "page_count", "created_at",
}

// PdfRepository handles pdf database operations
type PdfRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewPdfRepository creates a new PdfRepository
func NewPdfRepository(conn db.DBTX) *PdfRepository {
	return &PdfRepository{db: conn, sb: newStatementBuilder()}
}

func scanPdf(row rowScanner) (*models.Pdf, error) {
	p := &models.Pdf{}
	var storage string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.FilePath, &p.FileName,
		&storage, &p.RemoteID, &p.FileSize, &p.PageCount, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Storage = models.StorageKind(storage)
	return p, nil
}

// Create inserts a new pdf record
func (r *PdfRepository) Create(ctx context.Context, pdf *models.Pdf) error {
	sql, args, err := r.sb.Insert("pdfs").
		Columns("id", "title", "description", "file_path", "file_name", "storage", "remote_id", "file_size", "page_count").
		Values(pdf.ID, pdf.Title, pdf.Description, pdf.FilePath, pdf.FileName, string(pdf.Storage), pdf.RemoteID, pdf.FileSize, pdf.PageCount).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create pdf query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&pdf.CreatedAt); err != nil {
		logger.Error().Err(err).Str("title", pdf.Title).Msg("Error creating pdf")
		return fmt.Errorf("error creating pdf: %w", err)
	}
	return nil
}

// FindAll returns every pdf, newest first
func (r *PdfRepository) FindAll(ctx context.Context) ([]*models.Pdf, error) {
	return r.list(ctx, r.sb.Select(pdfColumns...).From("pdfs").OrderBy("created_at DESC"))
}

// FindByIDs returns the pdfs whose id is in ids. Unknown ids are skipped.
func (r *PdfRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Pdf, error) {
	if len(ids) == 0 {
		return []*models.Pdf{}, nil
	}
	return r.list(ctx, r.sb.Select(pdfColumns...).From("pdfs").Where(squirrel.Eq{"id": ids}))
}

func (r *PdfRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Pdf, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pdfs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying pdfs")
		return nil, fmt.Errorf("error querying pdfs: %w", err)
	}
	defer rows.Close()

	pdfs := []*models.Pdf{}
	for rows.Next() {
		p, err := scanPdf(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pdf row: %w", err)
		}
		pdfs = append(pdfs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pdf rows: %w", err)
	}
	return pdfs, nil
}

// FindByID retrieves a pdf by id
func (r *PdfRepository) FindByID(ctx context.Context, id string) (*models.Pdf, error) {
	sql, args, err := r.sb.Select(pdfColumns...).From("pdfs").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pdf query: %w", err)
	}

	p, err := scanPdf(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("pdfID", id).Msg("Error scanning pdf row")
		return nil, fmt.Errorf("error getting pdf by ID: %w", err)
	}
	return p, nil
}

// CountByIDs counts how many of the given ids exist. Callers pass distinct ids.
func (r *PdfRepository) CountByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Select("COUNT(*)").From("pdfs").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count pdfs query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting pdfs")
		return 0, fmt.Errorf("error counting pdfs: %w", err)
	}
	return count, nil
}

// Update overwrites title and description
func (r *PdfRepository) Update(ctx context.Context, pdf *models.Pdf) error {
	sql, args, err := r.sb.Update("pdfs").
		SetMap(map[string]interface{}{
			"title":       pdf.Title,
			"description": pdf.Description,
		}).
		Where(squirrel.Eq{"id": pdf.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update pdf query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("pdfID", pdf.ID).Msg("Error updating pdf")
		return fmt.Errorf("error updating pdf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a pdf record
func (r *PdfRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, r.sb, "pdfs", id)
}

func deleteByID(ctx context.Context, conn db.DBTX, sb squirrel.StatementBuilderType, table, id string) error {
	sql, args, err := sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", table, err)
	}

	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Str("id", id).Msg("Error deleting row")
		return fmt.Errorf("error deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
