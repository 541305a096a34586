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

var adminColumns = []string{"id", "email", "password_hash", "created_at"}

// AdminRepository handles administrator database operations
type AdminRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(conn db.DBTX) *AdminRepository {
	return &AdminRepository{db: conn, sb: newStatementBuilder()}
}

func scanAdmin(row rowScanner) (*models.Admin, error) {
	admin := &models.Admin{}
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt); err != nil {
		return nil, err
	}
	return admin, nil
}

// Create inserts a new administrator. CreatedAt is filled in from the database.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	sql, args, err := r.sb.Insert("admins").
		Columns("id", "email", "password_hash").
		Values(admin.ID, admin.Email, admin.PasswordHash).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.CreatedAt); err != nil {
		if isDuplicateKeyError(err, ConstraintAdminEmail) {
			return ErrAlreadyExists
		}
		logger.Error().Err(err).Str("email", admin.Email).Msg("Error creating admin")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// FindByID retrieves an administrator by id
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByEmail retrieves an administrator by email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *AdminRepository) findOne(ctx context.Context, where squirrel.Eq) (*models.Admin, error) {
	sql, args, err := r.sb.Select(adminColumns...).From("admins").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find admin query: %w", err)
	}

	admin, err := scanAdmin(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error finding admin")
		return nil, fmt.Errorf("error finding admin: %w", err)
	}
	return admin, nil
}

// ExistsByEmail checks whether an administrator with the email exists
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("admins").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admin exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking admin email")
		return false, fmt.Errorf("error checking admin email: %w", err)
	}
	return exists, nil
}
