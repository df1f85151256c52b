package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
)

// sqliteOperatorRepo, OperatorRepository interface'inin SQLite implementasyonu.
type sqliteOperatorRepo struct {
	db database.TxQuerier
}

// NewSQLiteOperatorRepo, constructor — interface döner.
func NewSQLiteOperatorRepo(db database.TxQuerier) OperatorRepository {
	return &sqliteOperatorRepo{db: db}
}

func (r *sqliteOperatorRepo) Create(ctx context.Context, op *models.Operator) error {
	query := `
		INSERT INTO operators (id, username, password_hash)
		VALUES (COALESCE(NULLIF(?, ''), lower(hex(randomblob(8)))), ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, op.ID, op.Username, op.PasswordHash).
		Scan(&op.ID, &op.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

func (r *sqliteOperatorRepo) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM operators WHERE username = ?`

	op := &models.Operator{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	return op, nil
}
