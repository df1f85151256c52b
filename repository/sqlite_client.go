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

// sqliteClientRepo, ClientRepository interface'inin SQLite implementasyonu.
type sqliteClientRepo struct {
	db database.TxQuerier
}

// NewSQLiteClientRepo, constructor — interface döner.
func NewSQLiteClientRepo(db database.TxQuerier) ClientRepository {
	return &sqliteClientRepo{db: db}
}

func (r *sqliteClientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, user_id, server_id)
		VALUES (COALESCE(NULLIF(?, ''), lower(hex(randomblob(8)))), ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		client.ID, client.Name, client.UserID, client.ServerID,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *sqliteClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `
		SELECT id, name, user_id, server_id, created_at, updated_at
		FROM clients WHERE id = ?`

	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.UserID, &client.ServerID,
		&client.CreatedAt, &client.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

func (r *sqliteClientRepo) ListByUser(ctx context.Context, userID string) ([]models.Client, error) {
	query := `
		SELECT id, name, user_id, server_id, created_at, updated_at
		FROM clients WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.ServerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

func (r *sqliteClientRepo) AssignServer(ctx context.Context, clientID, serverID string) error {
	query := `
		UPDATE clients
		SET server_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, serverID, clientID)
	if err != nil {
		return fmt.Errorf("failed to assign server: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check assign result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteClientRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}
