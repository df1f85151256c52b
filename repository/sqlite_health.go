package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
	"github.com/google/uuid"
)

// sqliteHealthRepo, HealthHistoryRepository interface'inin SQLite implementasyonu.
type sqliteHealthRepo struct {
	db database.TxQuerier
}

// NewSQLiteHealthRepo, constructor — interface döner.
func NewSQLiteHealthRepo(db database.TxQuerier) HealthHistoryRepository {
	return &sqliteHealthRepo{db: db}
}

func (r *sqliteHealthRepo) Insert(ctx context.Context, sample *models.HealthSample) error {
	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}

	query := `
		INSERT INTO health_samples (id, client_id, container_id, state, healthy, restarted)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING sampled_at`

	err := r.db.QueryRowContext(ctx, query,
		sample.ID, sample.ClientID, sample.ContainerID,
		sample.State, sample.Healthy, sample.Restarted,
	).Scan(&sample.SampledAt)

	if err != nil {
		return fmt.Errorf("failed to insert health sample: %w", err)
	}
	return nil
}

func (r *sqliteHealthRepo) ListByClient(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error) {
	query := `
		SELECT id, client_id, container_id, state, healthy, restarted, sampled_at
		FROM health_samples
		WHERE client_id = ?
		ORDER BY sampled_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list health samples: %w", err)
	}
	defer rows.Close()

	var samples []models.HealthSample
	for rows.Next() {
		var s models.HealthSample
		if err := rows.Scan(&s.ID, &s.ClientID, &s.ContainerID, &s.State, &s.Healthy, &s.Restarted, &s.SampledAt); err != nil {
			return nil, fmt.Errorf("failed to scan health sample: %w", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health samples: %w", err)
	}

	return samples, nil
}

func (r *sqliteHealthRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM health_samples WHERE sampled_at < ?`, cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune health samples: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read prune result: %w", err)
	}
	return deleted, nil
}
