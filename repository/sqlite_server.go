package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/rowgroup"
)

// sqliteServerRepo, ServerRepository interface'inin SQLite implementasyonu.
type sqliteServerRepo struct {
	db database.TxQuerier
}

// NewSQLiteServerRepo, constructor — interface döner.
func NewSQLiteServerRepo(db database.TxQuerier) ServerRepository {
	return &sqliteServerRepo{db: db}
}

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.ClientServer) error {
	query := `
		INSERT INTO client_servers (id, cluster_name)
		VALUES (COALESCE(NULLIF(?, ''), lower(hex(randomblob(8)))), ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, server.ID, server.ClusterName).
		Scan(&server.ID, &server.CreatedAt, &server.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client server: %w", err)
	}
	return nil
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, id string) (*models.ClientServer, error) {
	query := `
		SELECT id, cluster_name, created_at, updated_at
		FROM client_servers WHERE id = ?`

	server := &models.ClientServer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&server.ID, &server.ClusterName, &server.CreatedAt, &server.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client server: %w", err)
	}

	return server, nil
}

// ListByCluster, cluster'daki sunucuları nested client listeleriyle döner.
//
// LEFT JOIN her sunucu için client başına bir satır üretir; client'sız
// sunucular client kolonları NULL olan tek satır döner. Satırlar
// rowgroup.ScanRows ile okunur, rowgroup.GroupServersByCluster ile
// server id bazında dedupe edilip gruplanır.
//
// ORDER BY, hem sunucu first-seen sırasını hem de client'ların satır
// sırasını deterministik yapar — materializer input sırasını korur.
func (r *sqliteServerRepo) ListByCluster(ctx context.Context, clusterName string) ([]rowgroup.ServerGroup, error) {
	query := `
		SELECT
			cs.id, cs.created_at, cs.updated_at, cs.cluster_name,
			c.id         AS client_id,
			c.name       AS client_name,
			c.user_id    AS client_user_id,
			c.created_at AS client_created_at,
			c.updated_at AS client_updated_at
		FROM client_servers cs
		LEFT JOIN clients c ON cs.id = c.server_id
		WHERE cs.cluster_name = ?
		ORDER BY cs.created_at ASC, c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, clusterName)
	if err != nil {
		return nil, fmt.Errorf("failed to query servers on cluster: %w", err)
	}
	defer rows.Close()

	joined, err := rowgroup.ScanRows(rows)
	if err != nil {
		return nil, err
	}

	return rowgroup.GroupServersByCluster(joined), nil
}

func (r *sqliteServerRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_servers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count servers: %w", err)
	}
	return count, nil
}
