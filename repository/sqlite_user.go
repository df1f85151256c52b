package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/rowgroup"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor — interface döner (Dependency Inversion).
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, emailVerified, image)
		VALUES (COALESCE(NULLIF(?, ''), lower(hex(randomblob(8)))), ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.EmailVerified,
		user.Image,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, emailVerified, image, created_at, updated_at
		FROM users WHERE id = ?`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.EmailVerified,
		&user.Image, &user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetWithClients, kullanıcıyı ve client'larını tek LEFT JOIN ile getirir.
//
// Kolon sözleşmesi: client tarafındaki HER kolon client_ prefix'iyle
// alias'lanır. SELECT u.*, c.* yazıp kolon adlarının çakışmasına izin
// vermek c.name'in u.name'i gölgelemesine yol açardı — alias'lar sayesinde
// hangi değerin kime ait olduğu satır içinde her zaman nettir.
//
// Satırlar rowgroup.ScanRows ile untyped Row'lara okunur ve
// rowgroup.BuildUserWithClients ile materialize edilir.
func (r *sqliteUserRepo) GetWithClients(ctx context.Context, userID string) (*rowgroup.UserProfile, bool, error) {
	query := `
		SELECT
			u.id, u.name, u.email, u.emailVerified, u.image,
			c.id         AS client_id,
			c.name       AS client_name,
			c.user_id    AS client_user_id,
			c.created_at AS client_created_at,
			c.updated_at AS client_updated_at
		FROM users u
		LEFT JOIN clients c ON u.id = c.user_id
		WHERE u.id = ?
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query user with clients: %w", err)
	}
	defer rows.Close()

	joined, err := rowgroup.ScanRows(rows)
	if err != nil {
		return nil, false, err
	}

	user, found := rowgroup.BuildUserWithClients(joined)
	return user, found, nil
}

func (r *sqliteUserRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// isUniqueViolation, hatanın SQLite UNIQUE constraint ihlali olup olmadığını
// kontrol eder. modernc.org/sqlite typed error export etmediği için
// mesaj içeriğine bakılır.
func isUniqueViolation(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
