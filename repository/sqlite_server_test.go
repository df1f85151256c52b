package repository

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
)

// newTestDB, embedded migration'larla in-memory SQLite açar.
// Her test kendi izole DB'sini alır — dosya sistemine dokunulmaz.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to sub migrations fs: %v", err)
	}

	db, err := database.New(":memory:", migrations)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// seedFleet, iki sunuculu bir cluster kurar: s1'de iki client, s2 client'sız.
// created_at değerleri sıralamayı deterministik yapmak için elle verilir.
func seedFleet(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`, []any{"u1", "Ayşe", "ayse@example.com"}},
		{`INSERT INTO client_servers (id, cluster_name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			[]any{"s1", "prod", "2026-01-01 10:00:00", "2026-01-01 10:00:00"}},
		{`INSERT INTO client_servers (id, cluster_name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			[]any{"s2", "prod", "2026-01-01 11:00:00", "2026-01-01 11:00:00"}},
		{`INSERT INTO client_servers (id, cluster_name) VALUES (?, ?)`, []any{"s3", "staging"}},
		{`INSERT INTO clients (id, name, user_id, server_id, created_at) VALUES (?, ?, ?, ?, ?)`,
			[]any{"k1", "client-one", "u1", "s1", "2026-01-02 10:00:00"}},
		{`INSERT INTO clients (id, name, user_id, server_id, created_at) VALUES (?, ?, ?, ?, ?)`,
			[]any{"k2", "client-two", "u1", "s1", "2026-01-02 11:00:00"}},
	}

	for _, stmt := range stmts {
		if _, err := db.Conn.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestListByCluster_GroupsClientsByServer(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)

	repo := NewSQLiteServerRepo(db.Conn)
	groups, err := repo.ListByCluster(context.Background(), "prod")
	if err != nil {
		t.Fatalf("ListByCluster failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("got %d servers, want 2", len(groups))
	}

	// s1 önce oluşturuldu — output first-seen (created_at) sırasında
	if groups[0].ID != "s1" || groups[1].ID != "s2" {
		t.Errorf("server order = [%s, %s], want [s1, s2]", groups[0].ID, groups[1].ID)
	}
	if groups[0].ClusterName != "prod" {
		t.Errorf("ClusterName = %q, want prod", groups[0].ClusterName)
	}

	// s1'in iki client'ı created_at sırasında gelmeli
	if len(groups[0].Clients) != 2 {
		t.Fatalf("s1: got %d clients, want 2", len(groups[0].Clients))
	}
	if got := groups[0].Clients[0]["client_id"]; got != "k1" {
		t.Errorf("s1 first client = %v, want k1", got)
	}
	if got := groups[0].Clients[1]["client_name"]; got != "client-two" {
		t.Errorf("s1 second client name = %v, want client-two", got)
	}

	// s2'nin client'ı yok — LEFT JOIN'in NULL satırı sahte client üretmemeli
	if len(groups[1].Clients) != 0 {
		t.Errorf("s2: got %d clients, want 0 (no spurious all-null client)", len(groups[1].Clients))
	}
}

func TestListByCluster_UnknownClusterIsEmpty(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)

	repo := NewSQLiteServerRepo(db.Conn)
	groups, err := repo.ListByCluster(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("ListByCluster failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("got %d servers, want 0", len(groups))
	}
}

func TestGetWithClients(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)

	repo := NewSQLiteUserRepo(db.Conn)

	t.Run("user with clients", func(t *testing.T) {
		user, found, err := repo.GetWithClients(context.Background(), "u1")
		if err != nil {
			t.Fatalf("GetWithClients failed: %v", err)
		}
		if !found {
			t.Fatal("user u1 should be found")
		}
		if user.ID != "u1" || user.Email != "ayse@example.com" {
			t.Errorf("identity fields wrong: %+v", user)
		}
		if len(user.Clients) != 2 {
			t.Fatalf("got %d clients, want 2", len(user.Clients))
		}
		if user.Clients[0].ID != "k1" || user.Clients[1].ID != "k2" {
			t.Errorf("client order = [%s, %s], want [k1, k2]", user.Clients[0].ID, user.Clients[1].ID)
		}
		if user.Clients[0].UserID != "u1" {
			t.Errorf("client user_id = %q, want u1", user.Clients[0].UserID)
		}
	})

	t.Run("user without clients has empty list", func(t *testing.T) {
		u := &models.User{ID: "u2", Email: "deniz@example.com"}
		userRepo := NewSQLiteUserRepo(db.Conn)
		if err := userRepo.Create(context.Background(), u); err != nil {
			t.Fatalf("create user failed: %v", err)
		}

		user, found, err := repo.GetWithClients(context.Background(), "u2")
		if err != nil {
			t.Fatalf("GetWithClients failed: %v", err)
		}
		if !found {
			t.Fatal("user u2 should be found")
		}
		if len(user.Clients) != 0 {
			t.Errorf("got %d clients, want 0", len(user.Clients))
		}
	})

	t.Run("missing user is absent, not an error", func(t *testing.T) {
		user, found, err := repo.GetWithClients(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("GetWithClients failed: %v", err)
		}
		if found || user != nil {
			t.Errorf("got (%v, %v), want (nil, false)", user, found)
		}
	})
}

func TestHealthSampleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)

	repo := NewSQLiteHealthRepo(db.Conn)
	ctx := context.Background()

	sample := &models.HealthSample{
		ClientID:    "k1",
		ContainerID: "abc123",
		State:       "running",
		Healthy:     true,
	}
	if err := repo.Insert(ctx, sample); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if sample.ID == "" || sample.SampledAt.IsZero() {
		t.Errorf("Insert did not populate ID/SampledAt: %+v", sample)
	}

	samples, err := repo.ListByClient(ctx, "k1", 10)
	if err != nil {
		t.Fatalf("ListByClient failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0].State != "running" || !samples[0].Healthy {
		t.Errorf("sample fields wrong: %+v", samples[0])
	}

	// Gelecekteki bir cutoff her şeyi silmeli
	deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestCounts(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)
	ctx := context.Background()

	users, err := NewSQLiteUserRepo(db.Conn).Count(ctx)
	if err != nil {
		t.Fatalf("user Count failed: %v", err)
	}
	if users != 1 {
		t.Errorf("user count = %d, want 1", users)
	}

	clients, err := NewSQLiteClientRepo(db.Conn).Count(ctx)
	if err != nil {
		t.Fatalf("client Count failed: %v", err)
	}
	if clients != 2 {
		t.Errorf("client count = %d, want 2", clients)
	}

	// staging'deki s3 de sayılır — Stats cluster filtrelemez
	servers, err := NewSQLiteServerRepo(db.Conn).Count(ctx)
	if err != nil {
		t.Fatalf("server Count failed: %v", err)
	}
	if servers != 3 {
		t.Errorf("server count = %d, want 3", servers)
	}
}

func TestAssignServer(t *testing.T) {
	db := newTestDB(t)
	seedFleet(t, db)

	repo := NewSQLiteClientRepo(db.Conn)
	ctx := context.Background()

	unassigned := &models.Client{Name: "client-three", UserID: "u1"}
	if err := repo.Create(ctx, unassigned); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.AssignServer(ctx, unassigned.ID, "s2"); err != nil {
		t.Fatalf("AssignServer failed: %v", err)
	}

	got, err := repo.GetByID(ctx, unassigned.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ServerID == nil || *got.ServerID != "s2" {
		t.Errorf("ServerID = %v, want s2", got.ServerID)
	}
}
