package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository_AddAndGet(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))
	ctx := context.Background()

	added, err := repo.Add(ctx, 42)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("first Add should report true")
	}

	user, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if user.UserID != 42 || !user.IsActive {
		t.Errorf("user = %+v, want active user 42", user)
	}
}

func TestUserRepository_AddExistingActive(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))
	ctx := context.Background()

	repo.Add(ctx, 42)
	added, err := repo.Add(ctx, 42)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added {
		t.Error("adding an already-active user should report false")
	}
}

func TestUserRepository_RemoveAndReactivate(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))
	ctx := context.Background()

	repo.Add(ctx, 42)

	removed, err := repo.Remove(ctx, 42)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Error("removing an active user should report true")
	}

	allowed, err := repo.IsAllowed(ctx, 42)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("deactivated user must not be allowed")
	}

	// The row survives deactivation; Add flips it back on.
	added, err := repo.Add(ctx, 42)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("reactivating should report true")
	}

	allowed, _ = repo.IsAllowed(ctx, 42)
	if !allowed {
		t.Error("reactivated user must be allowed")
	}
}

func TestUserRepository_RemoveUnknown(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))

	removed, err := repo.Remove(context.Background(), 999)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed {
		t.Error("removing an unknown user should report false")
	}
}

func TestUserRepository_GetUnknown(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))

	_, err := repo.Get(context.Background(), 999)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Get error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_IsAllowedUnknown(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))

	allowed, err := repo.IsAllowed(context.Background(), 999)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("unknown user must not be allowed")
	}
}

func TestUserRepository_List(t *testing.T) {
	repo := NewSQLiteUserRepository(testDB(t))
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if _, err := repo.Add(ctx, id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}
	repo.Remove(ctx, 2)

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len(users) = %d, want 3 (deactivated users stay listed)", len(users))
	}

	active := 0
	for _, u := range users {
		if u.IsActive {
			active++
		}
	}
	if active != 2 {
		t.Errorf("active users = %d, want 2", active)
	}
}
