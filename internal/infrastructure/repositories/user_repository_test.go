package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// setupTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection because every in-memory connection is its own
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&DBUser{}, &DBSingleUseToken{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *DBUser {
	t.Helper()
	user := &DBUser{
		Email:         email,
		PasswordHash:  "hashed_password",
		FirstName:     "Test",
		LastName:      "User",
		Role:          string(domain.RoleUser),
		Provider:      string(domain.ProviderLocal),
		EmailVerified: false,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected the generated ID to be written back")
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Email != "test@example.com" {
		t.Errorf("expected email test@example.com, got %s", found.Email)
	}
	if found.EmailVerified {
		t.Error("expected a fresh user to be unverified")
	}

	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_FindByEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "Mixed.Case@Example.com")

	for _, email := range []string{"mixed.case@example.com", "MIXED.CASE@EXAMPLE.COM", "Mixed.Case@Example.com"} {
		found, err := repo.FindByEmail(ctx, email)
		if err != nil {
			t.Fatalf("find %q: %v", email, err)
		}
		// stored form is preserved
		if found.Email != "Mixed.Case@Example.com" {
			t.Errorf("expected stored casing back, got %s", found.Email)
		}
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_ExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "test@example.com")

	exists, err := repo.ExistsByEmail(ctx, "TEST@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("expected case-insensitive existence check to hit")
	}

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("expected miss for unknown email")
	}
}

func TestUserRepositoryImpl_FindByProvider(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := seedUser(t, db, "oauth@example.com")
	db.Model(&DBUser{}).Where("id = ?", seeded.ID).Updates(map[string]interface{}{
		"provider":    string(domain.ProviderGoogle),
		"provider_id": "google-sub-123",
	})

	found, err := repo.FindByProvider(ctx, domain.ProviderGoogle, "google-sub-123")
	if err != nil {
		t.Fatalf("find by provider: %v", err)
	}
	if found.ID != seeded.ID {
		t.Errorf("expected user %d, got %d", seeded.ID, found.ID)
	}

	if _, err := repo.FindByProvider(ctx, domain.ProviderGoogle, "unknown-sub"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_MarkEmailVerified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := seedUser(t, db, "test@example.com")

	if err := repo.MarkEmailVerified(ctx, seeded.ID); err != nil {
		t.Fatalf("mark verified: %v", err)
	}

	found, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !found.EmailVerified {
		t.Error("expected the verified flag to be set")
	}
}

func TestUserRepositoryImpl_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := seedUser(t, db, "test@example.com")

	if err := repo.UpdatePassword(ctx, seeded.ID, "new_hashed_password"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	found, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.PasswordHash != "new_hashed_password" {
		t.Errorf("expected the new hash, got %s", found.PasswordHash)
	}
}

func TestUserRepositoryImpl_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "test@example.com")

	err := repo.Create(ctx, &domain.User{
		Email:    "test@example.com",
		Role:     domain.RoleUser,
		Provider: domain.ProviderLocal,
	})
	if err == nil {
		t.Fatal("expected the unique index to reject a duplicate email")
	}
}

func TestUserRepositoryImpl_CreateSetsTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	user := &domain.User{Email: "test@example.com", Role: domain.RoleUser, Provider: domain.ProviderLocal}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.CreatedAt.Before(before) {
		t.Errorf("expected CreatedAt to be set, got %v", user.CreatedAt)
	}
}
