package repository

import (
	"encoding/json"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// setupBadgeTestDB creates an in-memory SQLite database for testing.
func setupBadgeTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.UserBadge{},
	)
	if err != nil {
		t.Fatalf("Failed to auto-migrate tables: %v", err)
	}

	return &DB{db}
}

func createTestBadge(t *testing.T, repo *BadgeRepository, name string) *models.Badge {
	t.Helper()

	badge := &models.Badge{
		Name:        name,
		Description: "test badge",
		Icon:        "star",
		Condition:   json.RawMessage(`{"kind":"task_master","count":50}`),
	}

	if err := repo.Create(badge); err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}
	return badge
}

func createTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Role:         models.RoleIntern,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestBadgeRepository_CreateAndGet(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	badge := createTestBadge(t, repo, "Task Master")

	got, err := repo.GetByID(badge.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Task Master" {
		t.Errorf("Expected name 'Task Master', got %q", got.Name)
	}

	cond := models.DecodeCondition(got.Condition)
	if cond.Kind != models.KindTaskMaster || cond.Count != 50 {
		t.Errorf("Unexpected decoded condition: %+v", cond)
	}
}

func TestBadgeRepository_GetByName(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	createTestBadge(t, repo, "Early Bird")

	got, err := repo.GetByName("Early Bird")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.Name != "Early Bird" {
		t.Errorf("Expected 'Early Bird', got %q", got.Name)
	}

	if _, err := repo.GetByName("does-not-exist"); err == nil {
		t.Error("Expected error for unknown badge name")
	}
}

func TestBadgeRepository_AwardBadge(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	badge := createTestBadge(t, repo, "7-Day Streak")
	user := createTestUser(t, db, "intern@example.com")

	if err := repo.AwardBadge(user.ID, badge.ID); err != nil {
		t.Fatalf("AwardBadge failed: %v", err)
	}

	earned, err := repo.HasUserEarnedBadge(user.ID, badge.ID)
	if err != nil {
		t.Fatalf("HasUserEarnedBadge failed: %v", err)
	}
	if !earned {
		t.Error("Expected badge to be earned")
	}
}

func TestBadgeRepository_AwardBadgeIdempotent(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	badge := createTestBadge(t, repo, "Productive Week")
	user := createTestUser(t, db, "intern@example.com")

	if err := repo.AwardBadge(user.ID, badge.ID); err != nil {
		t.Fatalf("First AwardBadge failed: %v", err)
	}
	if err := repo.AwardBadge(user.ID, badge.ID); err != nil {
		t.Fatalf("Second AwardBadge should be a no-op, got: %v", err)
	}

	count, err := repo.GetBadgeHoldersCount(badge.ID)
	if err != nil {
		t.Fatalf("GetBadgeHoldersCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one holder, got %d", count)
	}
}

func TestBadgeRepository_GetUserBadges(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	user := createTestUser(t, db, "intern@example.com")

	for i := 0; i < 3; i++ {
		badge := createTestBadge(t, repo, fmt.Sprintf("Badge %d", i))
		if err := repo.AwardBadge(user.ID, badge.ID); err != nil {
			t.Fatalf("AwardBadge failed: %v", err)
		}
	}

	userBadges, err := repo.GetUserBadges(user.ID)
	if err != nil {
		t.Fatalf("GetUserBadges failed: %v", err)
	}
	if len(userBadges) != 3 {
		t.Errorf("Expected 3 badges, got %d", len(userBadges))
	}
	for _, ub := range userBadges {
		if ub.Badge.ID == 0 {
			t.Error("Expected badge details to be preloaded")
		}
	}

	count, err := repo.GetUserBadgeCount(user.ID)
	if err != nil {
		t.Fatalf("GetUserBadgeCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected badge count 3, got %d", count)
	}
}

func TestBadgeRepository_Upsert(t *testing.T) {
	db := setupBadgeTestDB(t)
	repo := NewBadgeRepository(db)

	badge := &models.Badge{
		Name:      "Early Bird",
		Icon:      "zap",
		Condition: json.RawMessage(`{"kind":"early_bird"}`),
	}
	if err := repo.Upsert(badge); err != nil {
		t.Fatalf("Initial upsert failed: %v", err)
	}

	updated := &models.Badge{
		Name:        "Early Bird",
		Description: "Check in before 8am",
		Icon:        "zap",
		Condition:   json.RawMessage(`{"kind":"early_bird"}`),
	}
	if err := repo.Upsert(updated); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	badges, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(badges) != 1 {
		t.Fatalf("Expected a single badge after upsert, got %d", len(badges))
	}
	if badges[0].Description != "Check in before 8am" {
		t.Errorf("Expected refreshed description, got %q", badges[0].Description)
	}
}
