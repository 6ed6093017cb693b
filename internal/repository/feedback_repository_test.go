package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

func setupFeedbackTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Feedback{},
	)
	if err != nil {
		t.Fatalf("Failed to auto-migrate tables: %v", err)
	}

	return &DB{db}
}

func giveFeedback(t *testing.T, repo *FeedbackRepository, activityID, giverID, receiverID uint, rating *int, createdAt time.Time) *models.Feedback {
	t.Helper()

	entry := &models.Feedback{
		ActivityID: activityID,
		GiverID:    giverID,
		ReceiverID: receiverID,
		Rating:     rating,
		Comment:    "good work",
		CreatedAt:  createdAt,
	}
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create feedback: %v", err)
	}
	return entry
}

func TestFeedbackRepository_ListReceived(t *testing.T) {
	db := setupFeedbackTestDB(t)
	repo := NewFeedbackRepository(db)
	activityRepo := NewActivityRepository(db)

	intern := createTestUser(t, db, "intern@example.com")
	supervisor := createTestUser(t, db, "supervisor@example.com")
	logActivity(t, activityRepo, intern.ID, day(2026, time.March, 1), 60, "CODING")

	activities, _, err := activityRepo.List(intern.ID, 1, 10)
	if err != nil {
		t.Fatalf("List activities failed: %v", err)
	}
	activityID := activities[0].ID

	five := 5
	giveFeedback(t, repo, activityID, supervisor.ID, intern.ID, &five, day(2026, time.March, 2))
	giveFeedback(t, repo, activityID, supervisor.ID, intern.ID, nil, day(2026, time.March, 3))

	entries, total, err := repo.ListReceived(intern.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListReceived failed: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got total=%d len=%d", total, len(entries))
	}
	if !entries[0].CreatedAt.After(entries[1].CreatedAt) {
		t.Error("Expected newest entry first")
	}
	if entries[0].Giver.Email != "supervisor@example.com" {
		t.Errorf("Expected giver preloaded, got %+v", entries[0].Giver)
	}
	if entries[0].Activity.ID != activityID {
		t.Error("Expected activity preloaded")
	}

	// The supervisor received nothing.
	_, total, err = repo.ListReceived(supervisor.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListReceived failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected no received feedback, got %d", total)
	}

	given, total, err := repo.ListGiven(supervisor.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListGiven failed: %v", err)
	}
	if total != 2 || given[0].Receiver.Email != "intern@example.com" {
		t.Errorf("Expected 2 given entries with receiver preloaded, got total=%d", total)
	}
}

func TestFeedbackRepository_ListByActivity(t *testing.T) {
	db := setupFeedbackTestDB(t)
	repo := NewFeedbackRepository(db)
	activityRepo := NewActivityRepository(db)

	intern := createTestUser(t, db, "intern@example.com")
	supervisor := createTestUser(t, db, "supervisor@example.com")
	logActivity(t, activityRepo, intern.ID, day(2026, time.March, 1), 60, "CODING")
	logActivity(t, activityRepo, intern.ID, day(2026, time.March, 2), 30, "MEETING")

	activities, _, err := activityRepo.List(intern.ID, 1, 10)
	if err != nil {
		t.Fatalf("List activities failed: %v", err)
	}

	giveFeedback(t, repo, activities[0].ID, supervisor.ID, intern.ID, nil, day(2026, time.March, 3))
	giveFeedback(t, repo, activities[1].ID, supervisor.ID, intern.ID, nil, day(2026, time.March, 3))

	entries, err := repo.ListByActivity(activities[0].ID)
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ActivityID != activities[0].ID {
		t.Errorf("Expected 1 entry scoped to the activity, got %d", len(entries))
	}
}

func TestFeedbackRepository_Delete(t *testing.T) {
	db := setupFeedbackTestDB(t)
	repo := NewFeedbackRepository(db)
	activityRepo := NewActivityRepository(db)

	intern := createTestUser(t, db, "intern@example.com")
	supervisor := createTestUser(t, db, "supervisor@example.com")
	logActivity(t, activityRepo, intern.ID, day(2026, time.March, 1), 60, "CODING")

	activities, _, err := activityRepo.List(intern.ID, 1, 10)
	if err != nil {
		t.Fatalf("List activities failed: %v", err)
	}

	entry := giveFeedback(t, repo, activities[0].ID, supervisor.ID, intern.ID, nil, day(2026, time.March, 2))

	if err := repo.Delete(entry.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(entry.ID); err == nil {
		t.Error("Expected deleted feedback to be gone")
	}

	count, err := repo.CountGiven(supervisor.ID)
	if err != nil {
		t.Fatalf("CountGiven failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no given feedback after delete, got %d", count)
	}
}
