package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

func setupAttendanceTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&models.User{},
		&models.AttendanceRecord{},
	)
	if err != nil {
		t.Fatalf("Failed to auto-migrate tables: %v", err)
	}

	return &DB{db}
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_GetByUserAndDate(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	user := createTestUser(t, db, "intern@example.com")

	date := day(2026, time.March, 2)
	checkIn := date.Add(8 * time.Hour)

	record := &models.AttendanceRecord{
		UserID:  user.ID,
		Date:    date,
		CheckIn: &checkIn,
		Status:  models.StatusPresent,
	}
	if err := repo.Create(record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByUserAndDate(user.ID, date)
	if err != nil {
		t.Fatalf("GetByUserAndDate failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record, got nil")
	}
	if got.Status != models.StatusPresent {
		t.Errorf("Expected PRESENT, got %s", got.Status)
	}

	missing, err := repo.GetByUserAndDate(user.ID, day(2026, time.March, 3))
	if err != nil {
		t.Fatalf("GetByUserAndDate failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for a day with no record")
	}
}

func TestAttendanceRepository_UniquePerUserAndDate(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	user := createTestUser(t, db, "intern@example.com")

	date := day(2026, time.March, 2)

	first := &models.AttendanceRecord{UserID: user.ID, Date: date, Status: models.StatusPresent}
	if err := repo.Create(first); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	dup := &models.AttendanceRecord{UserID: user.ID, Date: date, Status: models.StatusLate}
	if err := repo.Create(dup); err == nil {
		t.Error("Expected unique constraint violation for second record on the same day")
	}
}

func TestAttendanceRepository_LatestCheckIn(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	user := createTestUser(t, db, "intern@example.com")

	// No check-ins on record yet.
	latest, err := repo.LatestCheckIn(user.ID)
	if err != nil {
		t.Fatalf("LatestCheckIn failed: %v", err)
	}
	if latest != nil {
		t.Error("Expected nil before any check-in")
	}

	early := day(2026, time.March, 2).Add(7 * time.Hour)
	late := day(2026, time.March, 3).Add(10 * time.Hour)

	for _, rec := range []*models.AttendanceRecord{
		{UserID: user.ID, Date: day(2026, time.March, 2), CheckIn: &early, Status: models.StatusPresent},
		{UserID: user.ID, Date: day(2026, time.March, 3), CheckIn: &late, Status: models.StatusLate},
		{UserID: user.ID, Date: day(2026, time.March, 4), Status: models.StatusAbsent}, // no check-in
	} {
		if err := repo.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	latest, err = repo.LatestCheckIn(user.ID)
	if err != nil {
		t.Fatalf("LatestCheckIn failed: %v", err)
	}
	if latest == nil {
		t.Fatal("Expected a record")
	}
	if !latest.Date.Equal(day(2026, time.March, 3)) {
		t.Errorf("Expected the March 3 record, got date %v", latest.Date)
	}
}

func TestAttendanceRepository_History(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	user := createTestUser(t, db, "intern@example.com")

	for i := 1; i <= 5; i++ {
		rec := &models.AttendanceRecord{
			UserID: user.ID,
			Date:   day(2026, time.March, i),
			Status: models.StatusPresent,
		}
		if err := repo.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	records, total, err := repo.History(user.ID, 1, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records on page 1, got %d", len(records))
	}
	if !records[0].Date.After(records[1].Date) {
		t.Error("Expected newest-first ordering")
	}
}

func TestAttendanceRepository_GetByUserAndRange(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	user := createTestUser(t, db, "intern@example.com")

	for i := 1; i <= 10; i++ {
		rec := &models.AttendanceRecord{
			UserID: user.ID,
			Date:   day(2026, time.March, i),
			Status: models.StatusPresent,
		}
		if err := repo.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	records, err := repo.GetByUserAndRange(user.ID, day(2026, time.March, 3), day(2026, time.March, 6))
	if err != nil {
		t.Fatalf("GetByUserAndRange failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("Expected 4 records in range, got %d", len(records))
	}
}
