package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// AttendanceRepository handles attendance-record database operations.
type AttendanceRepository struct {
	db *DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create creates a new attendance record.
func (r *AttendanceRepository) Create(record *models.AttendanceRecord) error {
	return r.db.Create(record).Error
}

// Update updates an existing attendance record.
func (r *AttendanceRepository) Update(record *models.AttendanceRecord) error {
	return r.db.Save(record).Error
}

// GetByID retrieves an attendance record with its user preloaded.
func (r *AttendanceRepository) GetByID(id uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.Preload("User").First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserAndDate retrieves the record for one user on one calendar
// day, or nil when none exists.
func (r *AttendanceRepository) GetByUserAndDate(userID uint, date time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// History retrieves a user's attendance records, newest first, paginated.
func (r *AttendanceRepository) History(userID uint, page, limit int) ([]models.AttendanceRecord, int64, error) {
	var total int64
	if err := r.db.Model(&models.AttendanceRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var records []models.AttendanceRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

// GetByUserAndRange retrieves a user's records inside [start, end],
// oldest first.
func (r *AttendanceRepository) GetByUserAndRange(userID uint, start, end time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

// LatestCheckIn retrieves the most recent record that has a check-in
// timestamp, or nil when the user has never checked in.
func (r *AttendanceRepository) LatestCheckIn(userID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.
		Where("user_id = ? AND check_in IS NOT NULL", userID).
		Order("date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Recent retrieves a user's most recent records, newest first.
func (r *AttendanceRepository) Recent(userID uint, limit int) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetAllForDate retrieves every record for one calendar day.
func (r *AttendanceRepository) GetAllForDate(date time.Time) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("date = ?", date).Find(&records).Error
	return records, err
}

// CountByUser returns the number of records a user has.
func (r *AttendanceRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AttendanceRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountForDate returns how many records exist for one calendar day.
func (r *AttendanceRepository) CountForDate(date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.AttendanceRecord{}).
		Where("date = ?", date).
		Count(&count).Error
	return count, err
}

// CountBySupervisor returns the number of records across one
// supervisor's interns.
func (r *AttendanceRepository) CountBySupervisor(supervisorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AttendanceRecord{}).
		Joins("JOIN users ON users.id = attendance_records.user_id").
		Where("users.supervisor_id = ?", supervisorID).
		Count(&count).Error
	return count, err
}
