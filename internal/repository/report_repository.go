package repository

import (
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// ReportRepository handles internship-report database operations.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report.
func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// Update updates an existing report.
func (r *ReportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

// GetByID retrieves a report with its user preloaded.
func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("User").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// GetByIDAndUser retrieves a report owned by the given user.
func (r *ReportRepository) GetByIDAndUser(id, userID uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List retrieves a user's reports, newest first, paginated.
func (r *ReportRepository) List(userID uint, page, limit int) ([]models.Report, int64, error) {
	var total int64
	if err := r.db.Model(&models.Report{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var reports []models.Report
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

// ListAll retrieves reports across all users with an optional approval
// filter, newest first, paginated.
func (r *ReportRepository) ListAll(approved *bool, page, limit int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var reports []models.Report
	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

// ListBySupervisor retrieves reports authored by one supervisor's
// interns with an optional approval filter, newest first.
func (r *ReportRepository) ListBySupervisor(supervisorID uint, approved *bool) ([]models.Report, error) {
	query := r.db.Model(&models.Report{}).
		Joins("JOIN users ON users.id = reports.user_id").
		Where("users.supervisor_id = ?", supervisorID)
	if approved != nil {
		query = query.Where("reports.is_approved = ?", *approved)
	}

	var reports []models.Report
	err := query.
		Preload("User").
		Order("reports.created_at DESC").
		Find(&reports).Error
	return reports, err
}

// Count returns the total number of reports, optionally filtered by
// approval state.
func (r *ReportRepository) Count(approved *bool) (int64, error) {
	query := r.db.Model(&models.Report{})
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountByUser returns the number of reports a user has.
func (r *ReportRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountPendingBySupervisor returns how many of one supervisor's
// interns' reports await approval.
func (r *ReportRepository) CountPendingBySupervisor(supervisorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Joins("JOIN users ON users.id = reports.user_id").
		Where("users.supervisor_id = ? AND reports.is_approved = ?", supervisorID, false).
		Count(&count).Error
	return count, err
}
