package repository

import (
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// OfficeRepository handles office-location reference data.
type OfficeRepository struct {
	db *DB
}

// NewOfficeRepository creates a new office repository.
func NewOfficeRepository(db *DB) *OfficeRepository {
	return &OfficeRepository{db: db}
}

// Create creates a new office location.
func (r *OfficeRepository) Create(office *models.OfficeLocation) error {
	return r.db.Create(office).Error
}

// GetByID retrieves an office location by its ID.
func (r *OfficeRepository) GetByID(id uint) (*models.OfficeLocation, error) {
	var office models.OfficeLocation
	if err := r.db.First(&office, id).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

// GetByName retrieves an office location by name.
func (r *OfficeRepository) GetByName(name string) (*models.OfficeLocation, error) {
	var office models.OfficeLocation
	if err := r.db.Where("name = ?", name).First(&office).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

// GetAll retrieves all office locations.
func (r *OfficeRepository) GetAll() ([]models.OfficeLocation, error) {
	var offices []models.OfficeLocation
	err := r.db.Order("created_at ASC").Find(&offices).Error
	return offices, err
}

// GetActive retrieves the active office locations the geofence
// validator considers.
func (r *OfficeRepository) GetActive() ([]models.OfficeLocation, error) {
	var offices []models.OfficeLocation
	err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&offices).Error
	return offices, err
}

// Update updates an existing office location.
func (r *OfficeRepository) Update(office *models.OfficeLocation) error {
	return r.db.Save(office).Error
}

// Delete deletes an office location by its ID.
func (r *OfficeRepository) Delete(id uint) error {
	return r.db.Delete(&models.OfficeLocation{}, id).Error
}
