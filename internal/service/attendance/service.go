// Package attendance provides check-in and check-out services with
// geofence validation.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muhtegaralfikri/intern-log-system/internal/cache"
	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	"github.com/muhtegaralfikri/intern-log-system/internal/geofence"
	prommetrics "github.com/muhtegaralfikri/intern-log-system/internal/metrics"
	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// Sentinel errors surfaced to the API layer as 400s.
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("please check in first")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

const (
	officesCacheKey = "offices:active"
	officesCacheTTL = 5 * time.Minute
)

// AttendanceRepository interface for attendance persistence.
type AttendanceRepository interface {
	Create(record *models.AttendanceRecord) error
	Update(record *models.AttendanceRecord) error
	GetByID(id uint) (*models.AttendanceRecord, error)
	GetByUserAndDate(userID uint, date time.Time) (*models.AttendanceRecord, error)
	History(userID uint, page, limit int) ([]models.AttendanceRecord, int64, error)
	GetByUserAndRange(userID uint, start, end time.Time) ([]models.AttendanceRecord, error)
	GetAllForDate(date time.Time) ([]models.AttendanceRecord, error)
}

// OfficeRepository interface for office-location reference data.
type OfficeRepository interface {
	Create(office *models.OfficeLocation) error
	GetByID(id uint) (*models.OfficeLocation, error)
	GetAll() ([]models.OfficeLocation, error)
	GetActive() ([]models.OfficeLocation, error)
	Update(office *models.OfficeLocation) error
	Delete(id uint) error
}

// UserRepository interface for user lookups.
type UserRepository interface {
	ListInterns(supervisorID *uint) ([]models.User, error)
}

// CheckInInput carries the fields of a check-in request.
type CheckInInput struct {
	Latitude  float64
	Longitude float64
	Address   string
	Photo     string
	Notes     string
}

// CheckOutInput carries the fields of a check-out request.
type CheckOutInput struct {
	Latitude  float64
	Longitude float64
	Address   string
	Photo     string
	Notes     string
}

// MonthlySummary aggregates a user's attendance for one month.
type MonthlySummary struct {
	TotalDays      int                       `json:"total_days"`
	Present        int                       `json:"present"`
	Late           int                       `json:"late"`
	Absent         int                       `json:"absent"`
	Leave          int                       `json:"leave"`
	TotalWorkHours float64                   `json:"total_work_hours"`
	Records        []models.AttendanceRecord `json:"records"`
}

// Service handles attendance check-in, check-out and office management.
type Service struct {
	repo       AttendanceRepository
	officeRepo OfficeRepository
	userRepo   UserRepository
	cache      cache.Cache
	loc        *time.Location
	lateHour   int
	lateMinute int
	log        *logger.Logger
}

// NewService creates a new attendance service.
func NewService(
	repo *repository.AttendanceRepository,
	officeRepo *repository.OfficeRepository,
	userRepo *repository.UserRepository,
	c cache.Cache,
	cfg *config.AttendanceConfig,
	loc *time.Location,
	log *logger.Logger,
) (*Service, error) {
	hour, minute, err := parseClock(cfg.LateThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid late_threshold %q: %w", cfg.LateThreshold, err)
	}
	return &Service{
		repo:       repo,
		officeRepo: officeRepo,
		userRepo:   userRepo,
		cache:      c,
		loc:        loc,
		lateHour:   hour,
		lateMinute: minute,
		log:        log,
	}, nil
}

// NewServiceWithInterfaces creates a new attendance service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	repo AttendanceRepository,
	officeRepo OfficeRepository,
	userRepo UserRepository,
	c cache.Cache,
	lateHour, lateMinute int,
	loc *time.Location,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		officeRepo: officeRepo,
		userRepo:   userRepo,
		cache:      c,
		loc:        loc,
		lateHour:   lateHour,
		lateMinute: lateMinute,
		log:        log,
	}
}

// parseClock parses an "HH:MM" string.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour")
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute")
	}
	return hour, minute, nil
}

// today returns local midnight for the current day.
func (s *Service) today() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// CheckIn records a check-in for today. A second check-in on the same day
// is rejected, but a user marked absent earlier (a record with no check-in)
// can still check in and overwrite the absent status.
func (s *Service) CheckIn(ctx context.Context, userID uint, input CheckInInput) (*models.AttendanceRecord, error) {
	date := s.today()

	existing, err := s.repo.GetByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, ErrAlreadyCheckedIn
	}

	offices, err := s.ActiveOffices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load office locations: %w", err)
	}
	inRadius := geofence.WithinAnyOffice(input.Latitude, input.Longitude, offices)

	now := time.Now().In(s.loc)
	threshold := time.Date(now.Year(), now.Month(), now.Day(), s.lateHour, s.lateMinute, 0, 0, s.loc)

	status := models.StatusPresent
	if now.After(threshold) {
		status = models.StatusLate
	}

	record := existing
	if record == nil {
		record = &models.AttendanceRecord{UserID: userID, Date: date}
	}
	record.CheckIn = &now
	record.CheckInLat = &input.Latitude
	record.CheckInLng = &input.Longitude
	record.CheckInAddress = input.Address
	record.CheckInPhoto = s.storePhoto(input.Photo)
	record.IsInRadius = inRadius
	record.Status = status
	if input.Notes != "" {
		record.Notes = input.Notes
	}

	if existing == nil {
		err = s.repo.Create(record)
	} else {
		err = s.repo.Update(record)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	prommetrics.RecordCheckIn(string(status), inRadius)

	s.log.Info().
		Uint("user_id", userID).
		Str("status", string(status)).
		Bool("in_radius", inRadius).
		Msg("User checked in")

	return record, nil
}

// CheckOut records a check-out on today's attendance record.
func (s *Service) CheckOut(ctx context.Context, userID uint, input CheckOutInput) (*models.AttendanceRecord, error) {
	date := s.today()

	record, err := s.repo.GetByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return nil, ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	now := time.Now().In(s.loc)
	record.CheckOut = &now
	record.CheckOutLat = &input.Latitude
	record.CheckOutLng = &input.Longitude
	record.CheckOutAddress = input.Address
	record.CheckOutPhoto = s.storePhoto(input.Photo)
	if input.Notes != "" {
		if record.Notes != "" {
			record.Notes = record.Notes + "\n" + input.Notes
		} else {
			record.Notes = input.Notes
		}
	}

	if err := s.repo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	prommetrics.RecordCheckOut()

	s.log.Info().
		Uint("user_id", userID).
		Dur("work_duration", record.WorkDuration()).
		Msg("User checked out")

	return record, nil
}

// storePhoto assigns a stable reference key for an uploaded photo. The
// upload payload itself is handed to object storage out of band; an empty
// payload yields an empty reference.
func (s *Service) storePhoto(photo string) string {
	if photo == "" {
		return ""
	}
	return "attendance/" + uuid.New().String()
}

// Today returns today's attendance record, or nil when the user has not
// checked in and has not been marked absent.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) Today(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	return s.repo.GetByUserAndDate(userID, s.today())
}

// History returns the user's attendance records, newest first.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) History(ctx context.Context, userID uint, page, limit int) ([]models.AttendanceRecord, int64, error) {
	return s.repo.History(userID, page, limit)
}

// GetByID returns a single attendance record with its user preloaded.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetByID(ctx context.Context, id uint) (*models.AttendanceRecord, error) {
	return s.repo.GetByID(id)
}

// GetMonthlySummary aggregates the user's attendance for a calendar month.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetMonthlySummary(ctx context.Context, userID uint, year, month int) (*MonthlySummary, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	records, err := s.repo.GetByUserAndRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	summary := &MonthlySummary{
		TotalDays: len(records),
		Records:   records,
	}
	for _, r := range records {
		switch r.Status {
		case models.StatusPresent:
			summary.Present++
		case models.StatusLate:
			summary.Late++
		case models.StatusAbsent:
			summary.Absent++
		case models.StatusLeave:
			summary.Leave++
		}
		summary.TotalWorkHours += r.WorkDuration().Hours()
	}

	return summary, nil
}

// MarkAbsentees creates ABSENT records for interns with no attendance on
// the given date. Returns the number of interns marked absent.
func (s *Service) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	// Check-ins store the local midnight as the record date, so the lookup
	// and any created rows must use the same value or existing rows are
	// never matched.
	local := date.In(s.loc)
	date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	interns, err := s.userRepo.ListInterns(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list interns: %w", err)
	}

	marked := 0
	for _, intern := range interns {
		record, err := s.repo.GetByUserAndDate(intern.ID, date)
		if err != nil {
			s.log.Error().Err(err).Uint("user_id", intern.ID).Msg("Failed to look up attendance")
			continue
		}
		if record != nil {
			continue
		}

		absent := &models.AttendanceRecord{
			UserID: intern.ID,
			Date:   date,
			Status: models.StatusAbsent,
		}
		if err := s.repo.Create(absent); err != nil {
			s.log.Error().Err(err).Uint("user_id", intern.ID).Msg("Failed to mark absent")
			continue
		}
		marked++
	}

	if marked > 0 {
		s.log.Info().Int("marked", marked).Time("date", date).Msg("Marked absentees")
	}
	return marked, nil
}

// ActiveOffices returns the active office locations, cached briefly to
// keep check-ins from hitting the database for reference data.
func (s *Service) ActiveOffices(ctx context.Context) ([]models.OfficeLocation, error) {
	var offices []models.OfficeLocation
	if err := cache.GetJSON(ctx, s.cache, officesCacheKey, &offices); err == nil {
		return offices, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Msg("Office cache read failed, falling back to database")
	}

	offices, err := s.officeRepo.GetActive()
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, officesCacheKey, offices, officesCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache office locations")
	}
	return offices, nil
}

// ListOffices returns every office location, active or not.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListOffices(ctx context.Context) ([]models.OfficeLocation, error) {
	return s.officeRepo.GetAll()
}

// CreateOffice adds an office location and invalidates the cache.
func (s *Service) CreateOffice(ctx context.Context, office *models.OfficeLocation) error {
	if err := s.officeRepo.Create(office); err != nil {
		return err
	}
	s.invalidateOffices(ctx)
	return nil
}

// UpdateOffice updates an office location and invalidates the cache.
func (s *Service) UpdateOffice(ctx context.Context, office *models.OfficeLocation) error {
	if err := s.officeRepo.Update(office); err != nil {
		return err
	}
	s.invalidateOffices(ctx)
	return nil
}

// DeleteOffice removes an office location and invalidates the cache.
func (s *Service) DeleteOffice(ctx context.Context, id uint) error {
	if err := s.officeRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateOffices(ctx)
	return nil
}

func (s *Service) invalidateOffices(ctx context.Context) {
	if err := s.cache.Del(ctx, officesCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate office cache")
	}
}
