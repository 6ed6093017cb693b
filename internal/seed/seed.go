// Package seed applies reference data (badge catalog, office locations)
// from a YAML file at startup.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// BadgeEntry is one badge in the catalog file.
type BadgeEntry struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	Condition   map[string]any `yaml:"condition"`
}

// OfficeEntry is one office location in the catalog file.
type OfficeEntry struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Radius    float64 `yaml:"radius"`
	IsActive  *bool   `yaml:"is_active"`
}

// Catalog is the parsed seed file.
type Catalog struct {
	Badges  []BadgeEntry  `yaml:"badges"`
	Offices []OfficeEntry `yaml:"offices"`
}

// BadgeUpserter writes badges matched by name.
type BadgeUpserter interface {
	Upsert(badge *models.Badge) error
}

// OfficeWriter reads and writes office locations.
type OfficeWriter interface {
	GetByName(name string) (*models.OfficeLocation, error)
	Create(office *models.OfficeLocation) error
	Update(office *models.OfficeLocation) error
}

// Seeder applies a catalog to the database.
type Seeder struct {
	badges  BadgeUpserter
	offices OfficeWriter
	log     *logger.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(badgeRepo *repository.BadgeRepository, officeRepo *repository.OfficeRepository, log *logger.Logger) *Seeder {
	return &Seeder{badges: badgeRepo, offices: officeRepo, log: log}
}

// NewSeederWithInterfaces creates a new seeder with interface dependencies (useful for testing).
func NewSeederWithInterfaces(badges BadgeUpserter, offices OfficeWriter, log *logger.Logger) *Seeder {
	return &Seeder{badges: badges, offices: offices, log: log}
}

// LoadCatalog parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, b := range catalog.Badges {
		if b.Name == "" {
			return nil, fmt.Errorf("badge entry %d has no name", i)
		}
		if len(b.Condition) == 0 {
			return nil, fmt.Errorf("badge %q has no condition", b.Name)
		}
		if _, ok := b.Condition["kind"]; !ok {
			return nil, fmt.Errorf("badge %q condition has no kind", b.Name)
		}
	}
	for i, o := range catalog.Offices {
		if o.Name == "" {
			return nil, fmt.Errorf("office entry %d has no name", i)
		}
		if o.Radius <= 0 {
			return nil, fmt.Errorf("office %q has non-positive radius", o.Name)
		}
	}

	return &catalog, nil
}

// Apply upserts the catalog's badges and offices.
func (s *Seeder) Apply(catalog *Catalog) error {
	for _, entry := range catalog.Badges {
		condition, err := json.Marshal(entry.Condition)
		if err != nil {
			return fmt.Errorf("failed to encode condition for badge %q: %w", entry.Name, err)
		}

		badge := &models.Badge{
			Name:        entry.Name,
			Description: entry.Description,
			Icon:        entry.Icon,
			Condition:   condition,
		}
		if err := s.badges.Upsert(badge); err != nil {
			return fmt.Errorf("failed to seed badge %q: %w", entry.Name, err)
		}
	}

	for _, entry := range catalog.Offices {
		if err := s.applyOffice(entry); err != nil {
			return err
		}
	}

	s.log.Info().
		Int("badges", len(catalog.Badges)).
		Int("offices", len(catalog.Offices)).
		Msg("Seed catalog applied")

	return nil
}

func (s *Seeder) applyOffice(entry OfficeEntry) error {
	active := true
	if entry.IsActive != nil {
		active = *entry.IsActive
	}

	existing, err := s.offices.GetByName(entry.Name)
	if err != nil {
		// Not found, create fresh.
		office := &models.OfficeLocation{
			Name:      entry.Name,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
			Radius:    entry.Radius,
			IsActive:  active,
		}
		if createErr := s.offices.Create(office); createErr != nil {
			return fmt.Errorf("failed to seed office %q: %w", entry.Name, createErr)
		}
		return nil
	}

	existing.Latitude = entry.Latitude
	existing.Longitude = entry.Longitude
	existing.Radius = entry.Radius
	existing.IsActive = active
	if err := s.offices.Update(existing); err != nil {
		return fmt.Errorf("failed to update office %q: %w", entry.Name, err)
	}
	return nil
}

// Run loads and applies the catalog at path.
func (s *Seeder) Run(path string) error {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return err
	}
	return s.Apply(catalog)
}
