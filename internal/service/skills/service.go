// Package skills provides the skill catalog and per-intern progression.
package skills

import (
	"context"
	"fmt"
	"sort"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/internal/repository"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

// SkillRepository interface for skill persistence.
type SkillRepository interface {
	Create(skill *models.Skill) error
	GetByID(id uint) (*models.Skill, error)
	GetAll() ([]models.Skill, error)
	GetUserSkill(userID, skillID uint) (*models.UserSkill, error)
	GetUserSkills(userID uint) ([]models.UserSkill, error)
	TopUserSkills(userID uint, limit int) ([]models.UserSkill, error)
	SaveUserSkill(us *models.UserSkill) error
}

// Progress summarizes a user's skill development.
type Progress struct {
	Skills      []models.UserSkill `json:"skills"`
	TotalHours  int                `json:"total_hours"`
	TotalSkills int                `json:"total_skills"`
}

// CategoryStat aggregates hours and skill count for one category.
type CategoryStat struct {
	Category string `json:"category"`
	Hours    int    `json:"hours"`
	Count    int    `json:"count"`
}

// RadarPoint is one skill's level, shaped for radar charts.
type RadarPoint struct {
	Skill string `json:"skill"`
	Value int    `json:"value"`
}

// Analytics breaks down a user's skills for dashboard charts.
type Analytics struct {
	ByCategory []CategoryStat     `json:"by_category"`
	TopSkills  []models.UserSkill `json:"top_skills"`
	RadarData  []RadarPoint       `json:"radar_data"`
}

// Service handles the skill catalog and accrual.
type Service struct {
	repo SkillRepository
	log  *logger.Logger
}

// NewService creates a new skill service.
func NewService(repo *repository.SkillRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// NewServiceWithInterfaces creates a new skill service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(repo SkillRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateSkill adds a catalog entry.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) CreateSkill(ctx context.Context, name, category string) (*models.Skill, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	skill := &models.Skill{Name: name, Category: category}
	if err := s.repo.Create(skill); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, nil
}

// ListSkills returns the whole catalog.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.repo.GetAll()
}

// AddHours accrues hours for a user on a skill and recomputes the level.
// Level moves one step per ten accumulated hours, capped at 100.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) AddHours(ctx context.Context, userID, skillID uint, hours int) (*models.UserSkill, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive")
	}

	skill, err := s.repo.GetByID(skillID)
	if err != nil {
		return nil, fmt.Errorf("skill not found: %w", err)
	}

	us, err := s.repo.GetUserSkill(userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user skill: %w", err)
	}
	if us == nil {
		us = &models.UserSkill{UserID: userID, SkillID: skillID}
	}

	us.Hours += hours
	us.Level = models.SkillLevelForHours(us.Hours)

	if err := s.repo.SaveUserSkill(us); err != nil {
		return nil, fmt.Errorf("failed to save user skill: %w", err)
	}

	s.log.Debug().
		Uint("user_id", userID).
		Str("skill", skill.Name).
		Int("hours", us.Hours).
		Int("level", us.Level).
		Msg("Skill hours accrued")

	us.Skill = *skill
	return us, nil
}

// GetProgress returns the user's skills ordered by level with totals.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetProgress(ctx context.Context, userID uint) (*Progress, error) {
	userSkills, err := s.repo.GetUserSkills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user skills: %w", err)
	}

	progress := &Progress{
		Skills:      userSkills,
		TotalSkills: len(userSkills),
	}
	for _, us := range userSkills {
		progress.TotalHours += us.Hours
	}
	return progress, nil
}

// GetAnalytics shapes the user's skills for dashboard charts.
//
//nolint:revive // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetAnalytics(ctx context.Context, userID uint) (*Analytics, error) {
	userSkills, err := s.repo.GetUserSkills(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user skills: %w", err)
	}

	byCategory := make(map[string]*CategoryStat)
	radar := make([]RadarPoint, 0, len(userSkills))
	for _, us := range userSkills {
		cat := us.Skill.Category
		if byCategory[cat] == nil {
			byCategory[cat] = &CategoryStat{Category: cat}
		}
		byCategory[cat].Hours += us.Hours
		byCategory[cat].Count++

		radar = append(radar, RadarPoint{Skill: us.Skill.Name, Value: us.Level})
	}

	categories := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		categories = append(categories, *stat)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	top, err := s.repo.TopUserSkills(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load top skills: %w", err)
	}

	return &Analytics{
		ByCategory: categories,
		TopSkills:  top,
		RadarData:  radar,
	}, nil
}
