package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/config"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

type mockBadgeEvaluator struct {
	awarded int
	err     error
	calls   int
}

func (m *mockBadgeEvaluator) EvaluateAllBadges(_ context.Context) (int, error) {
	m.calls++
	return m.awarded, m.err
}

type mockAbsenteeMarker struct {
	marked int
	err    error
	calls  int
	date   time.Time
}

func (m *mockAbsenteeMarker) MarkAbsentees(_ context.Context, date time.Time) (int, error) {
	m.calls++
	m.date = date
	return m.marked, m.err
}

func newTestService(badges *mockBadgeEvaluator, attendance *mockAbsenteeMarker) *Service {
	return &Service{
		config: &config.Config{
			Scheduler: config.SchedulerConfig{
				Enabled:             true,
				BadgeEvaluationTime: "00:05",
				AbsentMarkingTime:   "18:00",
				Timezone:            "UTC",
			},
		},
		badgeService: badges,
		attendance:   attendance,
		log:          logger.New("error", "console", "stdout"),
		location:     time.UTC,
	}
}

func TestBuildCronExpression(t *testing.T) {
	tests := []struct {
		name         string
		time         string
		skipWeekends bool
		want         string
		wantErr      bool
	}{
		{
			name:         "daily at 9am",
			time:         "09:00",
			skipWeekends: false,
			want:         "0 9 * * *",
			wantErr:      false,
		},
		{
			name:         "weekdays at 9am",
			time:         "09:00",
			skipWeekends: true,
			want:         "0 9 * * 1-5",
			wantErr:      false,
		},
		{
			name:         "daily at 18:30",
			time:         "18:30",
			skipWeekends: false,
			want:         "30 18 * * *",
			wantErr:      false,
		},
		{
			name:         "invalid format no colon",
			time:         "1800",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
		{
			name:         "invalid hour",
			time:         "25:00",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
		{
			name:         "invalid minute",
			time:         "09:60",
			skipWeekends: false,
			want:         "",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildCronExpression(tt.time, tt.skipWeekends)

			if (err != nil) != tt.wantErr {
				t.Errorf("buildCronExpression() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != tt.want {
				t.Errorf("buildCronExpression() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartDisabled(t *testing.T) {
	s := newTestService(&mockBadgeEvaluator{}, &mockAbsenteeMarker{})
	s.config.Scheduler.Enabled = false

	if err := s.Start(); err != nil {
		t.Errorf("Start() with disabled scheduler returned error: %v", err)
	}

	if s.cron != nil {
		t.Error("Start() registered cron jobs while disabled")
	}
}

func TestStartRegistersJobs(t *testing.T) {
	s := newTestService(&mockBadgeEvaluator{}, &mockAbsenteeMarker{})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	defer s.Stop()

	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("expected 2 registered jobs, got %d", got)
	}
}

func TestStartInvalidSchedule(t *testing.T) {
	s := newTestService(&mockBadgeEvaluator{}, &mockAbsenteeMarker{})
	s.config.Scheduler.BadgeEvaluationTime = "not-a-time"

	if err := s.Start(); err == nil {
		t.Error("Start() should fail with invalid badge evaluation time")
	}
}

func TestStartInvalidTimezone(t *testing.T) {
	s := newTestService(&mockBadgeEvaluator{}, &mockAbsenteeMarker{})
	s.config.Scheduler.Timezone = "Mars/Olympus"

	if err := s.Start(); err == nil {
		t.Error("Start() should fail with unknown timezone")
	}
}

func TestRunBadgeEvaluation(t *testing.T) {
	badges := &mockBadgeEvaluator{awarded: 3}
	s := newTestService(badges, &mockAbsenteeMarker{})

	s.runBadgeEvaluation(context.Background())

	if badges.calls != 1 {
		t.Errorf("expected 1 badge evaluation call, got %d", badges.calls)
	}
}

func TestRunBadgeEvaluationError(t *testing.T) {
	badges := &mockBadgeEvaluator{err: errors.New("database down")}
	s := newTestService(badges, &mockAbsenteeMarker{})

	// Must not panic, only log and record the failure.
	s.runBadgeEvaluation(context.Background())

	if badges.calls != 1 {
		t.Errorf("expected 1 badge evaluation call, got %d", badges.calls)
	}
}

func TestRunAbsentMarking(t *testing.T) {
	attendance := &mockAbsenteeMarker{marked: 2}
	s := newTestService(&mockBadgeEvaluator{}, attendance)

	s.runAbsentMarking(context.Background())

	if attendance.calls != 1 {
		t.Errorf("expected 1 absent marking call, got %d", attendance.calls)
	}

	if attendance.date.IsZero() {
		t.Error("absent marking should receive the current date")
	}
}
