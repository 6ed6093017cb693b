package badges

import (
	"fmt"
	"time"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// earlyBirdHour is the exclusive upper bound for a morning check-in.
// A check-in at 07:59 qualifies, 08:00 does not.
const earlyBirdHour = 8

// checkCondition evaluates a decoded badge condition against user facts.
// Unknown condition kinds never qualify and never error, so a catalog with
// a newer condition type does not break evaluation of the rest.
func (s *Service) checkCondition(condition models.BadgeCondition, userID uint) (bool, error) {
	switch condition.Kind {
	case models.KindStreak:
		return s.checkStreak(userID, condition.Days)
	case models.KindEarlyBird:
		return s.checkEarlyBird(userID)
	case models.KindProductiveWeek:
		return s.checkProductiveWeek(userID, condition.Hours)
	case models.KindTaskMaster:
		return s.checkTaskMaster(userID, condition.Count)
	default:
		s.log.Debug().
			Str("kind", string(condition.Kind)).
			Uint("user_id", userID).
			Msg("Unknown badge condition kind, skipping")
		return false, nil
	}
}

// checkStreak qualifies when the user's most recent activities span at
// least `days` distinct calendar dates. The lookback window is the `days`
// most recent activity records, so fewer records than days can never
// qualify.
func (s *Service) checkStreak(userID uint, days int) (bool, error) {
	if days <= 0 {
		return false, nil
	}

	dates, err := s.activityRepo.RecentDates(userID, days)
	if err != nil {
		return false, fmt.Errorf("failed to get recent activity dates: %w", err)
	}

	distinct := make(map[string]bool, len(dates))
	for _, d := range dates {
		distinct[d.Format("2006-01-02")] = true
	}

	return len(distinct) >= days, nil
}

// checkEarlyBird qualifies when the user's most recent check-in happened
// before 08:00 local time. Users with no check-ins never qualify.
func (s *Service) checkEarlyBird(userID uint) (bool, error) {
	record, err := s.attendanceRepo.LatestCheckIn(userID)
	if err != nil {
		return false, fmt.Errorf("failed to get latest check-in: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return false, nil
	}

	return record.CheckIn.In(s.loc).Hour() < earlyBirdHour, nil
}

// checkProductiveWeek qualifies when the user logged at least `hours`
// worth of activity minutes in the trailing 7 days.
func (s *Service) checkProductiveWeek(userID uint, hours int) (bool, error) {
	if hours <= 0 {
		return false, nil
	}

	since := time.Now().Add(-7 * 24 * time.Hour)
	minutes, err := s.activityRepo.MinutesLoggedSince(userID, since)
	if err != nil {
		return false, fmt.Errorf("failed to sum activity minutes: %w", err)
	}

	return minutes >= hours*60, nil
}

// checkTaskMaster qualifies when the user's lifetime activity count
// reaches `count`.
func (s *Service) checkTaskMaster(userID uint, count int) (bool, error) {
	if count <= 0 {
		return false, nil
	}

	total, err := s.activityRepo.CountByUser(userID)
	if err != nil {
		return false, fmt.Errorf("failed to count activities: %w", err)
	}

	return total >= int64(count), nil
}
