package timeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"recstudio/internal/config"
	"recstudio/internal/domain"
	"recstudio/internal/repository"

	"gorm.io/gorm"
)

// Service renders the read-side schedule board. It never writes; stale data
// between the query and the render is acceptable.
type Service struct {
	sessions SessionRepository
	studios  StudioRepository
	window   int
}

func NewService(sessions SessionRepository, studios StudioRepository, cfg config.SchedulingConfig) *Service {
	return &Service{sessions: sessions, studios: studios, window: cfg.RecentWindowDays}
}

// ScheduleView classifies the studio's sessions against now into the three
// board buckets and groups each bucket by studio-local day.
func (s *Service) ScheduleView(ctx context.Context, studioID int64, now time.Time) (*ScheduleView, error) {
	tz, err := s.studios.GetTimezone(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load studio timezone: %w", err)
	}
	loc := locationOrLocal(tz)

	todayKey := DayKeyIn(now, loc)
	tomorrowKey, err := ShiftDayKey(todayKey, 1)
	if err != nil {
		return nil, fmt.Errorf("tomorrow key: %w", err)
	}
	floorKey, err := ShiftDayKey(todayKey, -s.window)
	if err != nil {
		return nil, fmt.Errorf("recent window floor: %w", err)
	}
	floor, err := time.ParseInLocation(dayKeyLayout, floorKey, loc)
	if err != nil {
		return nil, fmt.Errorf("recent window floor: %w", err)
	}

	rows, err := s.sessions.ListWindow(ctx, studioID, floor.UTC())
	if err != nil {
		return nil, fmt.Errorf("list schedule window: %w", err)
	}

	var active, upcoming, recent []repository.SessionRow
	for _, row := range rows {
		if isActive(row, now) {
			active = append(active, row)
			continue
		}
		// The remaining two buckets are independent: a session that wrapped
		// earlier today keeps its slot in the day list and shows under recent.
		if isUpcoming(row, now, loc, todayKey) {
			upcoming = append(upcoming, row)
		}
		if isRecent(row, now, loc, floorKey) {
			recent = append(recent, row)
		}
	}

	// ListWindow returns start-ascending, which active and upcoming keep;
	// recent reads newest finish first.
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].EndTime.After(recent[j].EndTime)
	})

	byStart := func(row repository.SessionRow) string { return DayKeyIn(row.StartTime, loc) }
	byEnd := func(row repository.SessionRow) string { return DayKeyIn(row.EndTime, loc) }

	return &ScheduleView{
		Active:   groupByDay(active, byStart, todayKey, tomorrowKey),
		Upcoming: groupByDay(upcoming, byStart, todayKey, tomorrowKey),
		Recent:   groupByDay(recent, byEnd, todayKey, tomorrowKey),
	}, nil
}

// isActive reports a session underway at now: inside its half-open window
// and neither cancelled nor completed.
func isActive(row repository.SessionRow, now time.Time) bool {
	if row.Status == string(domain.SessionCancelled) || row.Status == string(domain.SessionCompleted) {
		return false
	}
	return !now.Before(row.StartTime) && now.Before(row.EndTime)
}

// isUpcoming reports a session still ahead on the studio calendar: starting
// today or later by local day, not cancelled, and not already underway.
func isUpcoming(row repository.SessionRow, now time.Time, loc *time.Location, todayKey string) bool {
	if row.Status == string(domain.SessionCancelled) {
		return false
	}
	if isActive(row, now) {
		return false
	}
	return DayKeyIn(row.StartTime, loc) >= todayKey
}

// isRecent reports a session that already ended with its finish day inside
// the trailing window. Day keys compare lexicographically in date order.
func isRecent(row repository.SessionRow, now time.Time, loc *time.Location, floorKey string) bool {
	if row.Status == string(domain.SessionCancelled) {
		return false
	}
	if !row.EndTime.Before(now) {
		return false
	}
	return DayKeyIn(row.EndTime, loc) >= floorKey
}

// groupByDay splits a bucket into per-day groups preserving row order. With
// a single group the header is left empty.
func groupByDay(rows []repository.SessionRow, keyOf func(repository.SessionRow) string, todayKey, tomorrowKey string) []DayGroup {
	groups := []DayGroup{}
	at := make(map[string]int)
	for _, row := range rows {
		key := keyOf(row)
		i, ok := at[key]
		if !ok {
			i = len(groups)
			at[key] = i
			groups = append(groups, DayGroup{DayKey: key})
		}
		groups[i].Sessions = append(groups[i].Sessions, row)
	}
	if len(groups) <= 1 {
		return groups
	}
	for i := range groups {
		groups[i].Header = dayHeader(groups[i].DayKey, todayKey, tomorrowKey)
	}
	return groups
}

// dayHeader names a group: relative for today and tomorrow, weekday with
// month and day otherwise.
func dayHeader(key, todayKey, tomorrowKey string) string {
	switch key {
	case todayKey:
		return "Today"
	case tomorrowKey:
		return "Tomorrow"
	}
	d, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return key
	}
	return d.Format("Monday, January 2")
}
