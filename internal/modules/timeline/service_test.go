package timeline

import (
	"context"
	"testing"
	"time"

	"recstudio/internal/config"
	"recstudio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) ListWindow(ctx context.Context, studioID int64, endAfter time.Time) ([]repository.SessionRow, error) {
	args := m.Called(ctx, studioID, endAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SessionRow), args.Error(1)
}

type MockStudioRepository struct {
	mock.Mock
}

func (m *MockStudioRepository) GetTimezone(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func newTestService() (*Service, *MockSessionRepository, *MockStudioRepository) {
	sessions := new(MockSessionRepository)
	studios := new(MockStudioRepository)
	svc := NewService(sessions, studios, config.SchedulingConfig{
		DefaultSessionHours: 2,
		RecentWindowDays:    14,
	})
	return svc, sessions, studios
}

func sessionRow(id int64, status string, start, end time.Time) repository.SessionRow {
	return repository.SessionRow{
		ID:         id,
		StudioID:   1,
		RoomID:     10,
		ClientID:   20,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		ClientName: "The Midnight Arcs",
		RoomName:   "Studio A",
	}
}

// Wednesday afternoon, studio on UTC.
var boardNow = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func day(dayOfMonth, hour int) time.Time {
	return time.Date(2024, 1, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

func TestScheduleView_ActiveNeverUpcoming(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(1, "scheduled", day(10, 14), day(10, 16)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Len(t, view.Active, 1)
	assert.Len(t, view.Active[0].Sessions, 1)
	assert.Equal(t, int64(1), view.Active[0].Sessions[0].ID)
	assert.Empty(t, view.Upcoming)
	assert.Empty(t, view.Recent)
}

func TestScheduleView_Buckets(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(4, "completed", time.Date(2023, 12, 20, 10, 0, 0, 0, time.UTC), time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC)),
			sessionRow(3, "completed", day(8, 10), day(8, 12)),
			sessionRow(1, "in_progress", day(10, 14), day(10, 16)),
			sessionRow(2, "scheduled", day(11, 10), day(11, 12)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Len(t, view.Active, 1)
	assert.Equal(t, int64(1), view.Active[0].Sessions[0].ID)
	assert.Len(t, view.Upcoming, 1)
	assert.Equal(t, int64(2), view.Upcoming[0].Sessions[0].ID)
	assert.Len(t, view.Recent, 1)
	assert.Equal(t, int64(3), view.Recent[0].Sessions[0].ID)
	// Session 4 finished before the trailing window opened.
	for _, g := range view.Recent {
		for _, row := range g.Sessions {
			assert.NotEqual(t, int64(4), row.ID)
		}
	}
}

func TestScheduleView_FinishedEarlierTodayListsTwice(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(5, "completed", day(10, 9), day(10, 11)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	// A session that wrapped earlier today keeps its slot in the day list
	// and also shows under recent.
	assert.NoError(t, err)
	assert.Empty(t, view.Active)
	assert.Len(t, view.Upcoming, 1)
	assert.Equal(t, int64(5), view.Upcoming[0].Sessions[0].ID)
	assert.Len(t, view.Recent, 1)
	assert.Equal(t, int64(5), view.Recent[0].Sessions[0].ID)
}

func TestScheduleView_HeadersRelativeThenAbsolute(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(1, "scheduled", day(10, 16), day(10, 18)),
			sessionRow(2, "scheduled", day(11, 10), day(11, 12)),
			sessionRow(3, "scheduled", day(15, 10), day(15, 12)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Len(t, view.Upcoming, 3)
	assert.Equal(t, "Today", view.Upcoming[0].Header)
	assert.Equal(t, "Tomorrow", view.Upcoming[1].Header)
	assert.Equal(t, "Monday, January 15", view.Upcoming[2].Header)
}

func TestScheduleView_SingleDayBucketDropsHeaders(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(1, "scheduled", day(11, 10), day(11, 12)),
			sessionRow(2, "scheduled", day(11, 14), day(11, 16)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Len(t, view.Upcoming, 1)
	assert.Empty(t, view.Upcoming[0].Header)
	assert.Len(t, view.Upcoming[0].Sessions, 2)
}

func TestScheduleView_RecentNewestFinishFirst(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(1, "completed", day(8, 10), day(8, 12)),
			sessionRow(2, "completed", day(9, 16), day(9, 18)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Len(t, view.Recent, 2)
	assert.Equal(t, "2024-01-09", view.Recent[0].DayKey)
	assert.Equal(t, "2024-01-08", view.Recent[1].DayKey)
}

func TestScheduleView_CancelledNeverListed(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.Anything).
		Return([]repository.SessionRow{
			sessionRow(1, "cancelled", day(10, 14), day(10, 16)),
		}, nil)

	view, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	assert.Empty(t, view.Active)
	assert.Empty(t, view.Upcoming)
	assert.Empty(t, view.Recent)
}

func TestScheduleView_WindowFloorBoundsQuery(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(1)).Return("UTC", nil)
	sessions.On("ListWindow", mock.Anything, int64(1), mock.MatchedBy(func(tm time.Time) bool {
		return tm.Equal(time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC))
	})).Return([]repository.SessionRow{}, nil)

	_, err := svc.ScheduleView(context.Background(), 1, boardNow)

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestScheduleView_UnknownStudio(t *testing.T) {
	svc, sessions, studios := newTestService()
	studios.On("GetTimezone", mock.Anything, int64(9)).Return("", gorm.ErrRecordNotFound)

	_, err := svc.ScheduleView(context.Background(), 9, boardNow)

	assert.ErrorIs(t, err, ErrNotFound)
	sessions.AssertNotCalled(t, "ListWindow", mock.Anything, mock.Anything, mock.Anything)
}
