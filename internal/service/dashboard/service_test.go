package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadrolabs/hr-backend-go/internal/domain/dashboard"
)

type fakeRepository struct {
	headline    *dashboard.HeadlineStats
	headlineErr error
}

func (f *fakeRepository) GetHeadlineStats(context.Context) (*dashboard.HeadlineStats, error) {
	if f.headlineErr != nil {
		return nil, f.headlineErr
	}
	return f.headline, nil
}

func (f *fakeRepository) GetHeadcountByDepartment(context.Context) ([]dashboard.DepartmentStat, error) {
	return []dashboard.DepartmentStat{
		{DepartmentID: 20, DepartmentName: "Engineering", Headcount: 48},
		{DepartmentID: 30, DepartmentName: "HR", Headcount: 6},
	}, nil
}

func (f *fakeRepository) GetHeadcountByLevel(context.Context) ([]dashboard.LevelStat, error) {
	return []dashboard.LevelStat{{LevelName: "Genel Müdür", LevelRank: 1, Headcount: 1}}, nil
}

func (f *fakeRepository) GetLeaveDaysByType(_ context.Context, year int) ([]dashboard.LeaveTypeStat, error) {
	return []dashboard.LeaveTypeStat{{LeaveType: "annual", TotalDays: 240, Requests: 61}}, nil
}

func (f *fakeRepository) GetMonthlyLeaveDays(_ context.Context, year int) ([]dashboard.MonthlyLeaveStat, error) {
	return []dashboard.MonthlyLeaveStat{{Month: "2024-07", TotalDays: 88}}, nil
}

func TestGetOverview(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{
		headline: &dashboard.HeadlineStats{
			Total:               120,
			Active:              112,
			PendingRequests:     9,
			AverageServiceYears: decimal.RequireFromString("4.25"),
		},
	}
	service := NewDashboardService(repo)
	service.now = func() time.Time { return time.Date(2024, 8, 1, 10, 30, 0, 0, time.UTC) }

	overview, err := service.GetOverview(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, int64(120), overview.Headline.TotalEmployees)
	assert.Equal(t, int64(9), overview.Headline.PendingRequests)
	assert.Equal(t, 2024, overview.Year)
	assert.Equal(t, "2024-08-01T10:30:00Z", overview.GeneratedAtUTC)
	require.Len(t, overview.ByDepartment, 2)
	assert.Equal(t, "Engineering", overview.ByDepartment[0].DepartmentName)
	require.Len(t, overview.LeaveByType, 1)
	assert.Equal(t, int64(240), overview.LeaveByType[0].TotalDays)
	require.Len(t, overview.MonthlyLeave, 1)
	assert.Equal(t, "2024-07", overview.MonthlyLeave[0].Month)
}

func TestGetOverviewPropagatesErrors(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{headlineErr: errors.New("connection reset")}
	service := NewDashboardService(repo)

	_, err := service.GetOverview(context.Background(), 2024)
	assert.Error(t, err)
}
