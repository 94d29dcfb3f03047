package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/kadrolabs/hr-backend-go/internal/domain/dashboard"
)

type DashboardService struct {
	repo dashboard.Repository
	now  func() time.Time
}

func NewDashboardService(repo dashboard.Repository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// GetOverview assembles the main HR dashboard for one year.
func (s *DashboardService) GetOverview(ctx context.Context, year int) (dashboard.OverviewResponse, error) {
	headline, err := s.repo.GetHeadlineStats(ctx)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("headline stats: %w", err)
	}

	byDepartment, err := s.repo.GetHeadcountByDepartment(ctx)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("headcount by department: %w", err)
	}

	byLevel, err := s.repo.GetHeadcountByLevel(ctx)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("headcount by level: %w", err)
	}

	leaveByType, err := s.repo.GetLeaveDaysByType(ctx, year)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("leave days by type: %w", err)
	}

	monthly, err := s.repo.GetMonthlyLeaveDays(ctx, year)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("monthly leave days: %w", err)
	}

	resp := dashboard.OverviewResponse{
		Headline: dashboard.HeadlineResponse{
			TotalEmployees:      headline.Total,
			ActiveEmployees:     headline.Active,
			PendingRequests:     headline.PendingRequests,
			AverageServiceYears: headline.AverageServiceYears,
		},
		Year:           year,
		GeneratedAtUTC: s.now().UTC().Format(time.RFC3339),
	}

	for _, d := range byDepartment {
		resp.ByDepartment = append(resp.ByDepartment, dashboard.DepartmentHeadcount{
			DepartmentID:   d.DepartmentID,
			DepartmentName: d.DepartmentName,
			Headcount:      d.Headcount,
		})
	}
	for _, l := range byLevel {
		resp.ByLevel = append(resp.ByLevel, dashboard.LevelHeadcount{
			LevelName: l.LevelName,
			LevelRank: l.LevelRank,
			Headcount: l.Headcount,
		})
	}
	for _, lt := range leaveByType {
		resp.LeaveByType = append(resp.LeaveByType, dashboard.LeaveTypeDaysResponse{
			LeaveType: lt.LeaveType,
			TotalDays: lt.TotalDays,
			Requests:  lt.Requests,
		})
	}
	for _, m := range monthly {
		resp.MonthlyLeave = append(resp.MonthlyLeave, dashboard.MonthlyLeaveResponse{
			Month:     m.Month,
			TotalDays: m.TotalDays,
		})
	}

	return resp, nil
}
