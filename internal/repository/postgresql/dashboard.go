package postgresql

import (
	"context"
	"fmt"

	"github.com/kadrolabs/hr-backend-go/internal/domain/dashboard"
	"github.com/kadrolabs/hr-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db database.Querier
}

func NewDashboardRepository(db database.Querier) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

// GetHeadlineStats returns the top-card counters in a single query.
func (r *dashboardRepositoryImpl) GetHeadlineStats(ctx context.Context) (*dashboard.HeadlineStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active,
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending') AS pending_requests,
			COALESCE(ROUND(AVG(EXTRACT(EPOCH FROM (NOW() - hire_date)) / 31557600.0)::numeric, 2), 0) AS avg_service_years
		FROM employees
	`

	var stats dashboard.HeadlineStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.PendingRequests, &stats.AverageServiceYears,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get headline stats: %w", err)
	}
	return &stats, nil
}

// GetHeadcountByDepartment groups active employees by department.
func (r *dashboardRepositoryImpl) GetHeadcountByDepartment(ctx context.Context) ([]dashboard.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, COUNT(e.id) AS headcount
		FROM departments d
		LEFT JOIN positions p ON p.department_id = d.id
		LEFT JOIN employees e ON e.position_id = p.id AND e.active
		GROUP BY d.id, d.name
		ORDER BY headcount DESC, d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get headcount by department: %w", err)
	}
	defer rows.Close()

	var stats []dashboard.DepartmentStat
	for rows.Next() {
		var s dashboard.DepartmentStat
		if err := rows.Scan(&s.DepartmentID, &s.DepartmentName, &s.Headcount); err != nil {
			return nil, fmt.Errorf("failed to scan department stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department stats: %w", err)
	}
	return stats, nil
}

// GetHeadcountByLevel groups active employees by seniority level.
func (r *dashboardRepositoryImpl) GetHeadcountByLevel(ctx context.Context) ([]dashboard.LevelStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.name, l.rank, COUNT(e.id) AS headcount
		FROM levels l
		LEFT JOIN positions p ON p.level_id = l.id
		LEFT JOIN employees e ON e.position_id = p.id AND e.active
		GROUP BY l.name, l.rank
		ORDER BY l.rank
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get headcount by level: %w", err)
	}
	defer rows.Close()

	var stats []dashboard.LevelStat
	for rows.Next() {
		var s dashboard.LevelStat
		if err := rows.Scan(&s.LevelName, &s.LevelRank, &s.Headcount); err != nil {
			return nil, fmt.Errorf("failed to scan level stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate level stats: %w", err)
	}
	return stats, nil
}

// GetLeaveDaysByType sums approved leave days per type for one year.
func (r *dashboardRepositoryImpl) GetLeaveDaysByType(ctx context.Context, year int) ([]dashboard.LeaveTypeStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, COALESCE(SUM(day_count), 0) AS total_days, COUNT(*) AS requests
		FROM leave_requests
		WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date AT TIME ZONE 'Europe/Istanbul') = $1
		GROUP BY leave_type
		ORDER BY total_days DESC, leave_type
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave days by type: %w", err)
	}
	defer rows.Close()

	var stats []dashboard.LeaveTypeStat
	for rows.Next() {
		var s dashboard.LeaveTypeStat
		if err := rows.Scan(&s.LeaveType, &s.TotalDays, &s.Requests); err != nil {
			return nil, fmt.Errorf("failed to scan leave type stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave type stats: %w", err)
	}
	return stats, nil
}

// GetMonthlyLeaveDays sums approved leave days per month for one year.
func (r *dashboardRepositoryImpl) GetMonthlyLeaveDays(ctx context.Context, year int) ([]dashboard.MonthlyLeaveStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(date_trunc('month', start_date AT TIME ZONE 'Europe/Istanbul'), 'YYYY-MM') AS month,
			   COALESCE(SUM(day_count), 0) AS total_days
		FROM leave_requests
		WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date AT TIME ZONE 'Europe/Istanbul') = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly leave days: %w", err)
	}
	defer rows.Close()

	var stats []dashboard.MonthlyLeaveStat
	for rows.Next() {
		var s dashboard.MonthlyLeaveStat
		if err := rows.Scan(&s.Month, &s.TotalDays); err != nil {
			return nil, fmt.Errorf("failed to scan monthly leave stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly leave stats: %w", err)
	}
	return stats, nil
}
