package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
)

// HeadlineStats combines the top-card counters in a single query.
type HeadlineStats struct {
	Total               int64
	Active              int64
	PendingRequests     int64
	AverageServiceYears decimal.Decimal
}

// DepartmentStat is one group of the headcount-by-department aggregation.
type DepartmentStat struct {
	DepartmentID   int64
	DepartmentName string
	Headcount      int64
}

// LevelStat is one group of the headcount-by-level aggregation.
type LevelStat struct {
	LevelName string
	LevelRank int
	Headcount int64
}

// LeaveTypeStat is one group of the approved-days-by-type aggregation.
type LeaveTypeStat struct {
	LeaveType string
	TotalDays int64
	Requests  int64
}

// MonthlyLeaveStat is one group of the approved-days-per-month aggregation.
type MonthlyLeaveStat struct {
	Month     string
	TotalDays int64
}

// Repository defines the read-only aggregation queries behind the dashboard.
type Repository interface {
	GetHeadlineStats(ctx context.Context) (*HeadlineStats, error)
	GetHeadcountByDepartment(ctx context.Context) ([]DepartmentStat, error)
	GetHeadcountByLevel(ctx context.Context) ([]LevelStat, error)
	GetLeaveDaysByType(ctx context.Context, year int) ([]LeaveTypeStat, error)
	GetMonthlyLeaveDays(ctx context.Context, year int) ([]MonthlyLeaveStat, error)
}
