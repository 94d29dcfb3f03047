package dashboard

import "github.com/shopspring/decimal"

// ========== COMBINED DASHBOARD ==========

// OverviewResponse is the combined response for the main HR dashboard.
type OverviewResponse struct {
	Headline       HeadlineResponse        `json:"headline"`
	ByDepartment   []DepartmentHeadcount   `json:"by_department"`
	ByLevel        []LevelHeadcount        `json:"by_level"`
	LeaveByType    []LeaveTypeDaysResponse `json:"leave_by_type"`
	MonthlyLeave   []MonthlyLeaveResponse  `json:"monthly_leave"`
	Year           int                     `json:"year"`
	GeneratedAtUTC string                  `json:"generated_at_utc"`
}

// ========== HEADLINE CARDS ==========

// HeadlineResponse contains the top-card counters.
type HeadlineResponse struct {
	TotalEmployees      int64           `json:"total_employees"`
	ActiveEmployees     int64           `json:"active_employees"`
	PendingRequests     int64           `json:"pending_requests"`
	AverageServiceYears decimal.Decimal `json:"average_service_years"`
}

// ========== HEADCOUNT CHARTS ==========

// DepartmentHeadcount is one bar of the headcount-by-department chart.
type DepartmentHeadcount struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Headcount      int64  `json:"headcount"`
}

// LevelHeadcount is one bar of the headcount-by-level chart.
type LevelHeadcount struct {
	LevelName string `json:"level_name"`
	LevelRank int    `json:"level_rank"`
	Headcount int64  `json:"headcount"`
}

// ========== LEAVE CHARTS ==========

// LeaveTypeDaysResponse is one slice of the approved-days-by-type pie chart.
type LeaveTypeDaysResponse struct {
	LeaveType string `json:"leave_type"`
	TotalDays int64  `json:"total_days"`
	Requests  int64  `json:"requests"`
}

// MonthlyLeaveResponse is one point of the approved-days-per-month line chart.
type MonthlyLeaveResponse struct {
	Month     string `json:"month"` // Format: "YYYY-MM"
	TotalDays int64  `json:"total_days"`
}
