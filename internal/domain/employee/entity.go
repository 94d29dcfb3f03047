package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a personnel record. ManagerID is self-referential: following it
// upward forms the approval hierarchy. The schema does not guarantee the
// manager graph is acyclic, so hierarchy walks must be bounded.
type Employee struct {
	ID              int64
	FullName        string
	HireDate        time.Time
	TerminationDate *time.Time
	Active          bool
	PositionID      int64
	ManagerID       *int64
	MonthlySalary   *decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Position struct {
	ID           int64
	Title        string
	DepartmentID int64
	LevelID      int64
}

type Department struct {
	ID   int64
	Name string
}

// Level is the organizational seniority level ("kademe").
// Rank 1 is the most senior; larger ranks are less senior.
type Level struct {
	ID   int64
	Name string
	Rank int
}

const (
	// RankTopLevel marks organization-wide super-approvers (general manager).
	RankTopLevel = 1

	// RankManagerCeiling is the least senior rank still counted as
	// "manager and above" for department-level approvals.
	RankManagerCeiling = 4
)

// Detail is the flattened read model consumed by the leave rules and the
// directory: an employee joined with its position, department and level.
type Detail struct {
	Employee
	PositionTitle  string
	DepartmentID   int64
	DepartmentName string
	LevelName      string
	LevelRank      int
}
