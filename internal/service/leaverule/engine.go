// Package leaverule computes leave entitlements, balances, day counts,
// conflicts and approver sets. All operations are read-only business-rule
// computations over repository-fetched rows: a missing employee resolves to
// a zero or empty result, never an error.
package leaverule

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kadrolabs/hr-backend-go/internal/domain/employee"
	"github.com/kadrolabs/hr-backend-go/internal/domain/leave"
)

const (
	// annualLeaveDaysPerYear is granted per completed year of service.
	annualLeaveDaysPerYear = 14

	// maxManagerChainDepth bounds the manager walk. The schema does not
	// prevent cycles in the manager graph; exceeding the bound is a
	// data-integrity anomaly, not a request failure.
	maxManagerChainDepth = 50
)

type Engine struct {
	employees employee.Repository
	requests  leave.RequestRepository
	loc       *time.Location
	logger    *zap.Logger
}

func NewEngine(employees employee.Repository, requests leave.RequestRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		employees: employees,
		requests:  requests,
		loc:       leave.Location(),
		logger:    logger,
	}
}

// AnnualEntitlement returns the annual leave entitlement in days as of asOf:
// 14 days per completed year of service, counted against the hire
// anniversary. Unknown employees have no entitlement.
func (e *Engine) AnnualEntitlement(ctx context.Context, employeeID int64, asOf time.Time) (int, error) {
	emp, err := e.employees.GetByID(ctx, employeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	years := completedServiceYears(emp.HireDate, asOf)
	if years <= 0 {
		return 0, nil
	}
	return years * annualLeaveDaysPerYear, nil
}

// ConsumedDays sums the day counts of approved deductible requests starting
// in year. Unpaid leave and external duty never draw down the balance.
func (e *Engine) ConsumedDays(ctx context.Context, employeeID int64, year int) (int, error) {
	return e.sumDeductibleDays(ctx, employeeID, year, leave.RequestStatusApproved)
}

// PendingDays sums the day counts of pending deductible requests starting in
// year, with the same type exclusions as ConsumedDays.
func (e *Engine) PendingDays(ctx context.Context, employeeID int64, year int) (int, error) {
	return e.sumDeductibleDays(ctx, employeeID, year, leave.RequestStatusPending)
}

func (e *Engine) sumDeductibleDays(ctx context.Context, employeeID int64, year int, status leave.RequestStatus) (int, error) {
	requests, err := e.requests.ListByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, r := range requests {
		if r.Status != status || !r.Type.Deductible() {
			continue
		}
		total += r.DayCount
	}
	return total, nil
}

// RemainingBalance returns the days still available in asOf's year:
// entitlement minus consumed and pending deductible days, floored at zero.
func (e *Engine) RemainingBalance(ctx context.Context, employeeID int64, asOf time.Time) (int, error) {
	summary, err := e.Summary(ctx, employeeID, asOf)
	if err != nil {
		return 0, err
	}
	return summary.Remaining, nil
}

// Summary composes entitlement, consumed, pending and remaining days for
// asOf's year into one record.
func (e *Engine) Summary(ctx context.Context, employeeID int64, asOf time.Time) (leave.Summary, error) {
	year := asOf.Year()

	entitlement, err := e.AnnualEntitlement(ctx, employeeID, asOf)
	if err != nil {
		return leave.Summary{}, err
	}
	consumed, err := e.ConsumedDays(ctx, employeeID, year)
	if err != nil {
		return leave.Summary{}, err
	}
	pending, err := e.PendingDays(ctx, employeeID, year)
	if err != nil {
		return leave.Summary{}, err
	}

	remaining := entitlement - consumed - pending
	if remaining < 0 {
		remaining = 0
	}

	return leave.Summary{
		EmployeeID:  employeeID,
		Year:        year,
		Entitlement: entitlement,
		Consumed:    consumed,
		Pending:     pending,
		Remaining:   remaining,
	}, nil
}

// BusinessDays counts leave days between two instants. Both are localized to
// Turkish civil time before taking the calendar date. A same-day range is one
// day on a weekday and zero on a weekend; otherwise weekdays are counted from
// the start date up to, but excluding, the return date. The employee is back
// at work on the return date, so it is never counted.
func (e *Engine) BusinessDays(start, returnAt time.Time) int {
	startDay := civilDate(start.In(e.loc))
	returnDay := civilDate(returnAt.In(e.loc))

	if startDay.Equal(returnDay) {
		if isWeekend(startDay) {
			return 0
		}
		return 1
	}

	days := 0
	for d := startDay; d.Before(returnDay); d = d.AddDate(0, 0, 1) {
		if !isWeekend(d) {
			days++
		}
	}
	return days
}

// HasOverlap reports whether any pending or approved request for the employee
// intersects [start, end] inclusively: existing.start <= end and
// existing.return >= start. All four bounds are taken as Turkish civil dates,
// so two instants on the same local day always touch regardless of time of
// day. excludeID skips one request, used when editing.
func (e *Engine) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID string) (bool, error) {
	open, err := e.requests.ListOpenByEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}

	startDay := civilDate(start.In(e.loc))
	endDay := civilDate(end.In(e.loc))

	for _, r := range open {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		existingStart := civilDate(r.StartDate.In(e.loc))
		existingReturn := civilDate(r.ReturnDate.In(e.loc))
		if !existingStart.After(endDay) && !existingReturn.Before(startDay) {
			return true, nil
		}
	}
	return false, nil
}

// ResolveApprovers returns the employees authorized to decide the requester's
// leave: every active top-rank employee, the requester's active manager chain,
// and same-department staff ranked manager-or-above and strictly more senior
// than the requester. The result is deduplicated and sorted by id.
func (e *Engine) ResolveApprovers(ctx context.Context, employeeID int64) ([]employee.Detail, error) {
	requester, err := e.employees.GetByID(ctx, employeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	approvers := make(map[int64]employee.Detail)

	topLevel, err := e.employees.ListActiveByLevelRank(ctx, employee.RankTopLevel)
	if err != nil {
		return nil, err
	}
	for _, a := range topLevel {
		approvers[a.ID] = a
	}

	if err := e.walkManagerChain(ctx, requester, approvers); err != nil {
		return nil, err
	}

	peers, err := e.employees.ListActiveByDepartment(ctx, requester.DepartmentID)
	if err != nil {
		return nil, err
	}
	for _, p := range peers {
		if p.ID == requester.ID {
			continue
		}
		if p.LevelRank <= employee.RankManagerCeiling && p.LevelRank < requester.LevelRank {
			approvers[p.ID] = p
		}
	}

	result := make([]employee.Detail, 0, len(approvers))
	for _, a := range approvers {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// walkManagerChain follows manager references upward, collecting every active
// manager visited. The walk stops at the first missing or inactive manager,
// at a revisited id, or at the depth bound; the latter two are logged as
// data-integrity warnings and the approvers found so far are kept.
func (e *Engine) walkManagerChain(ctx context.Context, requester employee.Detail, approvers map[int64]employee.Detail) error {
	visited := map[int64]bool{requester.ID: true}
	current := requester.Employee

	for depth := 0; current.ManagerID != nil; depth++ {
		if depth >= maxManagerChainDepth {
			e.logger.Warn("manager chain exceeds depth bound, truncating walk",
				zap.Int64("employee_id", requester.ID),
				zap.Int("depth", depth))
			return nil
		}

		managerID := *current.ManagerID
		if visited[managerID] {
			e.logger.Warn("cycle in manager chain, truncating walk",
				zap.Int64("employee_id", requester.ID),
				zap.Int64("manager_id", managerID))
			return nil
		}

		manager, err := e.employees.GetByID(ctx, managerID)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !manager.Active {
			return nil
		}

		visited[managerID] = true
		approvers[managerID] = manager
		current = manager.Employee
	}
	return nil
}

// CanApprove reports whether approverID is in the requester's approver set.
func (e *Engine) CanApprove(ctx context.Context, approverID, requesterID int64) (bool, error) {
	approvers, err := e.ResolveApprovers(ctx, requesterID)
	if err != nil {
		return false, err
	}
	for _, a := range approvers {
		if a.ID == approverID {
			return true, nil
		}
	}
	return false, nil
}

// completedServiceYears counts full years of service as of asOf, decrementing
// when the hire anniversary has not yet been reached that year.
func completedServiceYears(hireDate, asOf time.Time) int {
	years := asOf.Year() - hireDate.Year()
	if asOf.Month() < hireDate.Month() ||
		(asOf.Month() == hireDate.Month() && asOf.Day() < hireDate.Day()) {
		years--
	}
	return years
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
