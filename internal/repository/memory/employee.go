// Package memory provides in-memory repository implementations used by tests
// and the CLI's fixture mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kadrolabs/hr-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[int64]employee.Detail
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[int64]employee.Detail)}
}

// Put inserts or replaces an employee record.
func (r *EmployeeRepository) Put(detail employee.Detail) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[detail.ID] = detail
}

func (r *EmployeeRepository) GetByID(_ context.Context, id int64) (employee.Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detail, ok := r.employees[id]
	if !ok {
		return employee.Detail{}, employee.ErrEmployeeNotFound
	}
	return detail, nil
}

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Detail, error) {
	return r.list(func(d employee.Detail) bool { return d.Active }), nil
}

func (r *EmployeeRepository) ListActiveByLevelRank(_ context.Context, rank int) ([]employee.Detail, error) {
	return r.list(func(d employee.Detail) bool { return d.Active && d.LevelRank == rank }), nil
}

func (r *EmployeeRepository) ListActiveByDepartment(_ context.Context, departmentID int64) ([]employee.Detail, error) {
	return r.list(func(d employee.Detail) bool { return d.Active && d.DepartmentID == departmentID }), nil
}

func (r *EmployeeRepository) ListDirectReports(_ context.Context, managerID int64) ([]employee.Detail, error) {
	return r.list(func(d employee.Detail) bool {
		return d.ManagerID != nil && *d.ManagerID == managerID
	}), nil
}

func (r *EmployeeRepository) list(keep func(employee.Detail) bool) []employee.Detail {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []employee.Detail
	for _, d := range r.employees {
		if keep(d) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
