// Package employee exposes read-only directory lookups over the personnel
// store. Record mutation (hires, transfers, terminations) stays with the HR
// record-keeping layer.
package employee

import (
	"context"
	"fmt"

	"github.com/kadrolabs/hr-backend-go/internal/domain/employee"
)

type DirectoryService struct {
	employees employee.Repository
}

func NewDirectoryService(employees employee.Repository) *DirectoryService {
	return &DirectoryService{employees: employees}
}

func (s *DirectoryService) GetByID(ctx context.Context, id int64) (employee.Detail, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *DirectoryService) ListActive(ctx context.Context) ([]employee.Detail, error) {
	details, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	return details, nil
}

// DirectReports returns the employees whose manager reference points at
// managerID, including inactive ones.
func (s *DirectoryService) DirectReports(ctx context.Context, managerID int64) ([]employee.Detail, error) {
	reports, err := s.employees.ListDirectReports(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list direct reports: %w", err)
	}
	return reports, nil
}

// DepartmentRoster returns the active employees of one department.
func (s *DirectoryService) DepartmentRoster(ctx context.Context, departmentID int64) ([]employee.Detail, error) {
	roster, err := s.employees.ListActiveByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department roster: %w", err)
	}
	return roster, nil
}
