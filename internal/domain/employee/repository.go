package employee

import "context"

// Repository is the read surface over the personnel store. Writes stay with
// the HR record-keeping layer; the leave rules never mutate employees.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Detail, error)
	ListActive(ctx context.Context) ([]Detail, error)
	ListActiveByLevelRank(ctx context.Context, rank int) ([]Detail, error)
	ListActiveByDepartment(ctx context.Context, departmentID int64) ([]Detail, error)
	ListDirectReports(ctx context.Context, managerID int64) ([]Detail, error)
}
