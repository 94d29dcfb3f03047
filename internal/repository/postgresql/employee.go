package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kadrolabs/hr-backend-go/internal/domain/employee"
	"github.com/kadrolabs/hr-backend-go/internal/pkg/database"
)

const employeeDetailColumns = `
		e.id, e.full_name, e.hire_date, e.termination_date, e.active,
		e.position_id, e.manager_id, e.monthly_salary, e.created_at, e.updated_at,
		p.title, d.id, d.name, l.name, l.rank`

const employeeDetailFrom = `
	FROM employees e
	INNER JOIN positions p ON p.id = e.position_id
	INNER JOIN departments d ON d.id = p.department_id
	INNER JOIN levels l ON l.id = p.level_id`

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Detail, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeDetailColumns + employeeDetailFrom + `
	WHERE e.id = $1`

	row := q.QueryRow(ctx, query, id)
	detail, err := scanEmployeeDetail(row)
	if err != nil {
		return employee.Detail{}, err
	}
	return detail, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Detail, error) {
	query := `SELECT ` + employeeDetailColumns + employeeDetailFrom + `
	WHERE e.active
	ORDER BY e.id`

	return r.queryDetails(ctx, query)
}

func (r *employeeRepositoryImpl) ListActiveByLevelRank(ctx context.Context, rank int) ([]employee.Detail, error) {
	query := `SELECT ` + employeeDetailColumns + employeeDetailFrom + `
	WHERE e.active AND l.rank = $1
	ORDER BY e.id`

	return r.queryDetails(ctx, query, rank)
}

func (r *employeeRepositoryImpl) ListActiveByDepartment(ctx context.Context, departmentID int64) ([]employee.Detail, error) {
	query := `SELECT ` + employeeDetailColumns + employeeDetailFrom + `
	WHERE e.active AND d.id = $1
	ORDER BY e.id`

	return r.queryDetails(ctx, query, departmentID)
}

func (r *employeeRepositoryImpl) ListDirectReports(ctx context.Context, managerID int64) ([]employee.Detail, error) {
	query := `SELECT ` + employeeDetailColumns + employeeDetailFrom + `
	WHERE e.manager_id = $1
	ORDER BY e.id`

	return r.queryDetails(ctx, query, managerID)
}

func (r *employeeRepositoryImpl) queryDetails(ctx context.Context, query string, args ...interface{}) ([]employee.Detail, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var details []employee.Detail
	for rows.Next() {
		detail, err := scanEmployeeDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return details, nil
}

type row interface {
	Scan(dest ...interface{}) error
}

func scanEmployeeDetail(r row) (employee.Detail, error) {
	var detail employee.Detail
	var salary decimal.NullDecimal

	err := r.Scan(
		&detail.ID,
		&detail.FullName,
		&detail.HireDate,
		&detail.TerminationDate,
		&detail.Active,
		&detail.PositionID,
		&detail.ManagerID,
		&salary,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.PositionTitle,
		&detail.DepartmentID,
		&detail.DepartmentName,
		&detail.LevelName,
		&detail.LevelRank,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Detail{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Detail{}, fmt.Errorf("scan employee: %w", err)
	}

	if salary.Valid {
		detail.MonthlySalary = &salary.Decimal
	}
	return detail, nil
}
