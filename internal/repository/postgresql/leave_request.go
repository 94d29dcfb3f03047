package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kadrolabs/hr-backend-go/internal/domain/leave"
	"github.com/kadrolabs/hr-backend-go/internal/pkg/database"
)

const leaveRequestColumns = `
		lr.id, lr.employee_id, lr.start_date, lr.return_date, lr.day_count,
		lr.leave_type, lr.reason, lr.status, lr.approver_id, lr.approved_at,
		lr.rejection_reason, lr.created_at, lr.updated_at`

type leaveRequestRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRequestRepository(db database.Querier) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, return_date, day_count,
			leave_type, reason, status, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.StartDate, request.ReturnDate, request.DayCount,
		request.Type, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("insert leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
	FROM leave_requests lr
	WHERE lr.id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
	FROM leave_requests lr
	WHERE lr.employee_id = $1
	ORDER BY lr.start_date, lr.id`

	return r.queryRequests(ctx, query, employeeID)
}

func (r *leaveRequestRepositoryImpl) ListByEmployeeAndYear(ctx context.Context, employeeID int64, year int) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
	FROM leave_requests lr
	WHERE lr.employee_id = $1 AND EXTRACT(YEAR FROM lr.start_date AT TIME ZONE 'Europe/Istanbul') = $2
	ORDER BY lr.start_date, lr.id`

	return r.queryRequests(ctx, query, employeeID, year)
}

func (r *leaveRequestRepositoryImpl) ListOpenByEmployee(ctx context.Context, employeeID int64) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
	FROM leave_requests lr
	WHERE lr.employee_id = $1 AND lr.status <> $2
	ORDER BY lr.start_date, lr.id`

	return r.queryRequests(ctx, query, employeeID, leave.RequestStatusRejected)
}

// UpdateStatus applies a terminal decision. The status guard in the query
// keeps the transition single-shot even under concurrent approvals.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, approverID *int64, rejectionReason *string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approver_id = $3,
			approved_at = CASE WHEN $2 = 'approved' THEN $4 ELSE approved_at END,
			rejection_reason = $5,
			updated_at = $4
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, approverID, decidedAt, rejectionReason)
	if err != nil {
		return fmt.Errorf("update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check leave request existence: %w", err)
		}
		if !exists {
			return leave.ErrRequestNotFound
		}
		return leave.ErrAlreadyProcessed
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) queryRequests(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}
	return requests, nil
}

func scanLeaveRequest(r row) (leave.Request, error) {
	var request leave.Request

	err := r.Scan(
		&request.ID,
		&request.EmployeeID,
		&request.StartDate,
		&request.ReturnDate,
		&request.DayCount,
		&request.Type,
		&request.Reason,
		&request.Status,
		&request.ApproverID,
		&request.ApprovedAt,
		&request.RejectionReason,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if err != nil {
		return leave.Request{}, fmt.Errorf("scan leave request: %w", err)
	}
	return request, nil
}
