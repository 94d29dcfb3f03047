package leave

import (
	"context"
	"time"
)

// RequestRepository persists leave requests. Status transitions happen exactly
// once; UpdateStatus is expected to fail with ErrRequestNotFound for unknown
// ids and to leave terminal rows untouched.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error)
	// ListByEmployeeAndYear returns requests whose start date falls in year.
	ListByEmployeeAndYear(ctx context.Context, employeeID int64, year int) ([]Request, error)
	// ListOpenByEmployee returns requests with status pending or approved.
	ListOpenByEmployee(ctx context.Context, employeeID int64) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID *int64, rejectionReason *string, decidedAt time.Time) error
}
