package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kadrolabs/hr-backend-go/internal/domain/leave"
)

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.Request
	now      func() time.Time
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{
		requests: make(map[string]leave.Request),
		now:      time.Now,
	}
}

func (r *LeaveRequestRepository) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := r.now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID] = req
	return req, nil
}

func (r *LeaveRequestRepository) GetByID(_ context.Context, id string) (leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (r *LeaveRequestRepository) ListByEmployee(_ context.Context, employeeID int64) ([]leave.Request, error) {
	return r.list(func(req leave.Request) bool { return req.EmployeeID == employeeID }), nil
}

func (r *LeaveRequestRepository) ListByEmployeeAndYear(_ context.Context, employeeID int64, year int) ([]leave.Request, error) {
	return r.list(func(req leave.Request) bool {
		return req.EmployeeID == employeeID && leave.Year(req.StartDate) == year
	}), nil
}

func (r *LeaveRequestRepository) ListOpenByEmployee(_ context.Context, employeeID int64) ([]leave.Request, error) {
	return r.list(func(req leave.Request) bool {
		return req.EmployeeID == employeeID && req.Status != leave.RequestStatusRejected
	}), nil
}

func (r *LeaveRequestRepository) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, approverID *int64, rejectionReason *string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}

	req.Status = status
	req.ApproverID = approverID
	req.RejectionReason = rejectionReason
	if status == leave.RequestStatusApproved {
		req.ApprovedAt = &decidedAt
	}
	req.UpdatedAt = decidedAt
	r.requests[id] = req
	return nil
}

func (r *LeaveRequestRepository) list(keep func(leave.Request) bool) []leave.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.Request
	for _, req := range r.requests {
		if keep(req) {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result
}
