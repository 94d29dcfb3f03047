// Package leave implements the leave-request write layer. The rule engine is
// read-only; this service calls into it for validation and computed fields
// (day count, conflict flag, approver eligibility) before persisting.
package leave

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kadrolabs/hr-backend-go/internal/domain/leave"
	"github.com/kadrolabs/hr-backend-go/internal/service/leaverule"
)

type RequestService struct {
	requests leave.RequestRepository
	rules    *leaverule.Engine
	locks    *employeeLocks
	logger   *zap.Logger
	now      func() time.Time
}

func NewRequestService(requests leave.RequestRepository, rules *leaverule.Engine, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requests: requests,
		rules:    rules,
		locks:    newEmployeeLocks(),
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates a new leave request, computes its authoritative day count
// and persists it as pending. The overlap check is read-then-write, so
// submissions are serialized per employee within this process; cross-process
// submissions may still race and are reconciled at approval time.
func (s *RequestService) Submit(ctx context.Context, req leave.SubmitRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}
	if req.Return.Before(req.Start) {
		return leave.Request{}, leave.ErrInvalidDateRange
	}

	unlock := s.locks.lock(req.EmployeeID)
	defer unlock()

	days := s.rules.BusinessDays(req.Start, req.Return)
	if days == 0 {
		return leave.Request{}, leave.ErrZeroDayRequest
	}

	overlaps, err := s.rules.HasOverlap(ctx, req.EmployeeID, req.Start, req.Return, "")
	if err != nil {
		return leave.Request{}, fmt.Errorf("overlap check: %w", err)
	}
	if overlaps {
		return leave.Request{}, leave.ErrOverlappingRequest
	}

	if req.Type.Deductible() {
		// Checked as of the start date so a request for next year draws on
		// next year's entitlement, matching the re-check at approval time.
		remaining, err := s.rules.RemainingBalance(ctx, req.EmployeeID, req.Start)
		if err != nil {
			return leave.Request{}, fmt.Errorf("balance check: %w", err)
		}
		if days > remaining {
			return leave.Request{}, leave.ErrInsufficientBalance
		}
	}

	created, err := s.requests.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		StartDate:  req.Start,
		ReturnDate: req.Return,
		DayCount:   days,
		Type:       req.Type,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("create leave request: %w", err)
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", created.ID),
		zap.Int64("employee_id", created.EmployeeID),
		zap.String("type", string(created.Type)),
		zap.Int("day_count", created.DayCount))
	return created, nil
}

// Approve transitions a pending request to approved. The approver must be in
// the requester's resolved approver set, and deductible requests must still
// fit the remaining annual entitlement.
func (s *RequestService) Approve(ctx context.Context, requestID string, approverID int64) (leave.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("get leave request: %w", err)
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	allowed, err := s.rules.CanApprove(ctx, approverID, request.EmployeeID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("approver check: %w", err)
	}
	if !allowed {
		return leave.Request{}, leave.ErrNotAuthorizedApprover
	}

	if request.Type.Deductible() {
		// Pending days are not subtracted here: the request being approved is
		// itself still pending, so the check is against the approved total only.
		year := request.StartDate.Year()
		entitlement, err := s.rules.AnnualEntitlement(ctx, request.EmployeeID, request.StartDate)
		if err != nil {
			return leave.Request{}, fmt.Errorf("entitlement check: %w", err)
		}
		consumed, err := s.rules.ConsumedDays(ctx, request.EmployeeID, year)
		if err != nil {
			return leave.Request{}, fmt.Errorf("consumed check: %w", err)
		}
		if request.DayCount > entitlement-consumed {
			return leave.Request{}, leave.ErrInsufficientBalance
		}
	}

	decidedAt := s.now()
	if err := s.requests.UpdateStatus(ctx, requestID, leave.RequestStatusApproved, &approverID, nil, decidedAt); err != nil {
		return leave.Request{}, fmt.Errorf("update leave request: %w", err)
	}

	request.Status = leave.RequestStatusApproved
	request.ApproverID = &approverID
	request.ApprovedAt = &decidedAt

	s.logger.Info("leave request approved",
		zap.String("request_id", requestID),
		zap.Int64("approver_id", approverID))
	return request, nil
}

// Reject transitions a pending request to rejected with a reason.
func (s *RequestService) Reject(ctx context.Context, req leave.RejectRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("get leave request: %w", err)
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	allowed, err := s.rules.CanApprove(ctx, req.ApproverID, request.EmployeeID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("approver check: %w", err)
	}
	if !allowed {
		return leave.Request{}, leave.ErrNotAuthorizedApprover
	}

	decidedAt := s.now()
	if err := s.requests.UpdateStatus(ctx, req.RequestID, leave.RequestStatusRejected, &req.ApproverID, &req.Reason, decidedAt); err != nil {
		return leave.Request{}, fmt.Errorf("update leave request: %w", err)
	}

	request.Status = leave.RequestStatusRejected
	request.ApproverID = &req.ApproverID
	request.RejectionReason = &req.Reason

	s.logger.Info("leave request rejected",
		zap.String("request_id", req.RequestID),
		zap.Int64("approver_id", req.ApproverID))
	return request, nil
}

// History returns all requests of an employee, newest start date first.
func (s *RequestService) History(ctx context.Context, employeeID int64) ([]leave.Request, error) {
	requests, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	for i, j := 0, len(requests)-1; i < j; i, j = i+1, j-1 {
		requests[i], requests[j] = requests[j], requests[i]
	}
	return requests, nil
}
