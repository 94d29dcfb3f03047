package leave

import (
	"time"

	"github.com/kadrolabs/hr-backend-go/internal/pkg/validator"
)

// SubmitRequest carries a new leave request. Start and Return are instants
// (the requester may pick times of day); the authoritative day count is
// computed server-side from their localized calendar dates.
type SubmitRequest struct {
	EmployeeID int64
	Start      time.Time
	Return     time.Time
	Type       Type
	Reason     string
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}
	if r.Start.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start date is required",
		})
	}
	if r.Return.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "return",
			Message: "return date is required",
		})
	}
	switch r.Type {
	case TypeAnnual, TypeUnpaid, TypeExternalDuty, TypeSick, TypeMarriage, TypeBereavement:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "unknown leave type",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RejectRequest carries a rejection decision.
type RejectRequest struct {
	RequestID  string
	ApproverID int64
	Reason     string
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request id is required",
		})
	}
	if r.ApproverID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Summary is the per-employee balance record rendered by balance widgets.
type Summary struct {
	EmployeeID  int64
	Year        int
	Entitlement int
	Consumed    int
	Pending     int
	Remaining   int
}
