package leave

import "errors"

var (
	ErrRequestNotFound       = errors.New("leave request not found")
	ErrAlreadyProcessed      = errors.New("leave request already processed")
	ErrInvalidDateRange      = errors.New("return date must not precede start date")
	ErrZeroDayRequest        = errors.New("requested range contains no business days")
	ErrOverlappingRequest    = errors.New("overlapping leave request exists")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrNotAuthorizedApprover = errors.New("employee is not an authorized approver for this request")
)
