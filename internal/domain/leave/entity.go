package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Type enumerates leave kinds. Unpaid leave and external duty never draw down
// the annual balance.
type Type string

const (
	TypeAnnual       Type = "annual"
	TypeUnpaid       Type = "unpaid"
	TypeExternalDuty Type = "external_duty"
	TypeSick         Type = "sick"
	TypeMarriage     Type = "marriage"
	TypeBereavement  Type = "bereavement"
)

// Deductible reports whether days of this type count against the annual
// entitlement.
func (t Type) Deductible() bool {
	return t != TypeUnpaid && t != TypeExternalDuty
}

// Request is a leave request ("izin talebi"). ReturnDate is the return-to-work
// day: the employee is expected back at work that day, so it is never counted
// as a leave day. DayCount is derived from the business-day rule and is not
// independently authoritative.
type Request struct {
	ID         string
	EmployeeID int64

	StartDate  time.Time
	ReturnDate time.Time
	DayCount   int

	Type   Type
	Reason string

	Status          RequestStatus
	ApproverID      *int64
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
