package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kadrolabs/hr-backend-go/internal/domain/employee"
	"github.com/kadrolabs/hr-backend-go/internal/domain/leave"
	"github.com/kadrolabs/hr-backend-go/internal/repository/memory"
	"github.com/kadrolabs/hr-backend-go/internal/service/leaverule"
)

const (
	testManagerID  int64 = 1
	testEngineerID int64 = 2
	testNewHireID  int64 = 3
	testPeerID     int64 = 4
)

type fixture struct {
	service  *RequestService
	requests *memory.LeaveRequestRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	managerID := testManagerID
	employees := memory.NewEmployeeRepository()
	employees.Put(employee.Detail{
		Employee: employee.Employee{
			ID:       testManagerID,
			FullName: "Manager",
			HireDate: time.Date(2012, 4, 2, 0, 0, 0, 0, time.UTC),
			Active:   true,
		},
		DepartmentID:   1,
		DepartmentName: "Engineering",
		LevelName:      "Müdür",
		LevelRank:      3,
	})
	employees.Put(employee.Detail{
		Employee: employee.Employee{
			ID:        testEngineerID,
			FullName:  "Engineer",
			HireDate:  time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC),
			Active:    true,
			ManagerID: &managerID,
		},
		DepartmentID:   1,
		DepartmentName: "Engineering",
		LevelName:      "Uzman",
		LevelRank:      5,
	})
	employees.Put(employee.Detail{
		Employee: employee.Employee{
			ID:        testNewHireID,
			FullName:  "New Hire",
			HireDate:  time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			Active:    true,
			ManagerID: &managerID,
		},
		DepartmentID:   1,
		DepartmentName: "Engineering",
		LevelName:      "Asistan",
		LevelRank:      6,
	})
	employees.Put(employee.Detail{
		Employee: employee.Employee{
			ID:        testPeerID,
			FullName:  "Peer",
			HireDate:  time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC),
			Active:    true,
			ManagerID: &managerID,
		},
		DepartmentID:   1,
		DepartmentName: "Engineering",
		LevelName:      "Uzman",
		LevelRank:      5,
	})

	requests := memory.NewLeaveRequestRepository()
	rules := leaverule.NewEngine(employees, requests, zap.NewNop())
	service := NewRequestService(requests, rules, zap.NewNop())
	service.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	return fixture{service: service, requests: requests}
}

func TestSubmitComputesDayCount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.service.Submit(context.Background(), leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), // Monday
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), // Friday
		Type:       leave.TypeAnnual,
		Reason:     "family visit",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 4, created.DayCount, "return Friday is not a leave day")
	assert.Equal(t, leave.RequestStatusPending, created.Status)

	stored, err := f.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.DayCount, stored.DayCount)
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 6, 8, 0, 0, 0, time.UTC), // Saturday
		Return:     time.Date(2024, 4, 6, 17, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	assert.ErrorIs(t, err, leave.ErrZeroDayRequest)

	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.Type("sabbatical"),
	})
	assert.Error(t, err)
}

func TestSubmitRejectsOverlap(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeUnpaid,
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)

	// A different employee is unaffected.
	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testPeerID,
		Start:      time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	assert.NoError(t, err)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// Hired 2024-01-08: no completed service year, so no entitlement yet.
	_, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testNewHireID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// Unpaid leave does not draw down the balance and stays allowed.
	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testNewHireID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeUnpaid,
	})
	assert.NoError(t, err)
}

func TestSubmitBalanceFollowsRequestYear(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// Hired 2024-01-08: nothing left this year, but a request starting after
	// the first anniversary draws on that year's entitlement, not today's.
	created, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testNewHireID,
		Start:      time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), // Monday
		Return:     time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC), // Friday
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.DayCount)
	assert.Equal(t, leave.RequestStatusPending, created.Status)
}

func TestApproveLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)

	// A peer with equal rank is not an authorized approver.
	_, err = f.service.Approve(ctx, created.ID, testPeerID)
	assert.ErrorIs(t, err, leave.ErrNotAuthorizedApprover)

	approved, err := f.service.Approve(ctx, created.ID, testManagerID)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, testManagerID, *approved.ApproverID)
	assert.NotNil(t, approved.ApprovedAt)

	// Terminal states are never revisited.
	_, err = f.service.Approve(ctx, created.ID, testManagerID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestApproveUnknownRequest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.service.Approve(context.Background(), "b2a7103e-c5a8-4e18-b648-21ffb02a71f3", testManagerID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestRejectLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)

	_, err = f.service.Reject(ctx, leave.RejectRequest{RequestID: created.ID, ApproverID: testManagerID})
	assert.Error(t, err, "rejection requires a reason")

	rejected, err := f.service.Reject(ctx, leave.RejectRequest{
		RequestID:  created.ID,
		ApproverID: testManagerID,
		Reason:     "staffing shortage that week",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "staffing shortage that week", *rejected.RejectionReason)

	_, err = f.service.Reject(ctx, leave.RejectRequest{
		RequestID:  created.ID,
		ApproverID: testManagerID,
		Reason:     "second attempt",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// Rejected requests free the window for a new submission.
	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	assert.NoError(t, err)
}

func TestHistoryNewestFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, leave.SubmitRequest{
		EmployeeID: testEngineerID,
		Start:      time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Return:     time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeAnnual,
	})
	require.NoError(t, err)

	history, err := f.service.History(ctx, testEngineerID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].StartDate.After(history[1].StartDate))
}
