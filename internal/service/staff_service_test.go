package service_test

import (
	"context"
	"testing"
	"time"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"
	"tavola/internal/service"
	"tavola/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaff(t *testing.T) (service.StaffService, uint) {
	t.Helper()
	db := testutil.NewDB(t)
	u := &model.User{Username: "maria", Email: "maria@x.io", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return service.NewStaffService(repository.NewStaffRepository(db), repository.NewUserRepository(db)), u.ID
}

func TestEmployeeProfile(t *testing.T) {
	svc, userID := newStaff(t)
	ctx := context.Background()
	hire := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{
		UserID: userID, HireDate: hire, Position: "chef",
		Salary: decimal.NewNullDecimal(decimal.NewFromInt(-1)),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	e, err := svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{
		UserID: userID, HireDate: hire, Position: "chef",
		Salary: decimal.NewNullDecimal(decimal.NewFromInt(2400)),
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", e.Username)

	_, err = svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{UserID: userID, HireDate: hire, Position: "sous-chef"})
	assert.ErrorIs(t, err, service.ErrConflict)
	_, err = svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{UserID: 999, HireDate: hire, Position: "porter"})
	assert.ErrorIs(t, err, service.ErrNotFound)

	pos := "head chef"
	got, err := svc.UpdateEmployee(ctx, e.ID, dto.UpdateEmployeeRequest{Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, pos, got.Position)

	list, err := svc.ListEmployees(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteEmployee(ctx, e.ID))
	_, err = svc.GetEmployee(ctx, e.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAttendance(t *testing.T) {
	svc, userID := newStaff(t)
	ctx := context.Background()
	e, err := svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{UserID: userID, HireDate: time.Now(), Position: "waiter"})
	require.NoError(t, err)

	a, err := svc.CheckIn(ctx, e.ID, "morning shift")
	require.NoError(t, err)
	assert.Nil(t, a.CheckOut)

	out, err := svc.CheckOut(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	assert.False(t, out.CheckOut.Before(out.CheckIn))

	_, err = svc.CheckOut(ctx, a.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.CheckIn(ctx, 999, "")
	assert.ErrorIs(t, err, service.ErrNotFound)

	shifts, err := svc.ListAttendance(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
}

func TestLeave(t *testing.T) {
	svc, userID := newStaff(t)
	ctx := context.Background()
	e, err := svc.CreateEmployee(ctx, dto.CreateEmployeeRequest{UserID: userID, HireDate: time.Now(), Position: "waiter"})
	require.NoError(t, err)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.RequestLeave(ctx, e.ID, dto.CreateLeaveRequest{StartDate: start, EndDate: start.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, service.ErrValidation)

	l, err := svc.RequestLeave(ctx, e.ID, dto.CreateLeaveRequest{StartDate: start, EndDate: start.AddDate(0, 0, 7), Reason: "holiday"})
	require.NoError(t, err)
	assert.Equal(t, model.LeavePending, l.Status)

	approved, err := svc.UpdateLeaveStatus(ctx, l.ID, model.LeaveApproved)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveApproved, approved.Status)

	_, err = svc.UpdateLeaveStatus(ctx, 999, model.LeaveApproved)
	assert.ErrorIs(t, err, service.ErrNotFound)

	pending, err := svc.ListLeaves(ctx, dto.LeaveFilter{Status: model.LeavePending})
	require.NoError(t, err)
	assert.Empty(t, pending)
	mine, err := svc.ListLeaves(ctx, dto.LeaveFilter{EmployeeID: &e.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
