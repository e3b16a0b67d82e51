package service

import (
	"context"
	"time"

	"tavola/internal/dto"
	"tavola/internal/model"
	"tavola/internal/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type StaffService interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, skip, limit int) ([]dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id uint) (*dto.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id uint, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id uint) error

	CheckIn(ctx context.Context, employeeID uint, notes string) (*dto.AttendanceResponse, error)
	CheckOut(ctx context.Context, attendanceID uint) (*dto.AttendanceResponse, error)
	ListAttendance(ctx context.Context, employeeID uint) ([]dto.AttendanceResponse, error)

	RequestLeave(ctx context.Context, employeeID uint, req dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	ListLeaves(ctx context.Context, filter dto.LeaveFilter) ([]dto.LeaveResponse, error)
	UpdateLeaveStatus(ctx context.Context, id uint, status string) (*dto.LeaveResponse, error)
}

type staffService struct {
	repo  repository.StaffRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewStaffService(repo repository.StaffRepository, users repository.UserRepository) StaffService {
	return &staffService{repo: repo, users: users, now: time.Now}
}

// ── Employees ────────────────────────────────────────────────────────────────

func (s *staffService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, translate(err, "user")
	}
	if _, err := s.repo.FindEmployeeByUserID(ctx, req.UserID); err == nil {
		return nil, newError(ErrConflict, "user %d already has an employee profile", req.UserID)
	} else if !isNotFound(err) {
		return nil, err
	}
	if req.Salary.Valid && req.Salary.Decimal.IsNegative() {
		return nil, newError(ErrValidation, "salary must not be negative")
	}

	e := &model.Employee{
		UserID:   req.UserID,
		Phone:    req.Phone,
		Address:  req.Address,
		HireDate: req.HireDate,
		Position: req.Position,
		Salary:   req.Salary,
	}
	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, translate(err, "employee")
	}
	e.User = user
	resp := employeeToResponse(*e, 0)
	return &resp, nil
}

func (s *staffService) ListEmployees(ctx context.Context, skip, limit int) ([]dto.EmployeeResponse, error) {
	list, err := s.repo.ListEmployees(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, employeeToResponse), nil
}

func (s *staffService) GetEmployee(ctx context.Context, id uint) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, translate(err, "employee")
	}
	resp := employeeToResponse(*e, 0)
	return &resp, nil
}

func (s *staffService) UpdateEmployee(ctx context.Context, id uint, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, translate(err, "employee")
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.HireDate != nil {
		e.HireDate = *req.HireDate
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return nil, newError(ErrValidation, "salary must not be negative")
		}
		e.Salary = decimal.NewNullDecimal(*req.Salary)
	}
	if err := s.repo.UpdateEmployee(ctx, e); err != nil {
		return nil, translate(err, "employee")
	}
	resp := employeeToResponse(*e, 0)
	return &resp, nil
}

func (s *staffService) DeleteEmployee(ctx context.Context, id uint) error {
	return translate(s.repo.DeleteEmployee(ctx, id), "employee")
}

// ── Attendance ───────────────────────────────────────────────────────────────

func (s *staffService) CheckIn(ctx context.Context, employeeID uint, notes string) (*dto.AttendanceResponse, error) {
	if _, err := s.repo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, translate(err, "employee")
	}
	a := &model.Attendance{EmployeeID: employeeID, CheckIn: s.now(), Notes: notes}
	if err := s.repo.CreateAttendance(ctx, a); err != nil {
		return nil, translate(err, "attendance")
	}
	resp := attendanceToResponse(*a, 0)
	return &resp, nil
}

func (s *staffService) CheckOut(ctx context.Context, attendanceID uint) (*dto.AttendanceResponse, error) {
	a, err := s.repo.FindAttendanceByID(ctx, attendanceID)
	if err != nil {
		return nil, translate(err, "attendance")
	}
	if a.CheckOut != nil {
		return nil, newError(ErrConflict, "attendance %d is already checked out", a.ID)
	}
	now := s.now()
	a.CheckOut = &now
	if err := s.repo.UpdateAttendance(ctx, a); err != nil {
		return nil, translate(err, "attendance")
	}
	resp := attendanceToResponse(*a, 0)
	return &resp, nil
}

func (s *staffService) ListAttendance(ctx context.Context, employeeID uint) ([]dto.AttendanceResponse, error) {
	if _, err := s.repo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, translate(err, "employee")
	}
	list, err := s.repo.ListAttendance(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, attendanceToResponse), nil
}

// ── Leave ────────────────────────────────────────────────────────────────────

func (s *staffService) RequestLeave(ctx context.Context, employeeID uint, req dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	if _, err := s.repo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, translate(err, "employee")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, newError(ErrValidation, "end_date must not be before start_date")
	}
	l := &model.Leave{
		EmployeeID: employeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     model.LeavePending,
	}
	if err := s.repo.CreateLeave(ctx, l); err != nil {
		return nil, translate(err, "leave")
	}
	resp := leaveToResponse(*l, 0)
	return &resp, nil
}

func (s *staffService) ListLeaves(ctx context.Context, filter dto.LeaveFilter) ([]dto.LeaveResponse, error) {
	list, err := s.repo.ListLeaves(ctx, filter.EmployeeID, filter.Status)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, leaveToResponse), nil
}

func (s *staffService) UpdateLeaveStatus(ctx context.Context, id uint, status string) (*dto.LeaveResponse, error) {
	if err := s.repo.UpdateLeaveStatus(ctx, id, status); err != nil {
		return nil, translate(err, "leave")
	}
	l, err := s.repo.FindLeaveByID(ctx, id)
	if err != nil {
		return nil, translate(err, "leave")
	}
	resp := leaveToResponse(*l, 0)
	return &resp, nil
}
