package repository

import (
	"context"

	"tavola/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StaffRepository covers employees, their attendance records and leave requests.
type StaffRepository interface {
	CreateEmployee(ctx context.Context, e *model.Employee) error
	FindEmployeeByID(ctx context.Context, id uint) (*model.Employee, error)
	FindEmployeeByUserID(ctx context.Context, userID uint) (*model.Employee, error)
	ListEmployees(ctx context.Context, skip, limit int) ([]model.Employee, error)
	UpdateEmployee(ctx context.Context, e *model.Employee) error
	DeleteEmployee(ctx context.Context, id uint) error

	CreateAttendance(ctx context.Context, a *model.Attendance) error
	FindAttendanceByID(ctx context.Context, id uint) (*model.Attendance, error)
	ListAttendance(ctx context.Context, employeeID uint) ([]model.Attendance, error)
	UpdateAttendance(ctx context.Context, a *model.Attendance) error

	CreateLeave(ctx context.Context, l *model.Leave) error
	FindLeaveByID(ctx context.Context, id uint) (*model.Leave, error)
	ListLeaves(ctx context.Context, employeeID *uint, status string) ([]model.Leave, error)
	UpdateLeaveStatus(ctx context.Context, id uint, status string) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) CreateEmployee(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *staffRepo) FindEmployeeByID(ctx context.Context, id uint) (*model.Employee, error) {
	var e model.Employee
	if err := r.db.WithContext(ctx).Preload("User").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *staffRepo) FindEmployeeByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	var e model.Employee
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *staffRepo) ListEmployees(ctx context.Context, skip, limit int) ([]model.Employee, error) {
	skip, limit = page(skip, limit)
	var list []model.Employee
	err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, err
}

func (r *staffRepo) UpdateEmployee(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *staffRepo) DeleteEmployee(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&model.Leave{}).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &model.Employee{}, id)
	})
}

func (r *staffRepo) CreateAttendance(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *staffRepo) FindAttendanceByID(ctx context.Context, id uint) (*model.Attendance, error) {
	var a model.Attendance
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *staffRepo) ListAttendance(ctx context.Context, employeeID uint) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("check_in DESC").Find(&list).Error
	return list, err
}

func (r *staffRepo) UpdateAttendance(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *staffRepo) CreateLeave(ctx context.Context, l *model.Leave) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *staffRepo) FindLeaveByID(ctx context.Context, id uint) (*model.Leave, error) {
	var l model.Leave
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *staffRepo) ListLeaves(ctx context.Context, employeeID *uint, status string) ([]model.Leave, error) {
	q := r.db.WithContext(ctx).Model(&model.Leave{})
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []model.Leave
	err := q.Order("start_date DESC").Find(&list).Error
	return list, err
}

func (r *staffRepo) UpdateLeaveStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Leave{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
