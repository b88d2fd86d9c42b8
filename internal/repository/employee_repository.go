package repository

import (
	"context"

	"tracewing-backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByCode(ctx context.Context, code string) (*model.Employee, error)
	Create(ctx context.Context, employee *model.Employee) error
	FirstOrCreate(ctx context.Context, employee *model.Employee) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (r *employeeRepository) FindByCode(ctx context.Context, code string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("employee_code = ?", code).First(&employee).Error; err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return translate(r.db.WithContext(ctx).Create(employee).Error)
}

// FirstOrCreate is keyed on employee code and is used by the seeder.
func (r *employeeRepository) FirstOrCreate(ctx context.Context, employee *model.Employee) error {
	return translate(r.db.WithContext(ctx).
		Where(model.Employee{EmployeeCode: employee.EmployeeCode}).
		FirstOrCreate(employee).Error)
}

func (r *employeeRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return translate(r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Update("password", hash).Error)
}
