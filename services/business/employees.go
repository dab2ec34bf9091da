package business

import (
	"context"
	"strings"

	"bookiteasy/models"
	"bookiteasy/services/storage"

	"go.uber.org/zap"
)

// loadEmployee fetches an employee and checks it belongs to businessID.
func (s *DefaultBusinessService) loadEmployee(ctx context.Context, businessID, employeeID string) (*models.Employee, error) {
	employee, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.BusinessID != businessID {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *DefaultBusinessService) AddEmployee(ctx context.Context, identity models.Identity, businessID string, req models.EmployeeRequest) (*models.Employee, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	employee := &models.Employee{
		ID:         s.newID(),
		BusinessID: business.ID,
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
	}
	stamp(&employee.CreatedAt, &employee.UpdatedAt, s.now())
	if err := s.Employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.logger().Info("Employee added", zap.String("businessID", business.ID), zap.String("employeeID", employee.ID))
	return employee, nil
}

func (s *DefaultBusinessService) ListEmployees(ctx context.Context, businessID string) ([]models.Employee, error) {
	if _, err := s.loadBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	employees, err := s.Employees.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (s *DefaultBusinessService) UpdateEmployee(ctx context.Context, identity models.Identity, businessID, employeeID string, req models.EmployeeRequest) (*models.Employee, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	employee, err := s.loadEmployee(ctx, business.ID, employeeID)
	if err != nil {
		return nil, err
	}
	employee.Name = strings.TrimSpace(req.Name)
	employee.Email = req.Email
	employee.Phone = req.Phone
	employee.Position = req.Position
	stamp(&employee.CreatedAt, &employee.UpdatedAt, s.now())
	if err := s.Employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee removes an employee without services, together with their hours and avatar.
func (s *DefaultBusinessService) DeleteEmployee(ctx context.Context, identity models.Identity, businessID, employeeID string) (*models.PublishStatus, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	employee, err := s.loadEmployee(ctx, business.ID, employeeID)
	if err != nil {
		return nil, err
	}
	services, err := s.Services.CountByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	if services > 0 {
		return nil, ErrEmployeeHasServices
	}

	if err := s.Employees.Delete(ctx, employee.ID); err != nil {
		return nil, err
	}
	if err := s.WorkingHours.ReplaceForOwner(ctx, models.OwnerEmployee, employee.ID, nil); err != nil {
		s.logger().Warn("Failed to clear hours of deleted employee", zap.String("employeeID", employee.ID), zap.Error(err))
	}
	s.deleteStoredImage(ctx, employee.AvatarPublicID)

	s.logger().Info("Employee deleted", zap.String("businessID", business.ID), zap.String("employeeID", employee.ID))
	return s.revalidate(ctx, business.ID)
}

func (s *DefaultBusinessService) UploadEmployeeAvatar(ctx context.Context, identity models.Identity, businessID, employeeID string, upload storage.Upload) (*models.Employee, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	employee, err := s.loadEmployee(ctx, business.ID, employeeID)
	if err != nil {
		return nil, err
	}
	stored, err := s.storeImage(ctx, upload, "employees/"+employee.ID)
	if err != nil {
		return nil, err
	}

	previous := employee.AvatarPublicID
	employee.AvatarURL = stored.URL
	employee.AvatarPublicID = stored.PublicID
	stamp(&employee.CreatedAt, &employee.UpdatedAt, s.now())
	if err := s.Employees.Update(ctx, employee); err != nil {
		s.deleteStoredImage(ctx, stored.PublicID)
		return nil, err
	}
	if previous != stored.PublicID {
		s.deleteStoredImage(ctx, previous)
	}
	return employee, nil
}
