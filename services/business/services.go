package business

import (
	"context"
	"strings"

	"bookiteasy/models"

	"go.uber.org/zap"
)

func (s *DefaultBusinessService) loadService(ctx context.Context, businessID, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || svc.BusinessID != businessID {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// applyServiceRequest copies req onto svc after checking the performing employee works at the business.
func (s *DefaultBusinessService) applyServiceRequest(ctx context.Context, svc *models.Service, req models.ServiceRequest) error {
	if req.DurationMinutes < models.MinServiceMinutes || req.DurationMinutes > models.MaxServiceMinutes {
		return ErrInvalidDuration
	}
	employee, err := s.Employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil || employee.BusinessID != svc.BusinessID {
		return ErrForeignEmployee
	}

	svc.EmployeeID = employee.ID
	svc.Name = strings.TrimSpace(req.Name)
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMinutes = req.DurationMinutes
	svc.IsFeatured = req.IsFeatured
	svc.Group = strings.TrimSpace(req.Group)
	stamp(&svc.CreatedAt, &svc.UpdatedAt, s.now())
	return nil
}

func (s *DefaultBusinessService) AddService(ctx context.Context, identity models.Identity, businessID string, req models.ServiceRequest) (*models.Service, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	svc := &models.Service{ID: s.newID(), BusinessID: business.ID}
	if err := s.applyServiceRequest(ctx, svc, req); err != nil {
		return nil, err
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.logger().Info("Service added",
		zap.String("businessID", business.ID),
		zap.String("serviceID", svc.ID),
		zap.Int("durationMinutes", svc.DurationMinutes),
	)
	return svc, nil
}

func (s *DefaultBusinessService) ListServices(ctx context.Context, businessID string) ([]models.Service, error) {
	if _, err := s.loadBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	services, err := s.Services.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *DefaultBusinessService) GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error) {
	return s.loadService(ctx, businessID, serviceID)
}

// UpdateService changes a service. Existing bookings keep the duration they were made with.
func (s *DefaultBusinessService) UpdateService(ctx context.Context, identity models.Identity, businessID, serviceID string, req models.ServiceRequest) (*models.Service, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	svc, err := s.loadService(ctx, business.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.applyServiceRequest(ctx, svc, req); err != nil {
		return nil, err
	}
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultBusinessService) DeleteService(ctx context.Context, identity models.Identity, businessID, serviceID string) (*models.PublishStatus, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	svc, err := s.loadService(ctx, business.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.Services.Delete(ctx, svc.ID); err != nil {
		return nil, err
	}
	s.logger().Info("Service deleted", zap.String("businessID", business.ID), zap.String("serviceID", svc.ID))
	return s.revalidate(ctx, business.ID)
}
