package business

import (
	"context"

	"bookiteasy/models"

	"go.uber.org/zap"
)

// missingRequirements lists what keeps business from being publishable.
func (s *DefaultBusinessService) missingRequirements(ctx context.Context, business *models.Business) ([]string, error) {
	var missing []string
	if business.PrimaryImage() == nil {
		missing = append(missing, "primary image")
	}

	employees, err := s.Employees.CountByBusiness(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	if employees == 0 {
		missing = append(missing, "employee")
	}

	services, err := s.Services.CountByBusiness(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	if services == 0 {
		missing = append(missing, "service")
	}

	hours, err := s.WorkingHours.CountForOwner(ctx, models.OwnerBusiness, business.ID)
	if err != nil {
		return nil, err
	}
	if hours == 0 {
		missing = append(missing, "working hours")
	}
	return missing, nil
}

// TogglePublish flips publication. Publishing requires every requirement to be met.
func (s *DefaultBusinessService) TogglePublish(ctx context.Context, identity models.Identity, businessID string) (*models.PublishStatus, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}

	if business.IsPublished {
		if err := s.Businesses.SetPublished(ctx, business.ID, false); err != nil {
			return nil, err
		}
		return &models.PublishStatus{IsPublished: false}, nil
	}

	missing, err := s.missingRequirements(ctx, business)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &NotPublishableError{Missing: missing}
	}
	if err := s.Businesses.SetPublished(ctx, business.ID, true); err != nil {
		return nil, err
	}
	s.logger().Info("Business published", zap.String("businessID", business.ID))
	return &models.PublishStatus{IsPublished: true}, nil
}

// revalidate unpublishes business when a removal left it incomplete.
func (s *DefaultBusinessService) revalidate(ctx context.Context, businessID string) (*models.PublishStatus, error) {
	business, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsPublished {
		return &models.PublishStatus{IsPublished: false}, nil
	}

	missing, err := s.missingRequirements(ctx, business)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return &models.PublishStatus{IsPublished: true}, nil
	}
	if err := s.Businesses.SetPublished(ctx, business.ID, false); err != nil {
		return nil, err
	}
	s.logger().Info("Business unpublished after losing requirements",
		zap.String("businessID", business.ID),
		zap.Strings("missing", missing),
	)
	return &models.PublishStatus{IsPublished: false, Unpublished: true, Missing: missing}, nil
}
