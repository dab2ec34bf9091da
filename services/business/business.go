package business

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookiteasy/database/repository"
	businessRepo "bookiteasy/database/repository/business"
	"bookiteasy/models"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// loadManageable fetches a business the caller owns, or any business for an admin.
func (s *DefaultBusinessService) loadManageable(ctx context.Context, identity models.Identity, businessID string) (*models.Business, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	business, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.ManageableBy(identity) {
		return nil, ErrNotAllowed
	}
	return business, nil
}

func (s *DefaultBusinessService) loadBusiness(ctx context.Context, businessID string) (*models.Business, error) {
	business, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func validateTimezone(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "UTC", nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", ErrInvalidTimezone
	}
	return name, nil
}

func applyRequest(business *models.Business, req models.BusinessRequest, timezone string) {
	business.Name = strings.TrimSpace(req.Name)
	business.Description = req.Description
	business.Category = strings.TrimSpace(req.Category)
	business.Email = req.Email
	business.Phone = req.Phone
	business.TaxID = req.TaxID
	business.RegistrationNumber = req.RegistrationNumber
	business.Address = req.Address
	business.Timezone = timezone
}

// RegisterBusiness creates the caller's business. Each owner has at most one.
func (s *DefaultBusinessService) RegisterBusiness(ctx context.Context, identity models.Identity, req models.BusinessRequest) (*models.Business, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	timezone, err := validateTimezone(req.Timezone)
	if err != nil {
		return nil, err
	}

	existing, err := s.Businesses.GetByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	business := &models.Business{ID: s.newID(), OwnerID: identity.UserID, Images: []models.BusinessImage{}}
	applyRequest(business, req, timezone)
	if err := s.Businesses.Create(ctx, business); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	s.logger().Info("Business registered", zap.String("businessID", business.ID), zap.String("ownerID", business.OwnerID))
	return business, nil
}

func (s *DefaultBusinessService) GetOwnBusiness(ctx context.Context, identity models.Identity) (*models.Business, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	business, err := s.Businesses.GetByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

// GetBusinessDetail returns the public profile with everything needed to pick a service.
func (s *DefaultBusinessService) GetBusinessDetail(ctx context.Context, businessID string) (*models.BusinessDetail, error) {
	business, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	hours, err := s.WorkingHours.ListForOwner(ctx, models.OwnerBusiness, businessID)
	if err != nil {
		return nil, err
	}
	services, err := s.Services.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	employees, err := s.Employees.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &models.BusinessDetail{
		Business:     *business,
		WorkingHours: sortedByDay(hours),
		Services:     services,
		Employees:    employees,
	}, nil
}

func (s *DefaultBusinessService) UpdateBusiness(ctx context.Context, identity models.Identity, businessID string, req models.BusinessRequest) (*models.Business, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	timezone, err := validateTimezone(req.Timezone)
	if err != nil {
		return nil, err
	}
	applyRequest(business, req, timezone)
	if err := s.Businesses.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// ListBusinesses pages through published businesses matching the query.
func (s *DefaultBusinessService) ListBusinesses(ctx context.Context, query models.BusinessListQuery) (*models.BusinessList, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	businesses, total, err := s.Businesses.SearchPublished(ctx, businessRepo.SearchCriteria{
		Category:    strings.TrimSpace(query.Category),
		Location:    strings.TrimSpace(query.Location),
		SearchTerms: strings.TrimSpace(query.SearchTerms),
		Skip:        int64((page - 1) * limit),
		Limit:       int64(limit),
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BusinessSummary, 0, len(businesses))
	for i := range businesses {
		b := &businesses[i]
		summaries = append(summaries, b.Summary())
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.BusinessList{
		Businesses: summaries,
		Pagination: models.Pagination{CurrentPage: page, TotalPages: totalPages, TotalRecords: total},
	}, nil
}
