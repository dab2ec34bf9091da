package business

import (
	"context"
	"errors"
	"strings"

	"bookiteasy/database/repository"
	"bookiteasy/models"

	"go.uber.org/zap"
)

// AddReview records the caller's review. Only customers with a completed booking may review,
// and only once per business.
func (s *DefaultBusinessService) AddReview(ctx context.Context, identity models.Identity, businessID string, req models.ReviewRequest) (*models.Review, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	business, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	completed, err := s.Bookings.HasCompleted(ctx, identity.UserID, business.ID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrReviewForbidden
	}

	review := &models.Review{
		ID:         s.newID(),
		BusinessID: business.ID,
		UserID:     identity.UserID,
		UserName:   s.reviewerName(ctx, identity),
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  s.now(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	s.logger().Info("Review added", zap.String("businessID", business.ID), zap.String("userID", identity.UserID), zap.Int("rating", review.Rating))
	return review, nil
}

// reviewerName prefers the profile name and falls back to the token email.
func (s *DefaultBusinessService) reviewerName(ctx context.Context, identity models.Identity) string {
	if s.Users != nil {
		user, err := s.Users.GetByID(ctx, identity.UserID)
		if err == nil && user != nil && user.Name != "" {
			return user.Name
		}
	}
	return identity.Email
}

func (s *DefaultBusinessService) ListReviews(ctx context.Context, businessID string) ([]models.Review, error) {
	if _, err := s.loadBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *DefaultBusinessService) HasReviewed(ctx context.Context, identity models.Identity, businessID string) (bool, error) {
	if identity.IsZero() {
		return false, ErrUnauthenticated
	}
	return s.Reviews.Exists(ctx, identity.UserID, businessID)
}
