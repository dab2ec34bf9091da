package user

import (
	"context"

	"bookiteasy/models"

	"go.uber.org/zap"
)

// SetFavorite adds or removes a favorite. Both directions are idempotent.
func (s *DefaultUserService) SetFavorite(ctx context.Context, identity models.Identity, req models.FavoriteRequest) error {
	if identity.IsZero() {
		return ErrUnauthenticated
	}
	if req.IsFavorite == nil || !*req.IsFavorite {
		return s.Repo.RemoveFavorite(ctx, identity.UserID, req.BusinessID)
	}

	business, err := s.Businesses.GetByID(ctx, req.BusinessID)
	if err != nil {
		return err
	}
	if business == nil {
		return ErrBusinessNotFound
	}
	return s.Repo.AddFavorite(ctx, identity.UserID, business.ID)
}

// ListFavorites resolves favorite ids into summaries. Businesses deleted since are skipped.
func (s *DefaultUserService) ListFavorites(ctx context.Context, identity models.Identity) ([]models.BusinessSummary, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	ids, err := s.Repo.ListFavoriteBusinessIDs(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BusinessSummary, 0, len(ids))
	for _, id := range ids {
		b, err := s.Businesses.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b == nil {
			s.logger().Debug("Skipping missing favorite business", zap.String("businessID", id))
			continue
		}
		summaries = append(summaries, b.Summary())
	}
	return summaries, nil
}

func (s *DefaultUserService) IsFavorite(ctx context.Context, identity models.Identity, businessID string) (bool, error) {
	if identity.IsZero() {
		return false, ErrUnauthenticated
	}
	return s.Repo.IsFavorite(ctx, identity.UserID, businessID)
}

func (s *DefaultUserService) ListReviews(ctx context.Context, identity models.Identity) ([]models.Review, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	reviews, err := s.Reviews.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
