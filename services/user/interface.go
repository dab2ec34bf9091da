package user

import (
	"context"
	"time"

	businessRepo "bookiteasy/database/repository/business"
	reviewRepo "bookiteasy/database/repository/review"
	userRepo "bookiteasy/database/repository/user"
	"bookiteasy/models"
	"bookiteasy/services/storage"

	"go.uber.org/zap"
)

// UserService manages the caller's profile, favorites and review history.
type UserService interface {
	GetProfile(ctx context.Context, identity models.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, identity models.Identity, req models.UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, identity models.Identity, upload storage.Upload) (*models.User, error)
	DeleteAvatar(ctx context.Context, identity models.Identity) error

	SetFavorite(ctx context.Context, identity models.Identity, req models.FavoriteRequest) error
	ListFavorites(ctx context.Context, identity models.Identity) ([]models.BusinessSummary, error)
	IsFavorite(ctx context.Context, identity models.Identity, businessID string) (bool, error)

	ListReviews(ctx context.Context, identity models.Identity) ([]models.Review, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Businesses businessRepo.BusinessRepository
	Reviews    reviewRepo.ReviewRepository
	Images     storage.ImageStore
	Logger     *zap.Logger

	MaxUploadBytes int64
	Now            func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
