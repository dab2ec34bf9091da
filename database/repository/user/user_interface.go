package userRepo

import (
	"context"

	"bookiteasy/models"
)

// UserRepository stores user profiles and their favorite businesses.
type UserRepository interface {
	// GetByID returns (nil, nil) when the profile does not exist yet.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Upsert creates or replaces the profile fields. A taken email yields repository.ErrDuplicate.
	Upsert(ctx context.Context, user *models.User) error
	SetAvatar(ctx context.Context, id, url, publicID string) error

	AddFavorite(ctx context.Context, userID, businessID string) error
	RemoveFavorite(ctx context.Context, userID, businessID string) error
	IsFavorite(ctx context.Context, userID, businessID string) (bool, error)
	ListFavoriteBusinessIDs(ctx context.Context, userID string) ([]string, error)
}
