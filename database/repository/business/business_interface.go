package businessRepo

import (
	"context"

	"bookiteasy/models"
)

// BusinessRepository persists businesses together with their embedded image gallery.
// Lookups return (nil, nil) when nothing matches.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	SetPublished(ctx context.Context, id string, published bool) error
	SearchPublished(ctx context.Context, criteria SearchCriteria) ([]models.Business, int64, error)

	AddImage(ctx context.Context, businessID string, image models.BusinessImage) error
	SetPrimaryImage(ctx context.Context, businessID, imageID string) error
	RemoveImage(ctx context.Context, businessID, imageID string) error
}

// SearchCriteria filters the public business listing. Text filters are
// case-insensitive substring matches.
type SearchCriteria struct {
	Category    string
	Location    string
	SearchTerms string
	Skip        int64
	Limit       int64
}
