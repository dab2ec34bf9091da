package business

import (
	"context"

	"bookiteasy/models"
	"bookiteasy/services/storage"

	"go.uber.org/zap"
)

func (s *DefaultBusinessService) storeImage(ctx context.Context, upload storage.Upload, folder string) (storage.UploadedImage, error) {
	if err := upload.Validate(s.MaxUploadBytes); err != nil {
		return storage.UploadedImage{}, err
	}
	return s.Images.Upload(ctx, upload.File, folder, s.newID())
}

// deleteStoredImage removes an object from image storage. Failures only leave an orphan, so they are logged.
func (s *DefaultBusinessService) deleteStoredImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.Images.Delete(ctx, publicID); err != nil {
		s.logger().Warn("Failed to delete stored image", zap.String("publicID", publicID), zap.Error(err))
	}
}

// UploadImage adds an image to the gallery. The first image becomes the primary one.
func (s *DefaultBusinessService) UploadImage(ctx context.Context, identity models.Identity, businessID string, upload storage.Upload) (*models.BusinessImage, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	stored, err := s.storeImage(ctx, upload, "businesses/"+business.ID)
	if err != nil {
		return nil, err
	}

	image := models.BusinessImage{
		ID:         s.newID(),
		URL:        stored.URL,
		PublicID:   stored.PublicID,
		IsPrimary:  business.PrimaryImage() == nil,
		UploadedAt: s.now(),
	}
	if err := s.Businesses.AddImage(ctx, business.ID, image); err != nil {
		s.deleteStoredImage(ctx, stored.PublicID)
		return nil, err
	}
	s.logger().Info("Business image uploaded", zap.String("businessID", business.ID), zap.String("imageID", image.ID))
	return &image, nil
}

func (s *DefaultBusinessService) ListImages(ctx context.Context, businessID string) ([]models.BusinessImage, error) {
	business, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.Images == nil {
		return []models.BusinessImage{}, nil
	}
	return business.Images, nil
}

func findImage(business *models.Business, imageID string) *models.BusinessImage {
	for i := range business.Images {
		if business.Images[i].ID == imageID {
			return &business.Images[i]
		}
	}
	return nil
}

func (s *DefaultBusinessService) SetPrimaryImage(ctx context.Context, identity models.Identity, businessID, imageID string) error {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return err
	}
	if findImage(business, imageID) == nil {
		return ErrImageNotFound
	}
	return s.Businesses.SetPrimaryImage(ctx, business.ID, imageID)
}

// DeleteImage removes an image from the gallery and from storage.
// Removing the primary image unpublishes the business.
func (s *DefaultBusinessService) DeleteImage(ctx context.Context, identity models.Identity, businessID, imageID string) (*models.PublishStatus, error) {
	business, err := s.loadManageable(ctx, identity, businessID)
	if err != nil {
		return nil, err
	}
	image := findImage(business, imageID)
	if image == nil {
		return nil, ErrImageNotFound
	}
	if err := s.Businesses.RemoveImage(ctx, business.ID, imageID); err != nil {
		return nil, err
	}
	s.deleteStoredImage(ctx, image.PublicID)
	return s.revalidate(ctx, business.ID)
}
