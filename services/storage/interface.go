package storage

import (
	"context"
	"errors"
	"io"
)

// UploadedImage identifies a stored image. PublicID is what Delete needs.
type UploadedImage struct {
	URL      string
	PublicID string
}

// ImageStore persists business images and user avatars.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder, name string) (UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

// ErrStorageDisabled is returned by DisabledImageStore.
var ErrStorageDisabled = errors.New("image storage is not configured")

// DisabledImageStore rejects every upload. It stands in when no Cloudinary
// credentials are configured so the rest of the API keeps working.
type DisabledImageStore struct{}

func (DisabledImageStore) Upload(context.Context, io.Reader, string, string) (UploadedImage, error) {
	return UploadedImage{}, ErrStorageDisabled
}

func (DisabledImageStore) Delete(context.Context, string) error {
	return ErrStorageDisabled
}
