package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryImageStore implements ImageStore on top of Cloudinary uploads.
type CloudinaryImageStore struct {
	cld        *cloudinary.Cloudinary
	rootFolder string
	logger     *zap.Logger
}

func NewCloudinaryImageStore(cld *cloudinary.Cloudinary, rootFolder string, logger *zap.Logger) *CloudinaryImageStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudinaryImageStore{cld: cld, rootFolder: rootFolder, logger: logger}
}

// Upload stores file under rootFolder/folder with the given public name.
func (s *CloudinaryImageStore) Upload(ctx context.Context, file io.Reader, folder, name string) (UploadedImage, error) {
	params := uploader.UploadParams{
		Folder:       path.Join(s.rootFolder, folder),
		PublicID:     name,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return UploadedImage{}, fmt.Errorf("CloudinaryImageStore: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return UploadedImage{}, fmt.Errorf("CloudinaryImageStore: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return UploadedImage{}, errors.New("CloudinaryImageStore: no public ID returned")
	}

	s.logger.Debug("Image uploaded", zap.String("publicID", result.PublicID), zap.Int("bytes", result.Bytes))
	return UploadedImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryImageStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryImageStore: failed to delete image: %w", err)
	}
	return nil
}
