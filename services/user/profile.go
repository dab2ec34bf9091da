package user

import (
	"context"
	"errors"
	"strings"

	"bookiteasy/database/repository"
	"bookiteasy/models"
	"bookiteasy/services/storage"

	"go.uber.org/zap"
)

// GetProfile returns the stored profile, or one seeded from the token when none exists yet.
func (s *DefaultUserService) GetProfile(ctx context.Context, identity models.Identity) (*models.User, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	user, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.User{ID: identity.UserID, Email: identity.Email}, nil
	}
	return user, nil
}

// UpdateProfile upserts the caller's profile. Emails are unique across profiles.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, identity models.Identity, req models.UpdateProfileRequest) (*models.User, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	user, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if user == nil {
		user = &models.User{ID: identity.UserID, CreatedAt: now}
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Phone = req.Phone
	user.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores a new avatar, saving the token-seeded profile first if the caller has none yet.
func (s *DefaultUserService) UploadAvatar(ctx context.Context, identity models.Identity, upload storage.Upload) (*models.User, error) {
	if identity.IsZero() {
		return nil, ErrUnauthenticated
	}
	if err := upload.Validate(s.MaxUploadBytes); err != nil {
		return nil, err
	}
	user, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := s.now()
		user = &models.User{ID: identity.UserID, Email: strings.ToLower(identity.Email), CreatedAt: now, UpdatedAt: now}
		if err := s.Repo.Upsert(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	}
	stored, err := s.Images.Upload(ctx, upload.File, "users/"+user.ID, "avatar")
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetAvatar(ctx, user.ID, stored.URL, stored.PublicID); err != nil {
		return nil, err
	}

	if user.AvatarPublicID != "" && user.AvatarPublicID != stored.PublicID {
		s.deleteStored(ctx, user.AvatarPublicID)
	}
	user.AvatarURL = stored.URL
	user.AvatarPublicID = stored.PublicID
	return user, nil
}

func (s *DefaultUserService) DeleteAvatar(ctx context.Context, identity models.Identity) error {
	if identity.IsZero() {
		return ErrUnauthenticated
	}
	user, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.AvatarPublicID == "" {
		return nil
	}
	if err := s.Repo.SetAvatar(ctx, user.ID, "", ""); err != nil {
		return err
	}
	s.deleteStored(ctx, user.AvatarPublicID)
	return nil
}

func (s *DefaultUserService) deleteStored(ctx context.Context, publicID string) {
	if err := s.Images.Delete(ctx, publicID); err != nil {
		s.logger().Warn("Failed to delete stored avatar", zap.String("publicID", publicID), zap.Error(err))
	}
}
