package business

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"bookiteasy/database/repository"
	bookingRepo "bookiteasy/database/repository/booking"
	businessRepo "bookiteasy/database/repository/business"
	"bookiteasy/models"
	"bookiteasy/services/storage"
)

type fakeBusinessRepo struct{ businesses map[string]*models.Business }

func (r *fakeBusinessRepo) Create(_ context.Context, b *models.Business) error {
	for _, existing := range r.businesses {
		if existing.OwnerID == b.OwnerID {
			return repository.ErrDuplicate
		}
	}
	c := *b
	r.businesses[b.ID] = &c
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id string) (*models.Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return nil, nil
	}
	c := *b
	c.Images = append([]models.BusinessImage(nil), b.Images...)
	return &c, nil
}

func (r *fakeBusinessRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Business, error) {
	for id, b := range r.businesses {
		if b.OwnerID == ownerID {
			return r.GetByID(ctx, id)
		}
	}
	return nil, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *models.Business) error {
	stored := r.businesses[b.ID]
	images, published := stored.Images, stored.IsPublished
	c := *b
	c.Images, c.IsPublished = images, published
	r.businesses[b.ID] = &c
	return nil
}

func (r *fakeBusinessRepo) SetPublished(_ context.Context, id string, published bool) error {
	r.businesses[id].IsPublished = published
	return nil
}

func (r *fakeBusinessRepo) SearchPublished(_ context.Context, c businessRepo.SearchCriteria) ([]models.Business, int64, error) {
	var all []models.Business
	for _, b := range r.businesses {
		if b.IsPublished && (c.Category == "" || b.Category == c.Category) {
			all = append(all, *b)
		}
	}
	total := int64(len(all))
	if c.Skip >= total {
		return []models.Business{}, total, nil
	}
	end := min(c.Skip+c.Limit, total)
	return all[c.Skip:end], total, nil
}

func (r *fakeBusinessRepo) AddImage(_ context.Context, businessID string, image models.BusinessImage) error {
	b := r.businesses[businessID]
	b.Images = append(b.Images, image)
	return nil
}

func (r *fakeBusinessRepo) SetPrimaryImage(_ context.Context, businessID, imageID string) error {
	b := r.businesses[businessID]
	for i := range b.Images {
		b.Images[i].IsPrimary = b.Images[i].ID == imageID
	}
	return nil
}

func (r *fakeBusinessRepo) RemoveImage(_ context.Context, businessID, imageID string) error {
	b := r.businesses[businessID]
	kept := b.Images[:0]
	for _, img := range b.Images {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	b.Images = kept
	return nil
}

type fakeEmployeeRepo struct{ employees map[string]models.Employee }

func (r *fakeEmployeeRepo) Create(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*models.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range r.employees {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	list, _ := r.ListByBusiness(ctx, businessID)
	return int64(len(list)), nil
}

type fakeServiceRepo struct{ services map[string]models.Service }

func (r *fakeServiceRepo) Create(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeServiceRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	list, _ := r.ListByBusiness(ctx, businessID)
	return int64(len(list)), nil
}

func (r *fakeServiceRepo) CountByEmployee(_ context.Context, employeeID string) (int64, error) {
	var n int64
	for _, s := range r.services {
		if s.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

type fakeWorkingHoursRepo struct{ hours []models.WorkingHours }

func (r *fakeWorkingHoursRepo) GetForDay(_ context.Context, ownerType models.OwnerType, ownerID string, day models.DayOfWeek) (*models.WorkingHours, error) {
	for _, h := range r.hours {
		if h.OwnerType == ownerType && h.OwnerID == ownerID && h.DayOfWeek == day {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkingHoursRepo) ListForOwner(_ context.Context, ownerType models.OwnerType, ownerID string) ([]models.WorkingHours, error) {
	var out []models.WorkingHours
	for _, h := range r.hours {
		if h.OwnerType == ownerType && h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeWorkingHoursRepo) ReplaceForOwner(_ context.Context, ownerType models.OwnerType, ownerID string, hours []models.WorkingHours) error {
	var kept []models.WorkingHours
	for _, h := range r.hours {
		if h.OwnerType != ownerType || h.OwnerID != ownerID {
			kept = append(kept, h)
		}
	}
	r.hours = append(kept, hours...)
	return nil
}

func (r *fakeWorkingHoursRepo) CountForOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error) {
	list, _ := r.ListForOwner(ctx, ownerType, ownerID)
	return int64(len(list)), nil
}

type fakeReviewRepo struct{ reviews []models.Review }

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.BusinessID == review.BusinessID {
			return repository.ErrDuplicate
		}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Review, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.BusinessID == businessID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.UserID == userID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Exists(_ context.Context, userID, businessID string) (bool, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.BusinessID == businessID {
			return true, nil
		}
	}
	return false, nil
}

// fakeBookingRepo only answers HasCompleted; other methods are never called by this package.
type fakeBookingRepo struct {
	bookingRepo.BookingRepository
	completed map[string]bool // userID + "/" + businessID
}

func (r *fakeBookingRepo) HasCompleted(_ context.Context, userID, businessID string) (bool, error) {
	return r.completed[userID+"/"+businessID], nil
}

type fakeImageStore struct {
	uploaded []string
	deleted  []string
}

func (s *fakeImageStore) Upload(_ context.Context, file io.Reader, folder, name string) (storage.UploadedImage, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return storage.UploadedImage{}, err
	}
	id := folder + "/" + name
	s.uploaded = append(s.uploaded, id)
	return storage.UploadedImage{URL: fmt.Sprintf("https://img.example/%s.png", id), PublicID: id}, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func pngUpload(size int) storage.Upload {
	return storage.Upload{Filename: "photo.png", Size: int64(size), File: bytes.NewReader(make([]byte, size))}
}
