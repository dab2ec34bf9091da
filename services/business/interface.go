package business

import (
	"context"
	"time"

	bookingRepo "bookiteasy/database/repository/booking"
	businessRepo "bookiteasy/database/repository/business"
	employeeRepo "bookiteasy/database/repository/employee"
	offeringRepo "bookiteasy/database/repository/offering"
	reviewRepo "bookiteasy/database/repository/review"
	userRepo "bookiteasy/database/repository/user"
	workingHoursRepo "bookiteasy/database/repository/workinghours"
	"bookiteasy/models"
	"bookiteasy/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BusinessService covers everything an owner manages about a business, plus its public catalogue.
type BusinessService interface {
	RegisterBusiness(ctx context.Context, identity models.Identity, req models.BusinessRequest) (*models.Business, error)
	GetOwnBusiness(ctx context.Context, identity models.Identity) (*models.Business, error)
	GetBusinessDetail(ctx context.Context, businessID string) (*models.BusinessDetail, error)
	UpdateBusiness(ctx context.Context, identity models.Identity, businessID string, req models.BusinessRequest) (*models.Business, error)
	ListBusinesses(ctx context.Context, query models.BusinessListQuery) (*models.BusinessList, error)
	TogglePublish(ctx context.Context, identity models.Identity, businessID string) (*models.PublishStatus, error)

	SetBusinessHours(ctx context.Context, identity models.Identity, businessID string, req models.SetWorkingHoursRequest) ([]models.WorkingHours, *models.PublishStatus, error)
	GetBusinessHours(ctx context.Context, businessID string) ([]models.WorkingHours, error)
	SetEmployeeHours(ctx context.Context, identity models.Identity, businessID, employeeID string, req models.SetWorkingHoursRequest) ([]models.WorkingHours, error)
	GetEmployeeHours(ctx context.Context, businessID, employeeID string) ([]models.WorkingHours, error)

	AddEmployee(ctx context.Context, identity models.Identity, businessID string, req models.EmployeeRequest) (*models.Employee, error)
	ListEmployees(ctx context.Context, businessID string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, identity models.Identity, businessID, employeeID string, req models.EmployeeRequest) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, identity models.Identity, businessID, employeeID string) (*models.PublishStatus, error)
	UploadEmployeeAvatar(ctx context.Context, identity models.Identity, businessID, employeeID string, upload storage.Upload) (*models.Employee, error)

	AddService(ctx context.Context, identity models.Identity, businessID string, req models.ServiceRequest) (*models.Service, error)
	ListServices(ctx context.Context, businessID string) ([]models.Service, error)
	GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error)
	UpdateService(ctx context.Context, identity models.Identity, businessID, serviceID string, req models.ServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, identity models.Identity, businessID, serviceID string) (*models.PublishStatus, error)

	UploadImage(ctx context.Context, identity models.Identity, businessID string, upload storage.Upload) (*models.BusinessImage, error)
	ListImages(ctx context.Context, businessID string) ([]models.BusinessImage, error)
	SetPrimaryImage(ctx context.Context, identity models.Identity, businessID, imageID string) error
	DeleteImage(ctx context.Context, identity models.Identity, businessID, imageID string) (*models.PublishStatus, error)

	AddReview(ctx context.Context, identity models.Identity, businessID string, req models.ReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, businessID string) ([]models.Review, error)
	HasReviewed(ctx context.Context, identity models.Identity, businessID string) (bool, error)
}

// DefaultBusinessService implements BusinessService.
type DefaultBusinessService struct {
	Businesses   businessRepo.BusinessRepository
	Employees    employeeRepo.EmployeeRepository
	Services     offeringRepo.ServiceRepository
	WorkingHours workingHoursRepo.WorkingHoursRepository
	Reviews      reviewRepo.ReviewRepository
	Bookings     bookingRepo.BookingRepository
	Users        userRepo.UserRepository
	Images       storage.ImageStore
	Logger       *zap.Logger

	// MaxUploadBytes caps image uploads; zero means no limit.
	MaxUploadBytes int64

	Now   func() time.Time
	NewID func() string
}

func (s *DefaultBusinessService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultBusinessService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

func (s *DefaultBusinessService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
