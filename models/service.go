package models

import "time"

const (
	MinServiceMinutes = 1
	MaxServiceMinutes = 480
)

// Service is a bookable offering of a business, always performed by one employee.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	BusinessID      string    `bson:"business_id" json:"businessId"`
	EmployeeID      string    `bson:"employee_id" json:"employeeId"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	IsFeatured      bool      `bson:"is_featured" json:"isFeatured"`
	Group           string    `bson:"group,omitempty" json:"group,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type ServiceRequest struct {
	EmployeeID      string  `json:"employeeId" binding:"required"`
	Name            string  `json:"name" binding:"required,max=120"`
	Description     string  `json:"description" binding:"max=2000"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=1,max=480"`
	IsFeatured      bool    `json:"isFeatured"`
	Group           string  `json:"group" binding:"max=60"`
}
