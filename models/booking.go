package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking reserves an employee for [StartTime, EndTime). EmployeeID, BusinessID,
// DurationMinutes and EndTime are copied from the service when the booking is made.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	UserID          string        `bson:"user_id" json:"userId"`
	ServiceID       string        `bson:"service_id" json:"serviceId"`
	EmployeeID      string        `bson:"employee_id" json:"employeeId"`
	BusinessID      string        `bson:"business_id" json:"businessId"`
	StartTime       time.Time     `bson:"start_time" json:"startTime"`
	EndTime         time.Time     `bson:"end_time" json:"endTime"`
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	Status          BookingStatus `bson:"status" json:"status"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

func (b Booking) Duration() time.Duration {
	return time.Duration(b.DurationMinutes) * time.Minute
}

type CreateBookingRequest struct {
	ServiceID string    `json:"serviceId" binding:"required"`
	DateTime  time.Time `json:"dateTime" binding:"required"`
}

type UpdateBookingRequest struct {
	DateTime time.Time `json:"dateTime" binding:"required"`
}

type BookingDetail struct {
	Booking
	ServiceName  string  `json:"serviceName"`
	Price        float64 `json:"price"`
	EmployeeName string  `json:"employeeName"`
	BusinessName string  `json:"businessName"`
}

type AvailableSlots struct {
	ServiceID string      `json:"serviceId"`
	Date      string      `json:"date"`
	Slots     []time.Time `json:"slots"`
}
