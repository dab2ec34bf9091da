package models

import "time"

type Employee struct {
	ID             string    `bson:"id" json:"id"`
	BusinessID     string    `bson:"business_id" json:"businessId"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	Position       string    `bson:"position" json:"position"`
	AvatarURL      string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	AvatarPublicID string    `bson:"avatar_public_id,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

type EmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=30"`
	Position string `json:"position" binding:"max=80"`
}
