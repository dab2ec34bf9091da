package models

import "time"

// User is the profile of an authenticated caller, keyed by the token subject.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	AvatarURL      string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	AvatarPublicID string    `bson:"avatar_public_id,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"max=30"`
}

type Favorite struct {
	UserID     string    `bson:"user_id" json:"userId"`
	BusinessID string    `bson:"business_id" json:"businessId"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

type FavoriteRequest struct {
	BusinessID string `json:"businessId" binding:"required"`
	IsFavorite *bool  `json:"isFavorite" binding:"required"`
}

type Review struct {
	ID         string    `bson:"id" json:"id"`
	BusinessID string    `bson:"business_id" json:"businessId"`
	UserID     string    `bson:"user_id" json:"userId"`
	UserName   string    `bson:"user_name" json:"userName"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}
