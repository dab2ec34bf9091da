package models

import "time"

type Address struct {
	Street     string `bson:"street" json:"street" binding:"max=200"`
	City       string `bson:"city" json:"city" binding:"max=100"`
	PostalCode string `bson:"postal_code" json:"postalCode" binding:"max=20"`
	Country    string `bson:"country" json:"country" binding:"max=100"`
}

// Business is a tenant of the platform. It is only listed publicly once published.
type Business struct {
	ID                 string          `bson:"id" json:"id"`
	OwnerID            string          `bson:"owner_id" json:"ownerId"`
	Name               string          `bson:"name" json:"name"`
	Description        string          `bson:"description" json:"description"`
	Category           string          `bson:"category" json:"category"`
	Email              string          `bson:"email" json:"email"`
	Phone              string          `bson:"phone" json:"phone"`
	TaxID              string          `bson:"tax_id,omitempty" json:"taxId,omitempty"`
	RegistrationNumber string          `bson:"registration_number,omitempty" json:"registrationNumber,omitempty"`
	Address            Address         `bson:"address" json:"address"`
	Timezone           string          `bson:"timezone" json:"timezone"` // IANA zone name
	IsPublished        bool            `bson:"is_published" json:"isPublished"`
	Images             []BusinessImage `bson:"images" json:"images"`
	CreatedAt          time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updated_at" json:"updatedAt"`
}

// ManageableBy reports whether the caller may change this business.
func (b *Business) ManageableBy(identity Identity) bool {
	if identity.IsAdmin() {
		return true
	}
	return identity.UserID != "" && identity.UserID == b.OwnerID
}

func (b *Business) PrimaryImage() *BusinessImage {
	for i := range b.Images {
		if b.Images[i].IsPrimary {
			return &b.Images[i]
		}
	}
	return nil
}

// Location resolves the business timezone, falling back to UTC.
func (b *Business) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type BusinessImage struct {
	ID         string    `bson:"id" json:"id"`
	URL        string    `bson:"url" json:"url"`
	PublicID   string    `bson:"public_id" json:"-"`
	IsPrimary  bool      `bson:"is_primary" json:"isPrimary"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

type BusinessRequest struct {
	Name               string  `json:"name" binding:"required,max=120"`
	Description        string  `json:"description" binding:"max=2000"`
	Category           string  `json:"category" binding:"required,max=60"`
	Email              string  `json:"email" binding:"omitempty,email"`
	Phone              string  `json:"phone" binding:"max=30"`
	TaxID              string  `json:"taxId" binding:"max=30"`
	RegistrationNumber string  `json:"registrationNumber" binding:"max=30"`
	Address            Address `json:"address"`
	Timezone           string  `json:"timezone" binding:"max=64"`
}

type BusinessListQuery struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	SearchTerms string `form:"searchTerms"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
}

type BusinessSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	City            string `json:"city"`
	PrimaryImageURL string `json:"primaryImageUrl,omitempty"`
}

func (b *Business) Summary() BusinessSummary {
	summary := BusinessSummary{ID: b.ID, Name: b.Name, Category: b.Category, City: b.Address.City}
	if img := b.PrimaryImage(); img != nil {
		summary.PrimaryImageURL = img.URL
	}
	return summary
}

type BusinessList struct {
	Businesses []BusinessSummary `json:"businesses"`
	Pagination Pagination        `json:"pagination"`
}

// BusinessDetail is the public profile of a business with everything needed to book.
type BusinessDetail struct {
	Business
	WorkingHours []WorkingHours `json:"workingHours"`
	Services     []Service      `json:"services"`
	Employees    []Employee     `json:"employees"`
}

// PublishStatus is returned by operations that may unpublish a business as a side effect.
type PublishStatus struct {
	IsPublished bool     `json:"isPublished"`
	Unpublished bool     `json:"unpublished"`
	Missing     []string `json:"missing,omitempty"`
}
