package dto

import "github.com/estate-backoffice/internal/domain"

type ListingListResponse struct {
	Items []domain.Listing `json:"items"`
	Total int              `json:"total"`
}

type AgentListResponse struct {
	Items []domain.Agent `json:"items"`
	Total int            `json:"total"`
}

type ContactLeadListResponse struct {
	Items []domain.ContactLead `json:"items"`
	Total int                  `json:"total"`
}

// ListingRequest is the direct (non-wizard) CRUD payload for a listing.
type ListingRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"omitempty,max=20000"`
	Category    string   `json:"category" validate:"required,min=2,max=60"`
	Price       float64  `json:"price" validate:"omitempty,min=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3"`
	AgentID     *int64   `json:"agent_id" validate:"omitempty,min=1"`
	Location    Location `json:"location" validate:"required"`

	Images      []ImageInput      `json:"images" validate:"omitempty,dive"`
	UnitSizes   []UnitSizeInput   `json:"unit_sizes" validate:"omitempty,dive"`
	Features    []string          `json:"features" validate:"omitempty,dive,min=1"`
	Descriptors []DescriptorInput `json:"descriptors" validate:"omitempty,dive"`
}

type Location struct {
	CountryID      int64    `json:"country_id" validate:"required,min=1"`
	CityID         *int64   `json:"city_id" validate:"omitempty,min=1"`
	DistrictID     *int64   `json:"district_id" validate:"omitempty,min=1"`
	NeighborhoodID *int64   `json:"neighborhood_id" validate:"omitempty,min=1"`
	StreetAddress  string   `json:"street_address" validate:"omitempty,max=400"`
	Zip            string   `json:"zip" validate:"omitempty,max=16"`
	Lat            *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng            *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

type ImageInput struct {
	Path     string `json:"path" validate:"required"`
	FullURL  string `json:"full_url" validate:"required,url"`
	LargeURL string `json:"large_url" validate:"required,url"`
	ThumbURL string `json:"thumb_url" validate:"required,url"`
}

type UnitSizeInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=60"`
	MinM2 float64 `json:"min_m2" validate:"required,min=1"`
	MaxM2 float64 `json:"max_m2" validate:"required,gtefield=MinM2"`
}

type DescriptorInput struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

// MediaUploadResponse carries the public URLs of the three stored variants.
type MediaUploadResponse struct {
	Path     string `json:"path"`
	FullURL  string `json:"full_url"`
	LargeURL string `json:"large_url"`
	ThumbURL string `json:"thumb_url"`
}
