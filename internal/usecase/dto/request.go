package dto

// Pagination is shared by every list endpoint.
type Pagination struct {
	Page     int `json:"page" validate:"omitempty,min=1"`
	PageSize int `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// CountryRequest creates or updates a country. Slug is derived from the name
// when omitted.
type CountryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
	Slug string `json:"slug" validate:"omitempty,min=2,max=120"`
}

type CityRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Slug      string `json:"slug" validate:"omitempty,min=2,max=120"`
	CountryID int64  `json:"country_id" validate:"required,min=1"`
}

type DistrictRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=120"`
	Slug   string `json:"slug" validate:"omitempty,min=2,max=120"`
	CityID int64  `json:"city_id" validate:"required,min=1"`
}

type NeighborhoodRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=120"`
	Slug       string `json:"slug" validate:"omitempty,min=2,max=120"`
	DistrictID int64  `json:"district_id" validate:"required,min=1"`
}

// ForwardGeocodeRequest resolves the free-text location string of the public
// get-coordinates endpoint.
type ForwardGeocodeRequest struct {
	Location string `json:"location" validate:"required,min=2"`
}

type ReverseGeocodeRequest struct {
	Lat float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng float64 `json:"lng" validate:"required,min=-180,max=180"`
}

type ContactLeadRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=6,max=24"`
	Message   string `json:"message" validate:"required,min=5,max=4000"`
	ListingID *int64 `json:"listing_id" validate:"omitempty,min=1"`
}

type AgentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"required,min=6,max=24"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	OfficeID *int64 `json:"office_id" validate:"omitempty,min=1"`
}

type ContentBlockRequest struct {
	Key   string `json:"key" validate:"required,min=2,max=120"`
	Title string `json:"title" validate:"required,min=2,max=200"`
	Body  string `json:"body" validate:"required"`
}
