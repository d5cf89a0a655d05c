package dto

import "github.com/estate-backoffice/internal/domain"

type CountryListResponse struct {
	Items []domain.Country `json:"items"`
	Total int              `json:"total"`
}

type CityListResponse struct {
	Items []domain.City `json:"items"`
	Total int           `json:"total"`
}

type DistrictListResponse struct {
	Items []domain.District `json:"items"`
	Total int               `json:"total"`
}

type NeighborhoodListResponse struct {
	Items []domain.Neighborhood `json:"items"`
	Total int                   `json:"total"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ReverseGeocodeResponse struct {
	Street    string `json:"street"`
	Zip       string `json:"zip"`
	Formatted string `json:"formatted"`
}
