package domain

import "time"

// GeoLevel identifies one level of the location hierarchy.
type GeoLevel string

const (
	LevelCountry      GeoLevel = "country"
	LevelCity         GeoLevel = "city"
	LevelDistrict     GeoLevel = "district"
	LevelNeighborhood GeoLevel = "neighborhood"
)

// Depth returns the position of the level in the hierarchy, country being 0.
func (l GeoLevel) Depth() int {
	switch l {
	case LevelCountry:
		return 0
	case LevelCity:
		return 1
	case LevelDistrict:
		return 2
	case LevelNeighborhood:
		return 3
	}
	return -1
}

type Country struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// City carries a denormalized copy of its country's name and slug so list
// screens can render "City, Country" without a join. The copies are kept in
// sync transactionally whenever the country row changes.
type City struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	CountryID   int64     `db:"country_id" json:"country_id"`
	CountryName string    `db:"country_name" json:"country_name"`
	CountrySlug string    `db:"country_slug" json:"country_slug"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type District struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	CityID      int64     `db:"city_id" json:"city_id"`
	CityName    string    `db:"city_name" json:"city_name"`
	CitySlug    string    `db:"city_slug" json:"city_slug"`
	CountryID   int64     `db:"country_id" json:"country_id"`
	CountryName string    `db:"country_name" json:"country_name"`
	CountrySlug string    `db:"country_slug" json:"country_slug"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Neighborhood struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	DistrictID   int64     `db:"district_id" json:"district_id"`
	DistrictName string    `db:"district_name" json:"district_name"`
	DistrictSlug string    `db:"district_slug" json:"district_slug"`
	CityID       int64     `db:"city_id" json:"city_id"`
	CityName     string    `db:"city_name" json:"city_name"`
	CitySlug     string    `db:"city_slug" json:"city_slug"`
	CountryID    int64     `db:"country_id" json:"country_id"`
	CountryName  string    `db:"country_name" json:"country_name"`
	CountrySlug  string    `db:"country_slug" json:"country_slug"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// GeoOption is the id/name pair the cascade serves to selection lists.
type GeoOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
