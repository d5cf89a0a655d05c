package domain

import "time"

// ListingKind discriminates the three entity kinds that share the listing
// persistence path.
type ListingKind string

const (
	KindProperty ListingKind = "property"
	KindProject  ListingKind = "project"
	KindOffice   ListingKind = "office"
)

func (k ListingKind) Valid() bool {
	switch k {
	case KindProperty, KindProject, KindOffice:
		return true
	}
	return false
}

// Listing is a property, project or office together with its one-to-one
// location row and nested child collections.
type Listing struct {
	ID          int64       `db:"id" json:"id"`
	Kind        ListingKind `db:"kind" json:"kind"`
	Title       string      `db:"title" json:"title"`
	Slug        string      `db:"slug" json:"slug"`
	Description string      `db:"description" json:"description"`

	// Category gates which descriptor set applies (e.g. "flat", "villa",
	// "land" for properties). Changing it clears the selected descriptors.
	Category string `db:"category" json:"category"`

	Price    float64 `db:"price" json:"price"`
	Currency string  `db:"currency" json:"currency"`

	AgentID   *int64 `db:"agent_id" json:"agent_id,omitempty"`
	Published bool   `db:"published" json:"published"`

	Location ListingLocation `json:"location"`

	Images      []ListingImage `json:"images"`
	UnitSizes   []UnitSize     `json:"unit_sizes"`
	Features    []string       `json:"features"`
	Descriptors []Descriptor   `json:"descriptors"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ListingLocation is the persisted form of a LocationDraft.
type ListingLocation struct {
	ListingID        int64    `db:"listing_id" json:"-"`
	CountryID        int64    `db:"country_id" json:"country_id"`
	CountryName      string   `db:"country_name" json:"country_name"`
	CityID           *int64   `db:"city_id" json:"city_id,omitempty"`
	CityName         string   `db:"city_name" json:"city_name"`
	DistrictID       *int64   `db:"district_id" json:"district_id,omitempty"`
	DistrictName     string   `db:"district_name" json:"district_name"`
	NeighborhoodID   *int64   `db:"neighborhood_id" json:"neighborhood_id,omitempty"`
	NeighborhoodName string   `db:"neighborhood_name" json:"neighborhood_name"`
	StreetAddress    string   `db:"street_address" json:"street_address"`
	Zip              string   `db:"zip" json:"zip"`
	Lat              *float64 `db:"lat" json:"lat,omitempty"`
	Lng              *float64 `db:"lng" json:"lng,omitempty"`
}

// ListingImage is identified by its object path across edits, so reordering an
// image set does not recreate the rows.
type ListingImage struct {
	ID        int64  `db:"id" json:"id"`
	ListingID int64  `db:"listing_id" json:"-"`
	Path      string `db:"path" json:"path"`
	FullURL   string `db:"full_url" json:"full_url"`
	LargeURL  string `db:"large_url" json:"large_url"`
	ThumbURL  string `db:"thumb_url" json:"thumb_url"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type UnitSize struct {
	ListingID int64   `db:"listing_id" json:"-"`
	Name      string  `db:"name" json:"name"`
	MinM2     float64 `db:"min_m2" json:"min_m2"`
	MaxM2     float64 `db:"max_m2" json:"max_m2"`
}

// Descriptor is a catalogue attribute tag scoped to a listing category.
type Descriptor struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
}
