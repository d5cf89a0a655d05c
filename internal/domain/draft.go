package domain

// Coordinate is a confirmed (latitude, longitude) pair. A draft holds at most
// one; selecting a new ancestor level or accepting a map point replaces it.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is the reverse-geocoded postal address of a coordinate.
type Address struct {
	Street    string `json:"street"`
	Zip       string `json:"zip"`
	Formatted string `json:"formatted"`
}

// GeoSelection is one chosen node of the hierarchy inside a draft.
type GeoSelection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LocationDraft is the transient location state of a form in progress. It is
// owned by the form orchestrator for the duration of one edit session and
// written to the listing's location row on submit.
type LocationDraft struct {
	Country       *GeoSelection `json:"country,omitempty"`
	City          *GeoSelection `json:"city,omitempty"`
	District      *GeoSelection `json:"district,omitempty"`
	Neighborhood  *GeoSelection `json:"neighborhood,omitempty"`
	StreetAddress string        `json:"street_address"`
	Zip           string        `json:"zip"`
	Coordinate    *Coordinate   `json:"coordinate,omitempty"`
}

// GeocodeSuggestion is a pending street address proposed by a map click.
// It must be explicitly accepted before it overwrites the draft, so a manually
// typed address is never silently clobbered.
type GeocodeSuggestion struct {
	Street     string     `json:"street"`
	Zip        string     `json:"zip"`
	Formatted  string     `json:"formatted"`
	Coordinate Coordinate `json:"coordinate"`
}
