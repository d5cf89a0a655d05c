package dto

import "github.com/estate-backoffice/internal/domain"

// StartFormRequest opens a draft session, either blank or pre-filled from an
// existing listing.
type StartFormRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=property project office"`
	ListingID *int64 `json:"listing_id" validate:"omitempty,min=1"`
}

type GoToStepRequest struct {
	Step int `json:"step" validate:"required,min=1,max=5"`
}

// BasicInfoRequest is step 1 of the wizard.
type BasicInfoRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=20000"`
	Category    string  `json:"category" validate:"required,min=2,max=60"`
	Price       float64 `json:"price" validate:"omitempty,min=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
}

// SelectLocationRequest picks one node at a hierarchy level (step 2).
type SelectLocationRequest struct {
	Level string `json:"level" validate:"required,oneof=country city district neighborhood"`
	ID    int64  `json:"id" validate:"required,min=1"`
}

// AddressRequest sets the manually typed street address of the draft.
type AddressRequest struct {
	StreetAddress string `json:"street_address" validate:"omitempty,max=400"`
	Zip           string `json:"zip" validate:"omitempty,max=16"`
}

// FeaturesStepRequest is step 3.
type FeaturesStepRequest struct {
	UnitSizes   []UnitSizeInput   `json:"unit_sizes" validate:"omitempty,dive"`
	Features    []string          `json:"features" validate:"omitempty,dive,min=1"`
	Descriptors []DescriptorInput `json:"descriptors" validate:"omitempty,dive"`
}

// MediaStepRequest is step 4.
type MediaStepRequest struct {
	Images []ImageInput `json:"images" validate:"omitempty,dive"`
}

// ContactsStepRequest is step 5.
type ContactsStepRequest struct {
	AgentID *int64 `json:"agent_id" validate:"omitempty,min=1"`
}

// LevelSnapshot is the externally visible state of one cascade level.
type LevelSnapshot struct {
	State    string               `json:"state"`
	Options  []domain.GeoOption   `json:"options,omitempty"`
	Selected *domain.GeoSelection `json:"selected,omitempty"`
}

type FormSessionResponse struct {
	ID         string                    `json:"id"`
	Kind       domain.ListingKind        `json:"kind"`
	ListingID  *int64                    `json:"listing_id,omitempty"`
	Step       int                       `json:"step"`
	Basic      BasicInfoRequest          `json:"basic"`
	Draft      domain.LocationDraft      `json:"draft"`
	Cascade    map[string]LevelSnapshot  `json:"cascade"`
	Suggestion *domain.GeocodeSuggestion `json:"suggestion,omitempty"`
	Features   FeaturesStepRequest       `json:"features"`
	Media      MediaStepRequest          `json:"media"`
	Contacts   ContactsStepRequest       `json:"contacts"`
}

type SubmitResponse struct {
	Listing *domain.Listing `json:"listing"`
}
