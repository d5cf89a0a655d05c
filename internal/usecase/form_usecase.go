package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/pkg/validator"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// FormStep is one page of the listing wizard.
type FormStep int

const (
	StepBasic FormStep = iota + 1
	StepLocation
	StepFeatures
	StepMedia
	StepContacts
)

var stepNames = map[FormStep]string{
	StepBasic:    "basic",
	StepLocation: "location",
	StepFeatures: "features",
	StepMedia:    "media",
	StepContacts: "contacts",
}

// formSession is the in-memory state of one wizard run. Nothing touches the
// database until submit, so an abandoned session costs only memory and is
// reclaimed by the sweeper.
type formSession struct {
	mu sync.Mutex

	id        string
	kind      domain.ListingKind
	listingID *int64
	step      FormStep

	basic    dto.BasicInfoRequest
	features dto.FeaturesStepRequest
	media    dto.MediaStepRequest
	contacts dto.ContactsStepRequest

	cascade *CascadeResolver

	touchedAt time.Time
}

// FormUseCase orchestrates the multi-step listing form: session registry,
// step gating, cascade delegation and the final atomic submit.
type FormUseCase struct {
	mu       sync.RWMutex
	sessions map[string]*formSession

	listingRepo  repository.ListingRepository
	locationRepo repository.LocationRepository
	geocoder     *GeocodeUseCase
	logger       *zap.Logger

	sessionTTL    time.Duration
	sweepInterval time.Duration
}

func NewFormUseCase(
	listingRepo repository.ListingRepository,
	locationRepo repository.LocationRepository,
	geocoder *GeocodeUseCase,
	logger *zap.Logger,
	sessionTTL time.Duration,
	sweepInterval time.Duration,
) *FormUseCase {
	return &FormUseCase{
		sessions:      make(map[string]*formSession),
		listingRepo:   listingRepo,
		locationRepo:  locationRepo,
		geocoder:      geocoder,
		logger:        logger,
		sessionTTL:    sessionTTL,
		sweepInterval: sweepInterval,
	}
}

// Run sweeps expired sessions until the context is cancelled.
func (uc *FormUseCase) Run(ctx context.Context) {
	ticker := time.NewTicker(uc.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.sweep()
		}
	}
}

func (uc *FormUseCase) sweep() {
	cutoff := time.Now().Add(-uc.sessionTTL)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	for id, s := range uc.sessions {
		s.mu.Lock()
		expired := s.touchedAt.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(uc.sessions, id)
			uc.logger.Info("Swept expired form session", zap.String("session_id", id))
		}
	}
}

// Start opens a new session, blank or pre-filled from an existing listing.
func (uc *FormUseCase) Start(ctx context.Context, req dto.StartFormRequest) (*dto.FormSessionResponse, error) {
	kind := domain.ListingKind(req.Kind)
	if !kind.Valid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"kind": req.Kind})
	}

	s := &formSession{
		id:        uuid.New().String(),
		kind:      kind,
		step:      StepBasic,
		cascade:   NewCascadeResolver(uc.locationRepo, uc.geocoder, uc.logger),
		touchedAt: time.Now(),
	}

	if req.ListingID != nil {
		if err := uc.prefill(ctx, s, *req.ListingID); err != nil {
			return nil, err
		}
	} else if err := s.cascade.Init(ctx); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.sessions[s.id] = s
	uc.mu.Unlock()

	return uc.toResponse(s), nil
}

func (uc *FormUseCase) prefill(ctx context.Context, s *formSession, listingID int64) error {
	l, err := uc.listingRepo.GetByID(ctx, s.kind, listingID)
	if err != nil {
		return err
	}

	s.listingID = &l.ID
	s.basic = dto.BasicInfoRequest{
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Price:       l.Price,
		Currency:    l.Currency,
	}
	for _, u := range l.UnitSizes {
		s.features.UnitSizes = append(s.features.UnitSizes, dto.UnitSizeInput{Name: u.Name, MinM2: u.MinM2, MaxM2: u.MaxM2})
	}
	s.features.Features = append(s.features.Features, l.Features...)
	for _, d := range l.Descriptors {
		s.features.Descriptors = append(s.features.Descriptors, dto.DescriptorInput{ID: d.ID})
	}
	for _, img := range l.Images {
		s.media.Images = append(s.media.Images, dto.ImageInput{
			Path:     img.Path,
			FullURL:  img.FullURL,
			LargeURL: img.LargeURL,
			ThumbURL: img.ThumbURL,
		})
	}
	s.contacts.AgentID = l.AgentID

	return s.cascade.Restore(ctx, draftFromLocation(l.Location))
}

func draftFromLocation(loc domain.ListingLocation) domain.LocationDraft {
	draft := domain.LocationDraft{
		Country:       &domain.GeoSelection{ID: loc.CountryID, Name: loc.CountryName},
		StreetAddress: loc.StreetAddress,
		Zip:           loc.Zip,
	}
	if loc.CityID != nil {
		draft.City = &domain.GeoSelection{ID: *loc.CityID, Name: loc.CityName}
	}
	if loc.DistrictID != nil {
		draft.District = &domain.GeoSelection{ID: *loc.DistrictID, Name: loc.DistrictName}
	}
	if loc.NeighborhoodID != nil {
		draft.Neighborhood = &domain.GeoSelection{ID: *loc.NeighborhoodID, Name: loc.NeighborhoodName}
	}
	if loc.Lat != nil && loc.Lng != nil {
		draft.Coordinate = &domain.Coordinate{Lat: *loc.Lat, Lng: *loc.Lng}
	}
	return draft
}

func (uc *FormUseCase) session(id string) (*formSession, error) {
	uc.mu.RLock()
	s, ok := uc.sessions[id]
	uc.mu.RUnlock()
	if !ok {
		return nil, errors.ErrFormSessionNotFound
	}

	s.mu.Lock()
	if time.Since(s.touchedAt) > uc.sessionTTL {
		s.mu.Unlock()
		uc.mu.Lock()
		delete(uc.sessions, id)
		uc.mu.Unlock()
		return nil, errors.ErrFormSessionNotFound
	}
	s.touchedAt = time.Now()
	s.mu.Unlock()
	return s, nil
}

// Get returns the current session state.
func (uc *FormUseCase) Get(ctx context.Context, id string) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(s), nil
}

// SetBasic stores step 1. Changing the category invalidates the selected
// descriptors, which are scoped to it.
func (uc *FormUseCase) SetBasic(ctx context.Context, id string, req dto.BasicInfoRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.basic.Category != "" && s.basic.Category != req.Category {
		s.features.Descriptors = nil
	}
	s.basic = req
	s.mu.Unlock()

	return uc.toResponse(s), nil
}

// GoToStep moves the wizard. Moving backward is always allowed; moving
// forward requires every step before the target to validate.
func (uc *FormUseCase) GoToStep(ctx context.Context, id string, target int) (*dto.FormSessionResponse, error) {
	step := FormStep(target)
	if step < StepBasic || step > StepContacts {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"step": target})
	}

	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if step > s.step {
		for check := StepBasic; check < step; check++ {
			if field, ok := uc.stepError(s, check); ok {
				return nil, errors.ErrStepNotAllowed.WithDetails(map[string]interface{}{
					"step":  stepNames[check],
					"field": field,
				})
			}
		}
	}
	s.step = step
	return uc.toResponseLocked(s), nil
}

// stepError returns the first failing field of a step. Callers hold s.mu.
func (uc *FormUseCase) stepError(s *formSession, step FormStep) (string, bool) {
	switch step {
	case StepBasic:
		return firstValidationField(validator.Validate(s.basic))
	case StepLocation:
		draft := s.cascade.Draft()
		if draft.Country == nil {
			return "country", true
		}
		if draft.City == nil {
			return "city", true
		}
		return "", false
	case StepFeatures:
		return firstValidationField(validator.Validate(s.features))
	case StepMedia:
		return firstValidationField(validator.Validate(s.media))
	case StepContacts:
		return firstValidationField(validator.Validate(s.contacts))
	}
	return "", false
}

func firstValidationField(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	if fields, ok := validator.FieldErrors(err); ok && len(fields) > 0 {
		return fields[0], true
	}
	return "request", true
}

// SelectLocation delegates to the session's cascade.
func (uc *FormUseCase) SelectLocation(ctx context.Context, id string, req dto.SelectLocationRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	if err := s.cascade.Select(ctx, domain.GeoLevel(req.Level), req.ID); err != nil {
		return nil, err
	}
	return uc.toResponse(s), nil
}

// SetAddress stores the typed street address.
func (uc *FormUseCase) SetAddress(ctx context.Context, id string, req dto.AddressRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	s.cascade.SetAddress(req.StreetAddress, req.Zip)
	return uc.toResponse(s), nil
}

// ProposeCoordinate turns a map click into a pending address suggestion.
func (uc *FormUseCase) ProposeCoordinate(ctx context.Context, id string, req dto.ReverseGeocodeRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.cascade.ProposeCoordinate(ctx, req.Lat, req.Lng); err != nil {
		return nil, err
	}
	return uc.toResponse(s), nil
}

func (uc *FormUseCase) AcceptSuggestion(ctx context.Context, id string) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	if err := s.cascade.AcceptSuggestion(); err != nil {
		return nil, err
	}
	return uc.toResponse(s), nil
}

func (uc *FormUseCase) RejectSuggestion(ctx context.Context, id string) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	s.cascade.RejectSuggestion()
	return uc.toResponse(s), nil
}

func (uc *FormUseCase) SetFeatures(ctx context.Context, id string, req dto.FeaturesStepRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.features = req
	s.mu.Unlock()
	return uc.toResponse(s), nil
}

func (uc *FormUseCase) SetMedia(ctx context.Context, id string, req dto.MediaStepRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.media = req
	s.mu.Unlock()
	return uc.toResponse(s), nil
}

func (uc *FormUseCase) SetContacts(ctx context.Context, id string, req dto.ContactsStepRequest) (*dto.FormSessionResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.contacts = req
	s.mu.Unlock()
	return uc.toResponse(s), nil
}

// Submit validates every step, persists the listing in one transaction and
// closes the session. A persistence failure keeps the session alive so the
// user's work is not lost.
func (uc *FormUseCase) Submit(ctx context.Context, id string) (*dto.SubmitResponse, error) {
	s, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for step := StepBasic; step <= StepContacts; step++ {
		if field, ok := uc.stepError(s, step); ok {
			s.mu.Unlock()
			return nil, errors.ErrStepNotAllowed.WithDetails(map[string]interface{}{
				"step":  stepNames[step],
				"field": field,
			})
		}
	}
	listing := uc.buildListing(s)
	listingID := s.listingID
	s.mu.Unlock()

	if listingID != nil {
		listing.ID = *listingID
		err = uc.listingRepo.Update(ctx, listing)
	} else {
		err = uc.listingRepo.Save(ctx, listing)
	}
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	delete(uc.sessions, id)
	uc.mu.Unlock()

	return &dto.SubmitResponse{Listing: listing}, nil
}

// buildListing assembles the domain listing from session state. Callers hold
// s.mu.
func (uc *FormUseCase) buildListing(s *formSession) *domain.Listing {
	draft := s.cascade.Draft()

	l := &domain.Listing{
		Kind:        s.kind,
		Title:       s.basic.Title,
		Slug:        utils.Slugify(s.basic.Title),
		Description: s.basic.Description,
		Category:    s.basic.Category,
		Price:       s.basic.Price,
		Currency:    s.basic.Currency,
		AgentID:     s.contacts.AgentID,
	}

	loc := domain.ListingLocation{
		StreetAddress: draft.StreetAddress,
		Zip:           draft.Zip,
	}
	if draft.Country != nil {
		loc.CountryID = draft.Country.ID
		loc.CountryName = draft.Country.Name
	}
	if draft.City != nil {
		cityID := draft.City.ID
		loc.CityID = &cityID
		loc.CityName = draft.City.Name
	}
	if draft.District != nil {
		districtID := draft.District.ID
		loc.DistrictID = &districtID
		loc.DistrictName = draft.District.Name
	}
	if draft.Neighborhood != nil {
		neighborhoodID := draft.Neighborhood.ID
		loc.NeighborhoodID = &neighborhoodID
		loc.NeighborhoodName = draft.Neighborhood.Name
	}
	if draft.Coordinate != nil {
		lat, lng := draft.Coordinate.Lat, draft.Coordinate.Lng
		loc.Lat, loc.Lng = &lat, &lng
	}
	l.Location = loc

	for i, img := range s.media.Images {
		l.Images = append(l.Images, domain.ListingImage{
			Path:      img.Path,
			FullURL:   img.FullURL,
			LargeURL:  img.LargeURL,
			ThumbURL:  img.ThumbURL,
			SortOrder: i,
		})
	}
	for _, u := range s.features.UnitSizes {
		l.UnitSizes = append(l.UnitSizes, domain.UnitSize{Name: u.Name, MinM2: u.MinM2, MaxM2: u.MaxM2})
	}
	l.Features = append(l.Features, s.features.Features...)
	for _, d := range s.features.Descriptors {
		l.Descriptors = append(l.Descriptors, domain.Descriptor{ID: d.ID})
	}

	return l
}

func (uc *FormUseCase) toResponse(s *formSession) *dto.FormSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uc.toResponseLocked(s)
}

func (uc *FormUseCase) toResponseLocked(s *formSession) *dto.FormSessionResponse {
	cascade := make(map[string]dto.LevelSnapshot)
	for level, snap := range s.cascade.Snapshot() {
		cascade[string(level)] = dto.LevelSnapshot{
			State:    string(snap.State),
			Options:  snap.Options,
			Selected: snap.Selected,
		}
	}

	return &dto.FormSessionResponse{
		ID:         s.id,
		Kind:       s.kind,
		ListingID:  s.listingID,
		Step:       int(s.step),
		Basic:      s.basic,
		Draft:      s.cascade.Draft(),
		Cascade:    cascade,
		Suggestion: s.cascade.Suggestion(),
		Features:   s.features,
		Media:      s.media,
		Contacts:   s.contacts,
	}
}
