package usecase

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
)

// LevelState is the lifecycle of one cascade level's option list.
type LevelState string

const (
	StateEmpty    LevelState = "empty"
	StateLoading  LevelState = "loading"
	StateLoaded   LevelState = "loaded"
	StateSelected LevelState = "selected"
)

// cascadePageSize bounds option lists served to the selects. No level of the
// hierarchy is expected to exceed it.
const cascadePageSize = 500

var levelOrder = [4]domain.GeoLevel{
	domain.LevelCountry,
	domain.LevelCity,
	domain.LevelDistrict,
	domain.LevelNeighborhood,
}

type levelSlot struct {
	state      LevelState
	options    []domain.GeoOption
	generation uint64
}

// CascadeResolver drives the country > city > district > neighborhood selects
// of one form session. Selecting a node resets every deeper level, loads the
// children of the new selection and refreshes the draft coordinate. Each child
// load carries the generation current at the moment the selection was made;
// a load that finishes after a newer selection is discarded so rapid clicking
// can never attach district options to the wrong city.
type CascadeResolver struct {
	mu         sync.Mutex
	levels     [4]levelSlot
	draft      domain.LocationDraft
	suggestion *domain.GeocodeSuggestion
	draftGen   uint64

	locationRepo repository.LocationRepository
	geocoder     *GeocodeUseCase
	logger       *zap.Logger
}

func NewCascadeResolver(
	locationRepo repository.LocationRepository,
	geocoder *GeocodeUseCase,
	logger *zap.Logger,
) *CascadeResolver {
	r := &CascadeResolver{
		locationRepo: locationRepo,
		geocoder:     geocoder,
		logger:       logger,
	}
	for i := range r.levels {
		r.levels[i].state = StateEmpty
	}
	return r
}

// Init loads the country options. Called once when the session opens.
func (r *CascadeResolver) Init(ctx context.Context) error {
	r.mu.Lock()
	r.levels[0].state = StateLoading
	gen := r.levels[0].generation
	r.mu.Unlock()

	countries, _, err := r.locationRepo.ListCountries(ctx, 1, cascadePageSize)
	if err != nil {
		return err
	}

	options := make([]domain.GeoOption, 0, len(countries))
	for _, c := range countries {
		options = append(options, domain.GeoOption{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.levels[0].generation != gen {
		return nil
	}
	r.levels[0].options = options
	r.levels[0].state = StateLoaded
	return nil
}

// Select picks a node at the given level. The node must be a child of the
// current selection one level up.
func (r *CascadeResolver) Select(ctx context.Context, level domain.GeoLevel, id int64) error {
	depth := level.Depth()
	if depth < 0 {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"level": string(level)})
	}

	selection, err := r.fetchNode(ctx, level, id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if depth > 0 && r.selectionAt(depth-1) == nil {
		r.mu.Unlock()
		return errors.ErrStepNotAllowed.WithMessage("Select the parent level first")
	}

	r.setSelection(depth, selection)
	r.levels[depth].state = StateSelected
	r.suggestion = nil

	// Deeper levels are now meaningless and reset. Bumping their generation
	// orphans any load still in flight for them.
	for d := depth + 1; d < len(r.levels); d++ {
		r.setSelection(d, nil)
		r.levels[d].options = nil
		r.levels[d].state = StateEmpty
		r.levels[d].generation++
	}

	var childGen uint64
	loadChildren := depth+1 < len(r.levels)
	if loadChildren {
		r.levels[depth+1].state = StateLoading
		childGen = r.levels[depth+1].generation
	}

	r.draftGen++
	draftGen := r.draftGen
	chain := r.chainLocked()
	r.mu.Unlock()

	if loadChildren {
		if err := r.loadChildOptions(ctx, depth+1, id, childGen); err != nil {
			return err
		}
	}

	if depth >= domain.LevelCity.Depth() {
		r.refreshCoordinate(ctx, chain, draftGen)
	}
	return nil
}

func (r *CascadeResolver) fetchNode(ctx context.Context, level domain.GeoLevel, id int64) (*domain.GeoSelection, error) {
	switch level {
	case domain.LevelCountry:
		c, err := r.locationRepo.GetCountry(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.GeoSelection{ID: c.ID, Name: c.Name, Slug: c.Slug}, nil
	case domain.LevelCity:
		c, err := r.locationRepo.GetCity(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.GeoSelection{ID: c.ID, Name: c.Name, Slug: c.Slug}, nil
	case domain.LevelDistrict:
		d, err := r.locationRepo.GetDistrict(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.GeoSelection{ID: d.ID, Name: d.Name, Slug: d.Slug}, nil
	case domain.LevelNeighborhood:
		n, err := r.locationRepo.GetNeighborhood(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.GeoSelection{ID: n.ID, Name: n.Name, Slug: n.Slug}, nil
	}
	return nil, errors.ErrInvalidRequest
}

func (r *CascadeResolver) loadChildOptions(ctx context.Context, depth int, parentID int64, gen uint64) error {
	var options []domain.GeoOption
	var err error

	switch levelOrder[depth] {
	case domain.LevelCity:
		var cities []domain.City
		cities, _, err = r.locationRepo.ListCities(ctx, &parentID, 1, cascadePageSize)
		for _, c := range cities {
			options = append(options, domain.GeoOption{ID: c.ID, Name: c.Name, Slug: c.Slug})
		}
	case domain.LevelDistrict:
		var districts []domain.District
		districts, _, err = r.locationRepo.ListDistricts(ctx, &parentID, 1, cascadePageSize)
		for _, d := range districts {
			options = append(options, domain.GeoOption{ID: d.ID, Name: d.Name, Slug: d.Slug})
		}
	case domain.LevelNeighborhood:
		var neighborhoods []domain.Neighborhood
		neighborhoods, _, err = r.locationRepo.ListNeighborhoods(ctx, &parentID, 1, cascadePageSize)
		for _, n := range neighborhoods {
			options = append(options, domain.GeoOption{ID: n.ID, Name: n.Name, Slug: n.Slug})
		}
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.levels[depth].generation != gen {
		r.logger.Debug("Discarding stale option load",
			zap.String("level", string(levelOrder[depth])))
		return nil
	}
	r.levels[depth].options = options
	r.levels[depth].state = StateLoaded
	return nil
}

// refreshCoordinate re-centers the draft on the current selection chain. A
// failed lookup keeps the previous coordinate: a stale pin beats a vanished
// one.
func (r *CascadeResolver) refreshCoordinate(ctx context.Context, chain string, gen uint64) {
	coord, err := r.geocoder.ResolveChain(ctx, chain)
	if err != nil {
		r.logger.Warn("Coordinate refresh failed, keeping previous",
			zap.String("chain", chain),
			zap.Error(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draftGen != gen {
		return
	}
	r.draft.Coordinate = coord
}

// chainLocked builds the geocode query, most specific selection first.
// Callers must hold the mutex.
func (r *CascadeResolver) chainLocked() string {
	parts := make([]string, 0, 4)
	for d := len(r.levels) - 1; d >= 0; d-- {
		if sel := r.selectionAt(d); sel != nil {
			parts = append(parts, sel.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func (r *CascadeResolver) selectionAt(depth int) *domain.GeoSelection {
	switch levelOrder[depth] {
	case domain.LevelCountry:
		return r.draft.Country
	case domain.LevelCity:
		return r.draft.City
	case domain.LevelDistrict:
		return r.draft.District
	default:
		return r.draft.Neighborhood
	}
}

func (r *CascadeResolver) setSelection(depth int, sel *domain.GeoSelection) {
	switch levelOrder[depth] {
	case domain.LevelCountry:
		r.draft.Country = sel
	case domain.LevelCity:
		r.draft.City = sel
	case domain.LevelDistrict:
		r.draft.District = sel
	default:
		r.draft.Neighborhood = sel
	}
}

// SetAddress records the manually typed street address.
func (r *CascadeResolver) SetAddress(street, zip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft.StreetAddress = street
	r.draft.Zip = zip
}

// ProposeCoordinate reverse-geocodes a map click into a pending suggestion.
// The draft is untouched until the suggestion is accepted, so a typed address
// survives an accidental click.
func (r *CascadeResolver) ProposeCoordinate(ctx context.Context, lat, lng float64) (*domain.GeocodeSuggestion, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	addr, err := r.geocoder.geocoderRepo.Reverse(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	suggestion := &domain.GeocodeSuggestion{
		Street:     addr.Street,
		Zip:        addr.Zip,
		Formatted:  addr.Formatted,
		Coordinate: domain.Coordinate{Lat: lat, Lng: lng},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestion = suggestion
	return suggestion, nil
}

// AcceptSuggestion writes the pending suggestion into the draft.
func (r *CascadeResolver) AcceptSuggestion() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.suggestion == nil {
		return errors.ErrInvalidRequest.WithMessage("No pending suggestion")
	}
	r.draft.StreetAddress = r.suggestion.Street
	r.draft.Zip = r.suggestion.Zip
	coord := r.suggestion.Coordinate
	r.draft.Coordinate = &coord
	r.suggestion = nil
	return nil
}

// RejectSuggestion discards the pending suggestion, leaving the draft as is.
func (r *CascadeResolver) RejectSuggestion() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestion = nil
}

// Draft returns a copy of the current location draft.
func (r *CascadeResolver) Draft() domain.LocationDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Suggestion returns the pending suggestion, if any.
func (r *CascadeResolver) Suggestion() *domain.GeocodeSuggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.suggestion == nil {
		return nil
	}
	s := *r.suggestion
	return &s
}

// LevelSnapshot is the externally visible state of one level.
type LevelSnapshot struct {
	State    LevelState
	Options  []domain.GeoOption
	Selected *domain.GeoSelection
}

// Snapshot returns the state of all four levels for rendering.
func (r *CascadeResolver) Snapshot() map[domain.GeoLevel]LevelSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[domain.GeoLevel]LevelSnapshot, len(levelOrder))
	for d, level := range levelOrder {
		out[level] = LevelSnapshot{
			State:    r.levels[d].state,
			Options:  r.levels[d].options,
			Selected: r.selectionAt(d),
		}
	}
	return out
}

// Restore seeds the resolver from a persisted location row when an existing
// listing is opened for editing, then reloads each level's options.
func (r *CascadeResolver) Restore(ctx context.Context, draft domain.LocationDraft) error {
	if err := r.Init(ctx); err != nil {
		return err
	}

	selections := []*domain.GeoSelection{draft.Country, draft.City, draft.District, draft.Neighborhood}
	for depth, sel := range selections {
		if sel == nil {
			break
		}
		if err := r.Select(ctx, levelOrder[depth], sel.ID); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft.StreetAddress = draft.StreetAddress
	r.draft.Zip = draft.Zip
	if draft.Coordinate != nil {
		coord := *draft.Coordinate
		r.draft.Coordinate = &coord
	}
	return nil
}
