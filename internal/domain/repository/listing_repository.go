package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

// ListingRepository persists properties, projects and offices together with
// their location row and nested children in one transaction per call.
type ListingRepository interface {
	List(ctx context.Context, kind domain.ListingKind, page, pageSize int) ([]domain.Listing, int, error)
	GetByID(ctx context.Context, kind domain.ListingKind, id int64) (*domain.Listing, error)

	// Save assigns the listing id and inserts the listing with all children.
	Save(ctx context.Context, l *domain.Listing) error

	// Update rewrites the listing row and location, diffs images by object
	// path, and replaces the value collections wholesale.
	Update(ctx context.Context, l *domain.Listing) error

	// Delete removes the listing and its owned children. External references
	// (agents attached to an office) surface as ErrHasDependents.
	Delete(ctx context.Context, kind domain.ListingKind, id int64) error

	SetPublished(ctx context.Context, kind domain.ListingKind, id int64, published bool) error
}
