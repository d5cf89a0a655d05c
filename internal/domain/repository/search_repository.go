package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

// SearchRepository wraps the hosted search collection. One document per
// published listing, keyed by "<kind>-<id>".
type SearchRepository interface {
	UpsertDocument(ctx context.Context, doc *domain.ListingDocument) error
	DeleteDocument(ctx context.Context, documentID string) error
}
