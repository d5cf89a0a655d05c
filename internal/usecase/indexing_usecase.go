package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

// IndexingUseCase turns index events into search collection writes. The event
// carries only the listing key; the current document is always rebuilt from
// the database so out-of-order events converge on the latest state.
type IndexingUseCase struct {
	listingRepo repository.ListingRepository
	agentRepo   repository.AgentRepository
	searchRepo  repository.SearchRepository
	logger      *zap.Logger
}

func NewIndexingUseCase(
	listingRepo repository.ListingRepository,
	agentRepo repository.AgentRepository,
	searchRepo repository.SearchRepository,
	logger *zap.Logger,
) *IndexingUseCase {
	return &IndexingUseCase{
		listingRepo: listingRepo,
		agentRepo:   agentRepo,
		searchRepo:  searchRepo,
		logger:      logger,
	}
}

// DocumentID keys the search document: one collection for all three kinds.
func DocumentID(kind domain.ListingKind, id int64) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// HandleEvent processes one stream event.
func (uc *IndexingUseCase) HandleEvent(ctx context.Context, event domain.ListingIndexEvent) error {
	switch event.Action {
	case domain.IndexDelete:
		return uc.searchRepo.DeleteDocument(ctx, DocumentID(event.Kind, event.ID))
	case domain.IndexUpsert:
		return uc.upsert(ctx, event)
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"action": string(event.Action),
	})
}

func (uc *IndexingUseCase) upsert(ctx context.Context, event domain.ListingIndexEvent) error {
	l, err := uc.listingRepo.GetByID(ctx, event.Kind, event.ID)
	if err != nil {
		// Unpublished-then-deleted races end up here. The document must not
		// outlive the listing.
		if err == errors.ErrNotFound {
			uc.logger.Warn("Listing vanished before indexing, removing document",
				zap.String("kind", string(event.Kind)),
				zap.Int64("listing_id", event.ID))
			return uc.searchRepo.DeleteDocument(ctx, DocumentID(event.Kind, event.ID))
		}
		return err
	}

	if !l.Published {
		return uc.searchRepo.DeleteDocument(ctx, DocumentID(event.Kind, event.ID))
	}

	doc := uc.buildDocument(ctx, l)
	return uc.searchRepo.UpsertDocument(ctx, doc)
}

func (uc *IndexingUseCase) buildDocument(ctx context.Context, l *domain.Listing) *domain.ListingDocument {
	doc := &domain.ListingDocument{
		ID:           DocumentID(l.Kind, l.ID),
		Kind:         string(l.Kind),
		Title:        l.Title,
		Slug:         l.Slug,
		Category:     l.Category,
		Price:        l.Price,
		Currency:     l.Currency,
		Country:      l.Location.CountryName,
		City:         l.Location.CityName,
		District:     l.Location.DistrictName,
		Neighborhood: l.Location.NeighborhoodName,
		Lat:          l.Location.Lat,
		Lng:          l.Location.Lng,
		Features:     l.Features,
	}

	if l.AgentID != nil {
		agent, err := uc.agentRepo.GetByID(ctx, *l.AgentID)
		if err != nil {
			// The document is still useful without the contact block.
			uc.logger.Warn("Failed to load agent for document",
				zap.Int64("agent_id", *l.AgentID),
				zap.Error(err))
		} else {
			doc.AgentName = agent.Name
			doc.AgentPhone = agent.Phone
		}
	}
	return doc
}
