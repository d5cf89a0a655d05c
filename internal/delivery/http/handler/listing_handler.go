package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/pkg/validator"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// ListingHandler serves properties, projects and offices through one route
// tree, discriminated by the :kind segment.
type ListingHandler struct {
	listingUC *usecase.ListingUseCase
	logger    *zap.Logger
}

func NewListingHandler(listingUC *usecase.ListingUseCase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listingUC: listingUC,
		logger:    logger,
	}
}

var kindSegments = map[string]domain.ListingKind{
	"properties": domain.KindProperty,
	"projects":   domain.KindProject,
	"offices":    domain.KindOffice,
}

func kindFromParams(c *fiber.Ctx) (domain.ListingKind, error) {
	kind, ok := kindSegments[c.Params("kind")]
	if !ok {
		return "", errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"kind": c.Params("kind"),
		})
	}
	return kind, nil
}

// List godoc
// @Summary List listings of one kind
// @Tags Listings
// @Produce json
// @Param kind path string true "properties | projects | offices"
// @Param page query int false "Page" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingListResponse}
// @Router /api/v1/listings/{kind} [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.listingUC.List(c.Context(), kind, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	listing, err := h.listingUC.Get(c.Context(), kind, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, listing, nil)
}

// Create godoc
// @Summary Create a listing directly (without the wizard)
// @Tags Listings
// @Accept json
// @Produce json
// @Param kind path string true "properties | projects | offices"
// @Param request body dto.ListingRequest true "Listing"
// @Success 201 {object} utils.SuccessResponse{data=domain.Listing}
// @Router /api/v1/listings/{kind} [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	listing, err := h.listingUC.Create(c.Context(), kind, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, listing)
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	listing, err := h.listingUC.Update(c.Context(), kind, id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, listing, nil)
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.listingUC.Delete(c.Context(), kind, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}

// Publish godoc
// @Summary Publish a listing and queue it for indexing
// @Tags Listings
// @Param kind path string true "properties | projects | offices"
// @Param id path int true "Listing ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/listings/{kind}/{id}/publish [post]
func (h *ListingHandler) Publish(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.listingUC.Publish(c.Context(), kind, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"published": true}, nil)
}

func (h *ListingHandler) Unpublish(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.listingUC.Unpublish(c.Context(), kind, id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"published": false}, nil)
}
