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

type ContactHandler struct {
	contactUC *usecase.ContactUseCase
	logger    *zap.Logger
}

func NewContactHandler(contactUC *usecase.ContactUseCase, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactUC: contactUC,
		logger:    logger,
	}
}

// Submit godoc
// @Summary Leave a contact message (public)
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body dto.ContactLeadRequest true "Message"
// @Success 201 {object} utils.SuccessResponse{data=domain.ContactLead}
// @Router /api/v1/contacts [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	lead, err := h.contactUC.Submit(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, lead)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	var status *domain.LeadStatus
	if v := c.Query("status"); v != "" {
		s := domain.LeadStatus(v)
		status = &s
	}

	resp, err := h.contactUC.List(c.Context(), status, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *ContactHandler) Resolve(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.contactUC.Resolve(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"resolved": id}, nil)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.contactUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}
