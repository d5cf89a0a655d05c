package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/pkg/validator"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// FormHandler exposes the listing wizard sessions.
type FormHandler struct {
	formUC *usecase.FormUseCase
	logger *zap.Logger
}

func NewFormHandler(formUC *usecase.FormUseCase, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		formUC: formUC,
		logger: logger,
	}
}

// Start godoc
// @Summary Open a wizard session
// @Description Blank for a new listing, or pre-filled when listing_id is given.
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body dto.StartFormRequest true "Session parameters"
// @Success 201 {object} utils.SuccessResponse{data=dto.FormSessionResponse}
// @Router /api/v1/forms [post]
func (h *FormHandler) Start(c *fiber.Ctx) error {
	var req dto.StartFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.Start(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, session)
}

func (h *FormHandler) Get(c *fiber.Ctx) error {
	session, err := h.formUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

// GoToStep godoc
// @Summary Move the wizard to another step
// @Description Backward is always allowed; forward requires every earlier step to validate.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.GoToStepRequest true "Target step"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormSessionResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/step [post]
func (h *FormHandler) GoToStep(c *fiber.Ctx) error {
	var req dto.GoToStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.GoToStep(c.Context(), c.Params("id"), req.Step)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) SetBasic(c *fiber.Ctx) error {
	var req dto.BasicInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SetBasic(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

// SelectLocation godoc
// @Summary Select a hierarchy node
// @Description Resets every deeper level and reloads its options.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectLocationRequest true "Level and node"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormSessionResponse}
// @Router /api/v1/forms/{id}/location [post]
func (h *FormHandler) SelectLocation(c *fiber.Ctx) error {
	var req dto.SelectLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SelectLocation(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) SetAddress(c *fiber.Ctx) error {
	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SetAddress(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

// ProposeCoordinate godoc
// @Summary Reverse-geocode a map click into a pending suggestion
// @Description The draft address is untouched until the suggestion is accepted.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ReverseGeocodeRequest true "Clicked point"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormSessionResponse}
// @Router /api/v1/forms/{id}/coordinate [post]
func (h *FormHandler) ProposeCoordinate(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.ProposeCoordinate(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) AcceptSuggestion(c *fiber.Ctx) error {
	session, err := h.formUC.AcceptSuggestion(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) RejectSuggestion(c *fiber.Ctx) error {
	session, err := h.formUC.RejectSuggestion(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) SetFeatures(c *fiber.Ctx) error {
	var req dto.FeaturesStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SetFeatures(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) SetMedia(c *fiber.Ctx) error {
	var req dto.MediaStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SetMedia(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

func (h *FormHandler) SetContacts(c *fiber.Ctx) error {
	var req dto.ContactsStepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.formUC.SetContacts(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session, nil)
}

// Submit godoc
// @Summary Validate every step and persist the listing
// @Description The first failing step aborts the submit before any database write.
// @Tags Forms
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} utils.SuccessResponse{data=dto.SubmitResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/submit [post]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	resp, err := h.formUC.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}
