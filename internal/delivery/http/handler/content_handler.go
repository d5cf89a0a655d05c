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

type ContentHandler struct {
	contentUC *usecase.ContentUseCase
	logger    *zap.Logger
}

func NewContentHandler(contentUC *usecase.ContentUseCase, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentUC: contentUC,
		logger:    logger,
	}
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	blocks, err := h.contentUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, blocks, &utils.Meta{Total: len(blocks)})
}

// GetByKey godoc
// @Summary Fetch a content block by key (public)
// @Tags Contents
// @Produce json
// @Param key path string true "Block key"
// @Success 200 {object} utils.SuccessResponse{data=domain.ContentBlock}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contents/{key} [get]
func (h *ContentHandler) GetByKey(c *fiber.Ctx) error {
	block, err := h.contentUC.GetByKey(c.Context(), c.Params("key"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, block, nil)
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var req dto.ContentBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	block, err := h.contentUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, block)
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	var req dto.ContentBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	block, err := h.contentUC.Update(c.Context(), c.Params("key"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, block, nil)
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.contentUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}
