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

type AgentHandler struct {
	agentUC *usecase.AgentUseCase
	logger  *zap.Logger
}

func NewAgentHandler(agentUC *usecase.AgentUseCase, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agentUC: agentUC,
		logger:  logger,
	}
}

func (h *AgentHandler) List(c *fiber.Ctx) error {
	resp, err := h.agentUC.List(c.Context(), paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *AgentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	agent, err := h.agentUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, agent, nil)
}

func (h *AgentHandler) Create(c *fiber.Ctx) error {
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	agent, err := h.agentUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, agent)
}

func (h *AgentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	agent, err := h.agentUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, agent, nil)
}

func (h *AgentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.agentUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}
