package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/pkg/validator"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// GetCoordinates godoc
// @Summary Resolve a free-text location to coordinates
// @Description Tries the full string first, then progressively less specific
// @Description suffixes ("Moda, Kadıköy, İstanbul" falls back to "Kadıköy, İstanbul").
// @Tags Public
// @Produce json
// @Param location query string true "Comma-separated location, most specific first"
// @Success 200 {object} utils.SuccessResponse{data=dto.CoordinateResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/location/get-coordinates [get]
func (h *GeocodeHandler) GetCoordinates(c *fiber.Ctx) error {
	req := dto.ForwardGeocodeRequest{Location: c.Query("location")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.geocodeUC.Forward(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// ReverseGeocode godoc
// @Summary Resolve coordinates to a street address
// @Tags Public
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReverseGeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/location/reverse-geocode [get]
func (h *GeocodeHandler) ReverseGeocode(c *fiber.Ctx) error {
	req := dto.ReverseGeocodeRequest{
		Lat: c.QueryFloat("lat"),
		Lng: c.QueryFloat("lng"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.geocodeUC.Reverse(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
