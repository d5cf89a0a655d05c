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

// LocationHandler serves the hierarchy CRUD and the public cascade reads.
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

func paginationFromQuery(c *fiber.Ctx) *dto.Pagination {
	return &dto.Pagination{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"id": c.Params("id")})
	}
	return int64(id), nil
}

// ListCountries godoc
// @Summary List countries
// @Tags Locations
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryListResponse}
// @Router /api/v1/locations/countries [get]
func (h *LocationHandler) ListCountries(c *fiber.Ctx) error {
	resp, err := h.locationUC.ListCountries(c.Context(), paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

// CreateCountry godoc
// @Summary Create a country
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.CountryRequest true "Country"
// @Success 201 {object} utils.SuccessResponse{data=domain.Country}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/locations/countries [post]
func (h *LocationHandler) CreateCountry(c *fiber.Ctx) error {
	var req dto.CountryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	country, err := h.locationUC.CreateCountry(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, country)
}

func (h *LocationHandler) UpdateCountry(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.CountryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	country, err := h.locationUC.UpdateCountry(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, country, nil)
}

// DeleteCountry godoc
// @Summary Delete a country
// @Description Fails with HAS_DEPENDENTS while any city still references it.
// @Tags Locations
// @Param id path int true "Country ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/locations/countries/{id} [delete]
func (h *LocationHandler) DeleteCountry(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.locationUC.DeleteCountry(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}

func (h *LocationHandler) ListCities(c *fiber.Ctx) error {
	var countryID *int64
	if v := c.QueryInt("country_id", 0); v > 0 {
		id := int64(v)
		countryID = &id
	}
	resp, err := h.locationUC.ListCities(c.Context(), countryID, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *LocationHandler) CreateCity(c *fiber.Ctx) error {
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	city, err := h.locationUC.CreateCity(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, city)
}

func (h *LocationHandler) UpdateCity(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	city, err := h.locationUC.UpdateCity(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, city, nil)
}

func (h *LocationHandler) DeleteCity(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.locationUC.DeleteCity(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}

func (h *LocationHandler) ListDistricts(c *fiber.Ctx) error {
	var cityID *int64
	if v := c.QueryInt("city_id", 0); v > 0 {
		id := int64(v)
		cityID = &id
	}
	resp, err := h.locationUC.ListDistricts(c.Context(), cityID, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *LocationHandler) CreateDistrict(c *fiber.Ctx) error {
	var req dto.DistrictRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	district, err := h.locationUC.CreateDistrict(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, district)
}

func (h *LocationHandler) UpdateDistrict(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.DistrictRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	district, err := h.locationUC.UpdateDistrict(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, district, nil)
}

func (h *LocationHandler) DeleteDistrict(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.locationUC.DeleteDistrict(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}

func (h *LocationHandler) ListNeighborhoods(c *fiber.Ctx) error {
	var districtID *int64
	if v := c.QueryInt("district_id", 0); v > 0 {
		id := int64(v)
		districtID = &id
	}
	resp, err := h.locationUC.ListNeighborhoods(c.Context(), districtID, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

func (h *LocationHandler) CreateNeighborhood(c *fiber.Ctx) error {
	var req dto.NeighborhoodRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	neighborhood, err := h.locationUC.CreateNeighborhood(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, neighborhood)
}

func (h *LocationHandler) UpdateNeighborhood(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.NeighborhoodRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	neighborhood, err := h.locationUC.UpdateNeighborhood(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, neighborhood, nil)
}

func (h *LocationHandler) DeleteNeighborhood(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.locationUC.DeleteNeighborhood(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": id}, nil)
}

// GetDistricts godoc
// @Summary Districts of a city, by slug
// @Description Public cascade read behind the site's city select. Cached.
// @Tags Public
// @Produce json
// @Param citySlug path string true "City slug"
// @Success 200 {object} utils.SuccessResponse{data=dto.DistrictListResponse}
// @Router /api/v1/location/get-districts/{citySlug} [get]
func (h *LocationHandler) GetDistricts(c *fiber.Ctx) error {
	citySlug := c.Params("citySlug")
	if citySlug == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.locationUC.GetDistrictsByCitySlug(c.Context(), citySlug, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

// GetNeighborhoods godoc
// @Summary Neighborhoods of a district, by slugs
// @Tags Public
// @Produce json
// @Param citySlug path string true "City slug"
// @Param districtSlug path string true "District slug"
// @Success 200 {object} utils.SuccessResponse{data=dto.NeighborhoodListResponse}
// @Router /api/v1/location/get-neighborhood/{citySlug}/{districtSlug} [get]
func (h *LocationHandler) GetNeighborhoods(c *fiber.Ctx) error {
	citySlug := c.Params("citySlug")
	districtSlug := c.Params("districtSlug")
	if citySlug == "" || districtSlug == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	resp, err := h.locationUC.GetNeighborhoodsBySlugs(c.Context(), citySlug, districtSlug, paginationFromQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}
