package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/usecase"
)

// MediaHandler receives the three pre-sized variants of one image in a single
// multipart request.
type MediaHandler struct {
	mediaUC *usecase.MediaUseCase
	logger  *zap.Logger
}

func NewMediaHandler(mediaUC *usecase.MediaUseCase, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		mediaUC: mediaUC,
		logger:  logger,
	}
}

func openVariant(fh *multipart.FileHeader) (usecase.ImageVariant, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageVariant{}, nil, err
	}
	return usecase.ImageVariant{
		Body:        f,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { f.Close() }, nil
}

// Upload godoc
// @Summary Upload one image as three variants
// @Description Multipart fields full, large and thumb; all three share one object path.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param full formData file true "Full-size variant"
// @Param large formData file true "Large variant"
// @Param thumb formData file true "Thumbnail variant"
// @Success 201 {object} utils.SuccessResponse{data=dto.MediaUploadResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/media [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	variants := make([]usecase.ImageVariant, 0, 3)
	for _, field := range []string{"full", "large", "thumb"} {
		fh, err := c.FormFile(field)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"missing_field": field,
			}))
		}
		variant, closeFn, err := openVariant(fh)
		if err != nil {
			h.logger.Error("Failed to open uploaded file", zap.String("field", field), zap.Error(err))
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		defer closeFn()
		variants = append(variants, variant)
	}

	resp, err := h.mediaUC.Upload(c.Context(), variants[0], variants[1], variants[2])
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// Delete godoc
// @Summary Delete all variants of an image
// @Tags Media
// @Param path query string true "Object path returned by upload"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/media [delete]
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	path := c.Query("path")
	if err := h.mediaUC.Delete(c.Context(), path); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": path}, nil)
}
