package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/delivery/http/handler"
	"github.com/estate-backoffice/internal/delivery/http/middleware"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
)

// Server is the Fiber HTTP server of the back office.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	locationHandler *handler.LocationHandler
	geocodeHandler  *handler.GeocodeHandler
	listingHandler  *handler.ListingHandler
	formHandler     *handler.FormHandler
	mediaHandler    *handler.MediaHandler
	contactHandler  *handler.ContactHandler
	contentHandler  *handler.ContentHandler
	agentHandler    *handler.AgentHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	locationHandler *handler.LocationHandler,
	geocodeHandler *handler.GeocodeHandler,
	listingHandler *handler.ListingHandler,
	formHandler *handler.FormHandler,
	mediaHandler *handler.MediaHandler,
	contactHandler *handler.ContactHandler,
	contentHandler *handler.ContentHandler,
	agentHandler *handler.AgentHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Estate Backoffice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    32 * 1024 * 1024,
		ErrorHandler: errorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		locationHandler: locationHandler,
		geocodeHandler:  geocodeHandler,
		listingHandler:  listingHandler,
		formHandler:     formHandler,
		mediaHandler:    mediaHandler,
		contactHandler:  contactHandler,
		contentHandler:  contentHandler,
		agentHandler:    agentHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public reads for the site: cascade lists, geocoding, content, contact
	// form.
	api.Get("/location/get-districts/:citySlug", s.locationHandler.GetDistricts)
	api.Get("/location/get-neighborhood/:citySlug/:districtSlug", s.locationHandler.GetNeighborhoods)
	api.Get("/location/get-coordinates", s.geocodeHandler.GetCoordinates)
	api.Get("/location/reverse-geocode", s.geocodeHandler.ReverseGeocode)
	api.Get("/contents/:key", s.contentHandler.GetByKey)
	api.Post("/contacts", s.contactHandler.Submit)

	// Everything below is the admin surface.
	admin := api.Group("", middleware.Auth(&s.config.Auth))

	locations := admin.Group("/locations")
	locations.Get("/countries", s.locationHandler.ListCountries)
	locations.Post("/countries", s.locationHandler.CreateCountry)
	locations.Put("/countries/:id", s.locationHandler.UpdateCountry)
	locations.Delete("/countries/:id", s.locationHandler.DeleteCountry)
	locations.Get("/cities", s.locationHandler.ListCities)
	locations.Post("/cities", s.locationHandler.CreateCity)
	locations.Put("/cities/:id", s.locationHandler.UpdateCity)
	locations.Delete("/cities/:id", s.locationHandler.DeleteCity)
	locations.Get("/districts", s.locationHandler.ListDistricts)
	locations.Post("/districts", s.locationHandler.CreateDistrict)
	locations.Put("/districts/:id", s.locationHandler.UpdateDistrict)
	locations.Delete("/districts/:id", s.locationHandler.DeleteDistrict)
	locations.Get("/neighborhoods", s.locationHandler.ListNeighborhoods)
	locations.Post("/neighborhoods", s.locationHandler.CreateNeighborhood)
	locations.Put("/neighborhoods/:id", s.locationHandler.UpdateNeighborhood)
	locations.Delete("/neighborhoods/:id", s.locationHandler.DeleteNeighborhood)

	listings := admin.Group("/listings/:kind")
	listings.Get("/", s.listingHandler.List)
	listings.Post("/", s.listingHandler.Create)
	listings.Get("/:id", s.listingHandler.Get)
	listings.Put("/:id", s.listingHandler.Update)
	listings.Delete("/:id", s.listingHandler.Delete)
	listings.Post("/:id/publish", s.listingHandler.Publish)
	listings.Post("/:id/unpublish", s.listingHandler.Unpublish)

	forms := admin.Group("/forms")
	forms.Post("/", s.formHandler.Start)
	forms.Get("/:id", s.formHandler.Get)
	forms.Post("/:id/step", s.formHandler.GoToStep)
	forms.Post("/:id/basic", s.formHandler.SetBasic)
	forms.Post("/:id/location", s.formHandler.SelectLocation)
	forms.Post("/:id/address", s.formHandler.SetAddress)
	forms.Post("/:id/coordinate", s.formHandler.ProposeCoordinate)
	forms.Post("/:id/suggestion/accept", s.formHandler.AcceptSuggestion)
	forms.Post("/:id/suggestion/reject", s.formHandler.RejectSuggestion)
	forms.Post("/:id/features", s.formHandler.SetFeatures)
	forms.Post("/:id/media", s.formHandler.SetMedia)
	forms.Post("/:id/contacts", s.formHandler.SetContacts)
	forms.Post("/:id/submit", s.formHandler.Submit)

	admin.Post("/media", s.mediaHandler.Upload)
	admin.Delete("/media", s.mediaHandler.Delete)

	agents := admin.Group("/agents")
	agents.Get("/", s.agentHandler.List)
	agents.Post("/", s.agentHandler.Create)
	agents.Get("/:id", s.agentHandler.Get)
	agents.Put("/:id", s.agentHandler.Update)
	agents.Delete("/:id", s.agentHandler.Delete)

	contacts := admin.Group("/contacts")
	contacts.Get("/", s.contactHandler.List)
	contacts.Put("/:id/resolve", s.contactHandler.Resolve)
	contacts.Delete("/:id", s.contactHandler.Delete)

	contents := admin.Group("/contents")
	contents.Get("/", s.contentHandler.List)
	contents.Post("/", s.contentHandler.Create)
	contents.Put("/:key", s.contentHandler.Update)
	contents.Delete("/:id", s.contentHandler.Delete)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := err.(*errors.AppError); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.ErrInternalServer,
		})
	}
}
