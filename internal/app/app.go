package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/handlers"
	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/services/auth"
	"github.com/docugenhq/docugen/internal/services/events"
	"github.com/docugenhq/docugen/internal/services/generation"
	"github.com/docugenhq/docugen/internal/services/maintenance"
	"github.com/docugenhq/docugen/internal/services/templates"
	badgerstorage "github.com/docugenhq/docugen/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Services
	EventService       interfaces.EventService
	GenerationService  interfaces.GenerationService
	TemplateService    interfaces.TemplateService
	AuthService        interfaces.AuthService
	MaintenanceService interfaces.MaintenanceService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	AuthHandler     *handlers.AuthHandler
	TemplateHandler *handlers.TemplateHandler
	JobHandler      *handlers.JobHandler
	DocumentHandler *handlers.DocumentHandler
	WSHandler       *handlers.WebSocketHandler
}

// New wires all services and handlers from configuration
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badgerstorage.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	// Seed the template catalog: files first, compiled-in defaults as fallback
	if err := badgerstorage.LoadTemplatesFromFiles(ctx, storageManager.TemplateStorage(), config.Templates.SeedDir, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to load template seed files")
	}
	if config.Templates.SeedDefaults {
		if err := badgerstorage.SeedDefaultTemplates(ctx, storageManager.TemplateStorage(), logger); err != nil {
			logger.Warn().Err(err).Msg("Failed to seed default templates")
		}
	}

	eventService := events.NewService(logger)
	if err := events.SubscribeLoggerToAllEvents(eventService, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to subscribe event logger")
	}

	generationService, err := generation.NewService(
		storageManager.JobStorage(),
		storageManager.DocumentStorage(),
		eventService,
		config.Generation,
		nil, // time-seeded randomness
		nil, // wall clock
		logger,
	)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	templateService := templates.NewService(storageManager.TemplateStorage(), config.Templates, logger)
	authService := auth.NewService(storageManager.SessionStorage(), config.Auth, logger)
	maintenanceService := maintenance.NewService(storageManager, config.Maintenance, logger)

	app := &App{
		Config:             config,
		Logger:             logger,
		StorageManager:     storageManager,
		EventService:       eventService,
		GenerationService:  generationService,
		TemplateService:    templateService,
		AuthService:        authService,
		MaintenanceService: maintenanceService,

		APIHandler:      handlers.NewAPIHandler(logger),
		AuthHandler:     handlers.NewAuthHandler(authService, logger),
		TemplateHandler: handlers.NewTemplateHandler(templateService, logger),
		JobHandler:      handlers.NewJobHandler(generationService, templateService, logger),
		DocumentHandler: handlers.NewDocumentHandler(generationService, logger),
		WSHandler:       handlers.NewWebSocketHandler(eventService, logger),
	}

	return app, nil
}

// Start launches the background services
func (a *App) Start() error {
	if err := a.GenerationService.Start(); err != nil {
		return fmt.Errorf("failed to start generation service: %w", err)
	}
	if err := a.MaintenanceService.Start(); err != nil {
		return fmt.Errorf("failed to start maintenance service: %w", err)
	}
	return nil
}

// Close shuts down services and storage in reverse dependency order
func (a *App) Close() error {
	if err := a.MaintenanceService.Stop(); err != nil {
		a.Logger.Warn().Err(err).Msg("Maintenance service stop failed")
	}
	if err := a.GenerationService.Stop(); err != nil {
		a.Logger.Warn().Err(err).Msg("Generation service stop failed")
	}
	a.WSHandler.Close()
	if err := a.EventService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Event service close failed")
	}
	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
