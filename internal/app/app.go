package app

import (
	"context"
	"server/config"
	"server/internal/ai"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/websockets"

	analysisController "server/internal/controllers/analysis"
	caseController "server/internal/controllers/cases"
	userController "server/internal/controllers/users"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService       *services.TransactionService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	UserRepo repositories.UserRepository
	CaseRepo repositories.CaseRepository

	// Controllers
	UserController     *userController.UserController
	CaseController     *caseController.CaseController
	AnalysisController *analysisController.AnalysisController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidationService := services.NewCacheInvalidationService(db, eventBus)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	caseRepo := repositories.NewCase(db)

	aiClient, err := ai.NewGemini(context.Background(), config.GeminiAPIKey, config.GeminiModel)
	if err != nil {
		return &App{}, log.Err("failed to create ai client", err)
	}

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, config, userRepo)
	userController := userController.New(userRepo, config)
	caseController := caseController.New(caseRepo, cacheInvalidationService)
	analysisController := analysisController.New(
		caseRepo,
		aiClient,
		transactionService,
		cacheInvalidationService,
		config.AnalysisTimeout,
	)

	websocket, err := websockets.New(eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware,
		TransactionService:       transactionService,
		CacheInvalidationService: cacheInvalidationService,
		UserRepo:                 userRepo,
		CaseRepo:                 caseRepo,
		UserController:           userController,
		CaseController:           caseController,
		AnalysisController:       analysisController,
		Websocket:                websocket,
		EventBus:                 eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.JWTSecret == "" {
		return log.ErrMsg("config is missing signing secret")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.CacheInvalidationService,
		a.UserRepo,
		a.CaseRepo,
		a.UserController,
		a.CaseController,
		a.AnalysisController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
