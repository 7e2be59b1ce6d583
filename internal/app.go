// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "mindmash-api/internal/api"
	"mindmash-api/internal/api/handler"
	"mindmash-api/internal/config"
	"mindmash-api/internal/mint"
	"mindmash-api/internal/repository"
	"mindmash-api/internal/repository/postgres"
	"mindmash-api/internal/service"
	"mindmash-api/internal/util"
	"mindmash-api/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository repository.UserRepository

	// Services
	LoginService service.LoginService
	MintService  service.MintService
	ChatService  service.ChatService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(ctx, app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.Migrate(ctx, app.DB.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.LoginService = service.NewLoginService(app.DB, app.UserRepository, nil, nil, app.Logger)

	var minter service.Minter
	if cfg.MintEnabled() {
		minter = mint.NewClient(cfg.Mint, app.Logger)
	} else {
		app.Logger.Warn("MINT_API_URL is not set; minting is disabled.")
	}
	app.MintService = service.NewMintService(minter)
	app.ChatService = service.NewChatService()
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Auth: handler.NewAuthHandler(app.LoginService, cfg.StoreTimeout, app.Logger),
		Mint: handler.NewMintHandler(app.MintService, app.Logger),
		Chat: handler.NewChatHandler(app.ChatService, app.Logger),
	})
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
