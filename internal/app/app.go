package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/laakri/DevCollab/database"
	"github.com/laakri/DevCollab/internal/auth"
	"github.com/laakri/DevCollab/internal/config"
	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/handlers"
	"github.com/laakri/DevCollab/internal/logger"
	"github.com/laakri/DevCollab/internal/middleware"
	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/routes"
	"github.com/laakri/DevCollab/internal/services"
	"github.com/laakri/DevCollab/internal/validator"
	"github.com/laakri/DevCollab/internal/workers"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	mailProvider, err := email.NewProvider(smtpConfig(cfg))
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	defer mailProvider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reminders := workers.NewSessionReminderWorker(
		gormDB,
		repositories.NewSessionRepository(),
		newMailer(cfg, mailProvider),
		cfg.Workers.ReminderInterval,
		cfg.Workers.ReminderWindow,
	)
	reminders.Start(ctx)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           SetupRouter(cfg, gormDB, mailProvider),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		return
	}
	logger.Info("Server stopped")
}

// SetupRouter wires repositories, services and handlers into a gin engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, mailProvider email.Provider) *gin.Engine {
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.VerificationTTL)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", "error", err)
	}

	serviceContainer := initializeServices(cfg, tokens, mailProvider)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, mailProvider email.Provider) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	postRepo := repositories.NewLearningPostRepository()
	sessionRepo := repositories.NewSessionRepository()

	mailer := newMailer(cfg, mailProvider)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, tokens, mailer),
		UserService:         services.NewUserService(userRepo),
		LearningPostService: services.NewLearningPostService(postRepo, userRepo),
		SessionService:      services.NewSessionService(sessionRepo, userRepo),
		Tokens:              tokens,
		Mailer:              mailer,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, middleware.AuthMiddleware(services.Tokens))

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		LearningPostHandler: handlers.NewLearningPostHandler(baseHandler, services.LearningPostService),
		SessionHandler:      handlers.NewSessionHandler(baseHandler, services.SessionService),
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func newMailer(cfg *config.Config, provider email.Provider) *email.Mailer {
	return email.NewMailer(provider, cfg.App.FrontendURL, cfg.JWT.VerificationTTL)
}

func smtpConfig(cfg *config.Config) *email.SMTPConfig {
	smtp := email.DefaultConfig()
	smtp.Host = cfg.Email.SMTPHost
	smtp.Port = cfg.Email.SMTPPort
	smtp.Username = cfg.Email.SMTPUsername
	smtp.Password = cfg.Email.SMTPPassword
	smtp.FromEmail = cfg.Email.FromEmail
	smtp.FromName = cfg.Email.FromName
	return smtp
}

// seedFirstAdmin creates a verified admin account from config if no user
// with that email exists yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.App.FirstAdminEmail))
	adminPassword := cfg.App.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	userRepo := repositories.NewUserRepository()
	_, err := userRepo.FindByEmail(tx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}
	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	username := adminEmail
	if at := strings.IndexByte(adminEmail, '@'); at > 0 {
		username = adminEmail[:at]
	}

	admin := models.NewUser(adminEmail, username, hashedPassword)
	admin.Role = models.UserRoleAdmin
	admin.IsEmailVerified = true
	admin.FullName = "DevCollab Administrator"

	if err := userRepo.Create(tx, admin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
