package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"imgvault/internal/config"
	"imgvault/internal/db"
	"imgvault/internal/repository"
	"imgvault/internal/service"
	"imgvault/internal/service/payment"
	"imgvault/internal/uploader"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	UserService     *service.UserService
	ImageService    *service.ImageService
	LinkService     *service.LinkService
	EmailService    *service.EmailService
	PaymentProvider payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tierRepository := repository.NewTierRepository(database)
	imageRepository := repository.NewImageRepository(database)
	linkRepository := repository.NewLinkRepository(database)

	// Media provider
	media, err := uploader.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize uploader: %v", err)
	}

	// Services
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppName, cfg.IsDevelopment())
	authService := service.NewAuthService(
		userRepository,
		tierRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, tierRepository)
	imageService := service.NewImageService(imageRepository, linkRepository, media, cfg.AppURL)
	linkService := service.NewLinkService(linkRepository, cfg.Location())
	paymentProvider := payment.NewProvider(cfg, userService)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		UserService:     userService,
		ImageService:    imageService,
		LinkService:     linkService,
		EmailService:    emailService,
		PaymentProvider: paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
