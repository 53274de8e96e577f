package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/nocturne/internal/config"
	"github.com/templui/nocturne/internal/db"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/service"
	"github.com/templui/nocturne/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	ProfileService   *service.ProfileService
	AvatarService    *service.AvatarService
	EmailService     *service.EmailService
	SleepService     *service.SleepService
	NoteService      *service.NoteService
	DashboardService *service.DashboardService
	AccountService   *service.AccountService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage is optional; without it avatar uploads are refused
	avatarStorage, err := storage.New(ctx, cfg)
	if errors.Is(err, storage.ErrNotConfigured) {
		slog.Info("avatar storage disabled")
		avatarStorage = nil
	} else if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return NewWithDB(cfg, database, avatarStorage), nil
}

// NewWithDB wires repositories and services around an open, migrated
// database. avatarStorage may be nil.
func NewWithDB(cfg *config.Config, database *sqlx.DB, avatarStorage storage.Storage) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	sleepLogRepository := repository.NewSleepLogRepository(database)
	noteRepository := repository.NewNoteRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	profileService := service.NewProfileService(profileRepository, userRepository)
	avatarService := service.NewAvatarService(avatarStorage, profileService)
	authService := service.NewAuthService(
		userRepository,
		profileService,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	sleepService := service.NewSleepService(sleepLogRepository)
	noteService := service.NewNoteService(noteRepository)
	dashboardService := service.NewDashboardService(authService, profileService, sleepService, noteService)
	accountService := service.NewAccountService(userRepository, authService, profileService, avatarService, emailService)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		ProfileService:   profileService,
		AvatarService:    avatarService,
		EmailService:     emailService,
		SleepService:     sleepService,
		NoteService:      noteService,
		DashboardService: dashboardService,
		AccountService:   accountService,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
