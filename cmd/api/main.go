package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/openvet/clinic-api/internal/config"
	"github.com/openvet/clinic-api/internal/directory"
	"github.com/openvet/clinic-api/internal/email"
	appointmentHandler "github.com/openvet/clinic-api/internal/handler/appointment"
	authHandler "github.com/openvet/clinic-api/internal/handler/auth"
	clientHandler "github.com/openvet/clinic-api/internal/handler/client"
	healthHandler "github.com/openvet/clinic-api/internal/handler/health"
	petHandler "github.com/openvet/clinic-api/internal/handler/pet"
	productHandler "github.com/openvet/clinic-api/internal/handler/product"
	staffHandler "github.com/openvet/clinic-api/internal/handler/staff"
	"github.com/openvet/clinic-api/internal/middleware"
	"github.com/openvet/clinic-api/internal/repository/postgres"
	"github.com/openvet/clinic-api/internal/router"
	appointmentService "github.com/openvet/clinic-api/internal/service/appointment"
	authService "github.com/openvet/clinic-api/internal/service/auth"
	clientService "github.com/openvet/clinic-api/internal/service/client"
	petService "github.com/openvet/clinic-api/internal/service/pet"
	productService "github.com/openvet/clinic-api/internal/service/product"
	staffService "github.com/openvet/clinic-api/internal/service/staff"
	"github.com/openvet/clinic-api/pkg/auth"
	"github.com/openvet/clinic-api/pkg/logger"
	"github.com/openvet/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})
	zlog.Logger = log.ZL

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	petRepo := postgres.NewPetRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	productRepo := postgres.NewProductRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Directory clients: the orchestrator talks to the sibling services
	// over HTTP even when they are all served by this binary.
	dirTimeout := cfg.Directories.Timeout()
	clientsDir := directory.NewClientsClient(cfg.Directories.ClientsURL, dirTimeout, &log.ZL)
	petsDir := directory.NewPetsClient(cfg.Directories.PetsURL, dirTimeout, &log.ZL)
	staffDir := directory.NewStaffClient(cfg.Directories.StaffURL, dirTimeout, &log.ZL)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(0)

	var notifier email.Service = email.NoopService{}
	if cfg.SMTP.Enabled() {
		notifier = email.NewSMTPService(email.Config{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			From: cfg.SMTP.From,
		})
	}

	// Services
	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour, log)
	clientSvc := clientService.NewService(clientRepo)
	petSvc := petService.NewService(petRepo, clientsDir)
	staffSvc := staffService.NewService(staffRepo)
	productSvc := productService.NewService(productRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo,
		clientsDir,
		petsDir,
		staffDir,
		appointmentService.PolicyFromName(cfg.Appointment.TransitionPolicy),
		notifier,
		log,
	)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	handlers := router.Handlers{
		Health:      healthHandler.NewHandler(db),
		Auth:        authHandler.NewHandler(authSvc),
		Client:      clientHandler.NewHandler(clientSvc),
		Pet:         petHandler.NewHandler(petSvc),
		Staff:       staffHandler.NewHandler(staffSvc),
		Product:     productHandler.NewHandler(productSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
	}

	r := router.NewRouter(authMiddleware, handlers, router.Config{
		RateLimit: rate.Limit(100),
		RateBurst: 200,
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORS:      middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
