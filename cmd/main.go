package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restContext "github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/context"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/router"
	restServer "github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/server"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/api/ws"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/config"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/credential"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/generator"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/hub"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/imagesearch"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/repository/postgres"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/server"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/service"
	storage "github.com/wegoagain-dev/ECS-GymFuel/internal/storage/minio"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err.Error())
	}
	defer db.Close()

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		logger.Fatal("failed to initialize token codec", "error", err.Error())
	}

	userRepo := postgres.NewUserRepository(db.DB)
	familyRepo := postgres.NewFamilyRepository(db.DB)
	recipeRepo := postgres.NewRecipeRepository(db.DB)
	mealRepo := postgres.NewMealRepository(db.DB)
	groceryRepo := postgres.NewGroceryRepository(db.DB)
	coachLinkRepo := postgres.NewCoachLinkRepository(db.DB)

	photos := newPhotoStorage(ctx, cfg.Storage, logger)
	images := newImageFinder(cfg.Unsplash, logger)
	gen := newGenerator(ctx, cfg.Gemini, logger)

	authenticator := service.NewAuthenticator(tokenManager, userRepo, logger)
	services := router.Services{
		Auth:      service.NewAuth(userRepo, credential.NewHasher(0), tokenManager, cfg.JWT.TTL(), logger),
		Family:    service.NewFamily(familyRepo, userRepo, logger),
		Recipe:    service.NewRecipe(recipeRepo, photos, images, logger),
		Assistant: service.NewAssistant(gen, logger),
		Meal:      service.NewMeal(mealRepo, recipeRepo, logger),
		Grocery:   service.NewGrocery(groceryRepo, logger),
		Coach:     service.NewCoach(coachLinkRepo, userRepo, mealRepo, recipeRepo, authenticator, logger),
		Resolver:  authenticator,
	}

	syncHandler := ws.NewHandler(hub.New(logger.Component("hub")), authenticator, cfg.HTTP.AllowedOrigins, logger.Component("sync"))
	handler := router.New(services, syncHandler, restContext.NewManager(), cfg.HTTP.AllowedOrigins, logger).Register()
	httpServer := restServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err.Error())
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err.Error(), "address", httpServer.Address())
	}
	if err := syncHandler.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during sync shutdown", "error", err.Error())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// newPhotoStorage returns nil when photo storage is disabled or unreachable,
// which turns photo endpoints into 503 responses.
func newPhotoStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) model.Storage {
	if cfg.Endpoint == "" {
		logger.Info("photo storage disabled")
		return nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Warn("failed to create minio client, photo storage disabled", "error", err.Error())
		return nil
	}
	client, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		logger.Warn("failed to initialize photo storage, photo storage disabled", "error", err.Error())
		return nil
	}
	return client
}

func newImageFinder(cfg config.Unsplash, logger *logger.Logger) model.ImageFinder {
	if cfg.AccessKey == "" {
		logger.Info("image search disabled")
		return nil
	}
	return imagesearch.NewUnsplash(cfg.Endpoint, cfg.AccessKey)
}

func newGenerator(ctx context.Context, cfg config.Gemini, logger *logger.Logger) model.Generator {
	if cfg.APIKey == "" {
		logger.Info("recipe generation disabled")
		return nil
	}
	gen, err := generator.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		logger.Warn("failed to initialize recipe generator, generation disabled", "error", err.Error())
		return nil
	}
	return gen
}
