package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/yamdb/internal/handler/http"
	redisclient "github.com/mikiasgoitom/yamdb/internal/infrastructure/cache"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/config"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/confirmation"
	database "github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/logger"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/secret"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/store"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/validator"
	"github.com/mikiasgoitom/yamdb/internal/usecase"
)

const (
	tokenIssuer     = "yamdb"
	shutdownTimeout = 10 * time.Second
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.MongoURI)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(); err != nil {
			appLogger.Warnf("mongodb disconnect: %v", err)
		}
	}()
	db := mongoClient.Client.Database(appConfig.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(db.Collection(database.UsersCollection))
	taxonomyRepo := mongodb.NewTaxonomyRepository(db)
	titleRepo := mongodb.NewTitleRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	// Dependency Injection: Services
	jwtKey, err := secret.DeriveKey(appConfig.SecretKey, secret.PurposeAccessToken)
	if err != nil {
		appLogger.Fatalf("Failed to derive token key: %v", err)
	}
	codeKey, err := secret.DeriveKey(appConfig.SecretKey, secret.PurposeConfirmationCode)
	if err != nil {
		appLogger.Fatalf("Failed to derive confirmation key: %v", err)
	}
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(jwtKey, appConfig.GetAccessTokenTTL(), tokenIssuer))
	codeGenerator := confirmation.NewGenerator(codeKey, appConfig.GetConfirmationCodeTTL())
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	var mailService contract.IEmailService
	switch {
	case appConfig.UseResend():
		mailService = external_services.NewResendEmailService(appConfig.EmailAPIKey, appConfig.GetEmailFrom())
	case appConfig.UseSMTP():
		mailService = external_services.NewEmailService(appConfig.EmailHost, appConfig.EmailPort,
			appConfig.EmailUsername, appConfig.EmailAppPassword, appConfig.GetEmailFrom())
	default:
		appLogger.Warnf("EMAIL_API_KEY and EMAIL_HOST not set, confirmation codes will be written to the log")
		mailService = external_services.NewLogEmailService(appConfig.GetEmailFrom(), appLogger)
	}

	// Optional Dependency Injection: Redis cache
	var titleCache contract.ITitleCache
	if appConfig.UseRedisCache() {
		rdb, err := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		if err != nil {
			appLogger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() { _ = redisclient.Close(rdb) }()
		titleCache = store.NewTitleCacheStore(rdb)
	}

	// Dependency Injection: Usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, codeGenerator, mailService, jwtService, appValidator, uuidGenerator, appLogger, appConfig)
	userUsecase := usecase.NewUserUsecase(userRepo, reviewRepo, commentRepo, appValidator, uuidGenerator, appLogger, appConfig)
	taxonomyUsecase := usecase.NewTaxonomyUsecase(taxonomyRepo, titleRepo, appValidator, appLogger, appConfig)
	titleUsecase := usecase.NewTitleUseCase(titleRepo, taxonomyRepo, reviewRepo, commentRepo, uuidGenerator, appLogger, appConfig)
	reviewUsecase := usecase.NewReviewUseCase(reviewRepo, commentRepo, titleRepo, uuidGenerator, titleCache, appLogger, appConfig)
	commentUsecase := usecase.NewCommentUseCase(commentRepo, reviewRepo, uuidGenerator, appLogger, appConfig)
	if titleCache != nil {
		userUsecase.SetTitleCache(titleCache)
		taxonomyUsecase.SetTitleCache(titleCache)
		titleUsecase.SetTitleCache(titleCache)
	}

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(
		authUsecase, userUsecase, taxonomyUsecase, titleUsecase, reviewUsecase, commentUsecase,
		handlerHttp.RouterConfig{
			AllowedOrigins: appConfig.CORSAllowedOrigins,
			AuthRateLimit:  appConfig.RateLimitRPS,
			PageSize:       appConfig.GetPageSize(),
		},
	)
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  appConfig.ReadTimeout,
		WriteTimeout: appConfig.WriteTimeout,
	}

	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorf("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("graceful shutdown failed: %v", err)
	}
}
