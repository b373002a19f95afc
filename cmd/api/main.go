package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcontext "github.com/SeakMengs/DocCollect/internal/app_context"
	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/SeakMengs/DocCollect/internal/controller"
	"github.com/SeakMengs/DocCollect/internal/database"
	"github.com/SeakMengs/DocCollect/internal/env"
	filestorage "github.com/SeakMengs/DocCollect/internal/file_storage"
	"github.com/SeakMengs/DocCollect/internal/middleware"
	ratelimiter "github.com/SeakMengs/DocCollect/internal/rate_limiter"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"github.com/SeakMengs/DocCollect/internal/route"
	"github.com/SeakMengs/DocCollect/internal/scheduler"
	"github.com/SeakMengs/DocCollect/internal/service"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()
	logger.Debugf("Running %s in %s mode on port %s", util.GetAppName(), cfg.ENV, cfg.Port)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected")

	if cfg.DB.DRIVER == "sqlite" {
		if err := database.Migrate(db); err != nil {
			logger.Panic(err)
		}
	}

	minioClient, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}
	storage := filestorage.NewMinioStorage(minioClient, cfg.Minio.BUCKET, logger)

	bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 30*time.Second)
	if err := storage.EnsureBucket(bucketCtx); err != nil {
		cancelBucket()
		logger.Panicf("Failed to prepare bucket %s: %v", cfg.Minio.BUCKET, err)
	}
	cancelBucket()

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panic(err)
		}
	}

	if cfg.Classifier.OPENAI_API_KEY == "" {
		logger.Warn("OPENAI_API_KEY is not set, uploads without an item will be stored as unclassified")
	}

	repo := repository.NewRepository(db, logger)
	cls := classifier.NewOpenAIClassifier(cfg.Classifier, logger)
	svc := service.NewService(&cfg, repo, storage, cls, logger)

	app := appcontext.Application{
		Config:     &cfg,
		Logger:     logger,
		Repository: repo,
		Service:    svc,
		Storage:    storage,
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)

	sched, err := scheduler.New(cfg.Archive, svc.Archive, logger)
	if err != nil {
		logger.Panic(err)
	}
	if err := sched.AddFunc("0 */5 * * * *", rateLimiter.Cleanup); err != nil {
		logger.Panic(err)
	}
	sched.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sched.Stop(ctx)
	}()
	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	_controller := controller.NewController(&app)
	r := route.NewRouter(&app, _controller, _middleware)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + app.Config.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Panicf("Error running server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
}
