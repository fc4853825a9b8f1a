package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftledger/workout-tracker/internal/api"
	"liftledger/workout-tracker/internal/config"
	"liftledger/workout-tracker/internal/repository/mongo"
	"liftledger/workout-tracker/internal/service"
	"liftledger/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	setupLogging(cfg.Log.Level)
	log.Info("starting workout tracker server ...")

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		log.Info("disconnecting MongoDB ...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// Index creation is best-effort and must not delay startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workoutLogs"))
		mongo.EnsureRecordIndexes(ctx, appDB.Collection("personalRecords"))
		log.Info("index creation completed")
	}()

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	userRepo := mongo.NewMongoUserRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	recordRepo := mongo.NewMongoRecordRepository(appDB)

	authService := service.NewAuthService(userRepo, programRepo, logRepo, recordRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	programService := service.NewProgramService(programRepo)
	recordService := service.NewRecordService(recordRepo)
	workoutService := service.NewWorkoutService(programRepo, logRepo, recordService)
	reportService := service.NewReportService(logRepo)
	exportService := service.NewExportService(logRepo, recordService, fileStorage)

	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, authService, programService, workoutService, recordService, reportService, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server ...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

func setupLogging(level string) {
	log.SetOutput(os.Stdout)
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
