package main

import (
	"context"
	"net/http"

	"mobility-mate/api"
	"mobility-mate/config"
	"mobility-mate/moderation"
	"mobility-mate/service"
	"mobility-mate/storage"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	mongodb, err := storage.Connect(ctx, cfg.MongoURI, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Close(ctx)

	locationStore := storage.NewMongoLocationStore(mongodb.Database())
	voteStore, err := storage.NewMongoVoteStore(ctx, mongodb.Database())
	if err != nil {
		logger.Fatal("failed to prepare votes collection", zap.Error(err))
	}
	communityStore := storage.NewMongoCommunityStore(mongodb.Database())

	objectStorage, err := storage.NewS3ObjectStorage(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	oracle, err := moderation.NewRekognitionOracle(ctx, cfg.S3Region, cfg.ModerationMinConfidence, logger)
	if err != nil {
		logger.Fatal("failed to initialize moderation oracle", zap.Error(err))
	}

	handlers := &api.Handlers{
		Uploads:           service.NewUploadService(locationStore, objectStorage, oracle, logger),
		Votes:             service.NewVoteService(voteStore, logger),
		Reports:           service.NewReportService(locationStore, voteStore, logger),
		Community:         communityStore,
		Events:            api.NewEventsClient(cfg.TicketmasterAPIKey),
		Log:               logger,
		SecretKey:         cfg.JWTSecret,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handlers.Router()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
