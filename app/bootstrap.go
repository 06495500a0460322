package app

import (
	"context"
	"errors"

	"github.com/CPU-commits/Intranet_BAttainment/aws_s3"
	"github.com/CPU-commits/Intranet_BAttainment/db"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/repositories/inmem"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/CPU-commits/Intranet_BAttainment/settings"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"go.uber.org/zap"
)

var ErrNoSecret = errors.New("JWT_SECRET_KEY is not set")

// Everything a binary needs to serve requests, plus what must be closed on shutdown
type Stack struct {
	Services *services.Services
	Mongo    *db.MongoConnection
	Nats     *stack.Nats
}

func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func studentIndex() repositories.StudentIndex {
	settingsData := settings.GetSettings()
	if settingsData.ELS_HOST == "" {
		zap.L().Info("ELS_HOST not set, student search runs in memory")
		return inmem.NewStudentIndex()
	}
	es, err := db.NewConnectionEs(db.EsConfig{
		Host:     settingsData.ELS_HOST,
		Port:     settingsData.ELS_PORT,
		Username: settingsData.ELS_USERNAME,
		Password: settingsData.ELS_PASSWORD,
		Secure:   settingsData.NODE_ENV == "prod",
	})
	if err != nil {
		zap.L().Warn("elasticsearch unavailable, student search runs in memory", zap.Error(err))
		return inmem.NewStudentIndex()
	}
	return repositories.NewEsStudentIndex(es)
}

// Connects to MongoDB (fatal on failure) and to the optional NATS, Elasticsearch and S3 backends
func Bootstrap(ctx context.Context) (*Stack, error) {
	settingsData := settings.GetSettings()
	if settingsData.JWT_SECRET_KEY == "" {
		return nil, ErrNoSecret
	}
	mongo, err := db.NewConnection(ctx, settingsData.MONGO_CONNECTION, settingsData.MONGO_DB)
	if err != nil {
		return nil, err
	}
	if err := models.EnsureCollections(ctx, mongo); err != nil {
		_ = mongo.Close(context.Background())
		return nil, err
	}

	deps := services.Dependencies{
		Repos:       repositories.NewMongoRepositories(mongo, studentIndex()),
		Auth:        services.NewAuthService(settingsData.JWT_SECRET_KEY, settingsData.JWT_EXPIRATION),
		Publisher:   stack.Discard,
		CollegeName: settingsData.COLLEGE_NAME,
	}
	result := &Stack{Mongo: mongo}
	if settingsData.NATS_HOST != "" {
		nats, err := stack.NewNats(settingsData.NATS_HOST)
		if err != nil {
			zap.L().Warn("nats unavailable, events are discarded", zap.Error(err))
		} else {
			result.Nats = nats
			deps.Publisher = nats
		}
	}
	if settingsData.AWS_BUCKET != "" {
		files, err := aws_s3.NewAWSS3(settingsData.AWS_BUCKET, settingsData.AWS_REGION)
		if err != nil {
			zap.L().Warn("s3 unavailable, reports can not be published", zap.Error(err))
		} else {
			deps.Files = files
		}
	}
	result.Services = services.New(deps)
	return result, nil
}

func (s *Stack) Close(ctx context.Context) {
	if s.Nats != nil {
		s.Nats.Close()
	}
	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			zap.L().Warn("close mongo", zap.Error(err))
		}
	}
}
