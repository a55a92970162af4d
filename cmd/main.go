package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/internal/repository"
	"github.com/Koyo-os/learnhub-admin/internal/service"
	"github.com/Koyo-os/learnhub-admin/pkg/closer"
	"github.com/Koyo-os/learnhub-admin/pkg/config"
	"github.com/Koyo-os/learnhub-admin/pkg/consumer"
	"github.com/Koyo-os/learnhub-admin/pkg/health"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/Koyo-os/learnhub-admin/pkg/retrier"
	"github.com/Koyo-os/learnhub-admin/pkg/transport/casher"
	"github.com/Koyo-os/learnhub-admin/pkg/transport/listener"
	"github.com/Koyo-os/learnhub-admin/pkg/transport/publisher"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	configPath  = "config.yaml"
	cashTimeout = 5 * time.Second
)

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	return retrier.Connect(5, 2, func() (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "mysql":
			return gorm.Open(mysql.Open(cfg.Urls.Database), &gorm.Config{})
		default:
			return gorm.Open(sqlite.Open(cfg.Urls.Database), &gorm.Config{})
		}
	})
}

func main() {
	logCfg := logger.Config{
		LogFile:   "app.log",
		LogLevel:  "debug",
		AppName:   "learnhub-admin",
		AddCaller: true,
	}

	if err := logger.Init(logCfg); err != nil {
		panic(err)
	}

	defer logger.Sync()

	logger := logger.Get()

	cfg, err := config.Init(configPath)
	if err != nil {
		logger.Error("error init config",
			zap.String("path", configPath),
			zap.Error(err))
		return
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("error connect to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Error(err))
		return
	}

	repo := repository.Init(db, logger)

	if err = repo.Migrate(); err != nil {
		logger.Error("error migrate schema", zap.Error(err))
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Urls.Redis,
	})

	cash := casher.Init(redisClient, logger)

	// separate connections for publishing and consuming
	conns, err := retrier.MultiConnects(2, func() (*amqp.Connection, error) {
		return amqp.Dial(cfg.Urls.Rabbitmq)
	}, &retrier.RetrierOpts{Count: 5, Interval: 2})
	if err != nil {
		logger.Error("error connect to rabbitmq",
			zap.String("url", cfg.Urls.Rabbitmq),
			zap.Error(err))
		return
	}

	pub, err := publisher.Init(cfg, logger, conns[0])
	if err != nil {
		logger.Error("error init publisher", zap.Error(err))
		return
	}

	cons, err := consumer.Init(cfg, logger, conns[1])
	if err != nil {
		logger.Error("error init consumer", zap.Error(err))
		return
	}

	for _, key := range []string{
		cfg.Reqs.CreateModuleRequestType,
		cfg.Reqs.UpdateModuleRequestType,
		cfg.Reqs.DeleteModuleRequestType,
		cfg.Reqs.CreateContentRequestType,
		cfg.Reqs.UpdateContentRequestType,
		cfg.Reqs.DeleteContentRequestType,
		cfg.Reqs.SaveQuestionsRequestType,
		cfg.Reqs.CreatePlaylistRequestType,
		cfg.Reqs.UpdatePlaylistRequestType,
		cfg.Reqs.InviteUserRequestType,
		cfg.Reqs.UpdateUserRequestType,
	} {
		if err = cons.Subscribe(key); err != nil {
			logger.Error("error subscribe",
				zap.String("routing_key", key),
				zap.Error(err))
			return
		}
	}

	svc := service.Init(cash, repo, pub, cashTimeout, nil)

	inputChan := make(chan entity.Event, 10)

	list := listener.Init(inputChan, logger, cfg, svc)

	checker := health.NewHealthChecker(logger)
	checker.Register("repository", repo)
	checker.Register("casher", cash)
	checker.Register("publisher", pub)
	checker.Register("consumer", cons)

	closerGroup := closer.NewCloserGroup(cash, pub, cons)

	ctx, cancel := context.WithCancel(context.Background())

	go cons.ConsumeMessages(inputChan)
	go list.Listen(ctx)
	go checker.StartHealthCheckServer(cfg.HealthPort)

	logger.Info("learnhub admin service started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan

	logger.Info("shutting down")

	cancel()

	if err = closerGroup.Close(); err != nil {
		logger.Error("error close resources", zap.Error(err))
	}
}
