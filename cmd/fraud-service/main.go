package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	// Local Packages
	config "fraud-service/config"
	kafka "fraud-service/kafka"
	mongodb "fraud-service/repositories/mongodb"
	redis "fraud-service/repositories/redis"
	server "fraud-service/server"
	detector "fraud-service/services/detector"
	txpsr "fraud-service/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/gin-gonic/gin"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// LoadSecrets loads the secret variables and overrides the config
func LoadSecrets(k config.Config) config.Config {
	if redisURI := os.Getenv("REDIS_URI"); redisURI != "" {
		k.Redis.URI = redisURI
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		k.Redis.Password = redisPassword
	}
	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		k.Mongo.URI = mongoURI
	}
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		k.Kafka.Brokers = strings.Split(kafkaBrokers, ",")
	}
	k.IsProdMode = os.Getenv("IS_PROD_MODE") == "true" || k.IsProdMode
	return k
}

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Update and validate config before starting the service
	appKonf = LoadSecrets(appKonf)
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(appKonf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis connection (history store + DLQ)
	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	// Mongo connection (analysis archive)
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}

	historyRepo := redis.NewHistoryRepository(redisClient)
	analysesRepo := mongodb.NewAnalysesRepository(mongoClient, appKonf.Mongo.Database)

	thresholds := detector.Thresholds{
		VelocityCount:              appKonf.Detector.VelocityThreshold,
		VelocityHighCount:          appKonf.Detector.VelocityHighThreshold,
		AbsoluteAmount:             appKonf.Detector.AmountThreshold,
		AverageMultiplier:          appKonf.Detector.AverageMultiplier,
		HighMultiplier:             appKonf.Detector.HighMultiplier,
		LocationAnomalyProbability: appKonf.Detector.LocationAnomalyProbability,
	}
	det := detector.New(logger, historyRepo, thresholds, detector.WithArchive(analysesRepo))

	if appKonf.Kafka.Consume {
		dlQueue := redis.NewDeadLetterQueue(redisClient, logger)
		txProcessor := txpsr.NewTxProcessor(logger, det, dlQueue)

		metrics := kprom.NewMetrics("fd")
		conf := &kafka.ConsumerConfig{
			Brokers:        appKonf.Kafka.Brokers,
			Name:           appKonf.Kafka.ConsumerName,
			Topic:          appKonf.Kafka.Topic,
			RecordsPerPoll: appKonf.Kafka.RecordsPerPoll,
		}

		txConsumer, err := kafka.NewTxConsumer(conf, txProcessor, metrics, logger)
		if err != nil {
			logger.Fatal("cannot create transactions consumer", zap.Error(err))
		}

		go func() {
			if err := txConsumer.Poll(ctx); err != nil {
				logger.Error("consumer stopped", zap.Error(err))
				stop()
			}
		}()
	}

	srv := server.New(logger, det)
	if err = srv.Run(ctx, appKonf.Server.Port); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
