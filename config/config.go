package config

import (
	// Local Packages
	errors "fraud-service/errors"
)

var DefaultConfig = []byte(`
application: "fraud-detection"

logger:
  level: "debug"

is_prod_mode: false

server:
  port: 5000

mongo:
  uri: "mongodb://localhost:27017"
  database: "fraud"

redis:
  uri: "localhost:6379"
  password: ""

kafka:
  brokers:
    - "localhost:9092"
  consume: false
  topic: "transactions"
  records_per_poll: 5000
  consumer_name: "fraud-detection"

detector:
  velocity_threshold: 10
  velocity_high_threshold: 15
  amount_threshold: 1000
  average_multiplier: 5
  high_multiplier: 10
  location_anomaly_probability: 0.2
`)

type Config struct {
	Application string   `koanf:"application"`
	Logger      Logger   `koanf:"logger"`
	IsProdMode  bool     `koanf:"is_prod_mode"`
	Server      Server   `koanf:"server"`
	Mongo       Mongo    `koanf:"mongo"`
	Redis       Redis    `koanf:"redis"`
	Kafka       Kafka    `koanf:"kafka"`
	Detector    Detector `koanf:"detector"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Kafka struct {
	Brokers        []string `koanf:"brokers"`
	Consume        bool     `koanf:"consume"`
	Topic          string   `koanf:"topic"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
	ConsumerName   string   `koanf:"consumer_name"`
}

// Detector carries the rule thresholds so tests and deployments can tune
// them without touching the scoring code.
type Detector struct {
	VelocityThreshold          int     `koanf:"velocity_threshold"`
	VelocityHighThreshold      int     `koanf:"velocity_high_threshold"`
	AmountThreshold            float64 `koanf:"amount_threshold"`
	AverageMultiplier          float64 `koanf:"average_multiplier"`
	HighMultiplier             float64 `koanf:"high_multiplier"`
	LocationAnomalyProbability float64 `koanf:"location_anomaly_probability"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Server.Port <= 0 {
		ve.Add("server.port", "must be positive")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if c.Kafka.Consume && len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Detector.VelocityThreshold <= 0 {
		ve.Add("detector.velocity_threshold", "must be positive")
	}
	if c.Detector.VelocityHighThreshold < c.Detector.VelocityThreshold {
		ve.Add("detector.velocity_high_threshold", "cannot be below velocity_threshold")
	}
	if c.Detector.LocationAnomalyProbability < 0 || c.Detector.LocationAnomalyProbability > 1 {
		ve.Add("detector.location_anomaly_probability", "must be within [0, 1]")
	}

	return ve.Err()
}
