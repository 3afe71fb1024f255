package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Cache     CacheConfig     `yaml:"cache"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	PriceEventsTopic string   `yaml:"price_events_topic"`
	GroupID          string   `yaml:"group_id"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
}

// SchedulerConfig holds the cron cadences for the three refresh jobs.
// Empty values fall back to the defaults below.
type SchedulerConfig struct {
	QuarterHourly string `yaml:"quarter_hourly"`
	Weekly        string `yaml:"weekly"`
	SemiMonthly   string `yaml:"semi_monthly"`
}

const (
	DefaultQuarterHourly = "*/15 * * * *"
	DefaultWeekly        = "0 0 * * 0"
	DefaultSemiMonthly   = "0 0 1,15 * *"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Scheduler.QuarterHourly == "" {
		cfg.Scheduler.QuarterHourly = DefaultQuarterHourly
	}
	if cfg.Scheduler.Weekly == "" {
		cfg.Scheduler.Weekly = DefaultWeekly
	}
	if cfg.Scheduler.SemiMonthly == "" {
		cfg.Scheduler.SemiMonthly = DefaultSemiMonthly
	}

	return &cfg, nil
}
