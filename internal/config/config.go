package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const envPrefix = "SPASIBKI"

type LogConfig struct {
	Level      string `yaml:"level" split_words:"true"`
	Path       string `yaml:"path" split_words:"true"`
	ErrorPath  string `yaml:"errorpath" split_words:"true"`
	MaxSize    int    `yaml:"maxsize" split_words:"true"`
	MaxBackups int    `yaml:"maxbackups" split_words:"true"`
	MaxAge     int    `yaml:"maxage" split_words:"true"`
	Compress   bool   `yaml:"compress" split_words:"true"`
	Stdout     bool   `yaml:"stdout" split_words:"true"`
}

type ServerConfig struct {
	RunAddress      string        `yaml:"runaddress" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdowntimeout" split_words:"true"`
	MetricsToken    string        `yaml:"metricstoken" split_words:"true"` // Если задан, /metrics требует Bearer
}

// BackendConfig описывает подключение к REST API бэкенда
type BackendConfig struct {
	BaseURL string        `yaml:"baseurl" split_words:"true"`
	Token   string        `yaml:"token" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

// SessionConfig управляет временем жизни состояний страниц
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idlettl" split_words:"true"`
	EvictSchedule string        `yaml:"evictschedule" split_words:"true"`
}

// UIConfig содержит размеры страниц и время показа уведомлений
type UIConfig struct {
	ToastTTL            time.Duration `yaml:"toastttl" split_words:"true"`
	LikesLimit          int           `yaml:"likeslimit" split_words:"true"`
	FeedLimit           int           `yaml:"feedlimit" split_words:"true"`
	PurchasesLimit      int           `yaml:"purchaseslimit" split_words:"true"`
	GamesLimit          int           `yaml:"gameslimit" split_words:"true"`
	RatingLimit         int           `yaml:"ratinglimit" split_words:"true"`
	EmployeesLimit      int           `yaml:"employeeslimit" split_words:"true"`
	AdminPurchasesLimit int           `yaml:"adminpurchaseslimit" split_words:"true"`
}

// Config представляет структуру конфигурации
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"logger"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			RunAddress:      ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Path:       "logs/front.log",
			ErrorPath:  "logs/front_error.log",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		},
		Session: SessionConfig{
			IdleTTL:       30 * time.Minute,
			EvictSchedule: "@every 5m",
		},
		UI: UIConfig{
			ToastTTL:            3500 * time.Millisecond,
			LikesLimit:          5,
			FeedLimit:           10,
			PurchasesLimit:      5,
			GamesLimit:          5,
			RatingLimit:         5,
			EmployeesLimit:      25,
			AdminPurchasesLimit: 10,
		},
	}
}

// LoadConfig загружает конфигурацию из файла YAML, затем из .env и переменных окружения
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		flag.StringVar(&path, "c", "config.yaml", "config path")
		flag.Parse()
	}

	conf := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// без файла работаем на значениях по умолчанию и окружении
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := envconfig.Process(envPrefix, conf); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.RunAddress == "" {
		return errors.New("не задан адрес сервера (server.runaddress)")
	}
	if c.Backend.BaseURL == "" {
		return errors.New("не задан адрес бэкенда (backend.baseurl)")
	}
	if c.Session.EvictSchedule == "" {
		return errors.New("не задано расписание очистки сессий (session.evictschedule)")
	}
	limits := map[string]int{
		"likeslimit":          c.UI.LikesLimit,
		"feedlimit":           c.UI.FeedLimit,
		"purchaseslimit":      c.UI.PurchasesLimit,
		"gameslimit":          c.UI.GamesLimit,
		"ratinglimit":         c.UI.RatingLimit,
		"employeeslimit":      c.UI.EmployeesLimit,
		"adminpurchaseslimit": c.UI.AdminPurchasesLimit,
	}
	for name, v := range limits {
		if v <= 0 {
			return fmt.Errorf("ui.%s должен быть больше нуля", name)
		}
	}
	return nil
}
