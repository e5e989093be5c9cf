package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points the console at the gym REST API.
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CSRFCookieName string
}

type SessionConfig struct {
	Backend  string // file, redis or memory
	FilePath string
	RedisKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Enabled      bool
	Endpoint     string
	AccessKey    string
	SecretKey    string
	BucketExport string
	UseSSL       bool
	Region       string
	LinkTTL      time.Duration
}

type CacheConfig struct {
	StaleTime time.Duration
	GCTime    time.Duration
}

type JobsConfig struct {
	SessionCheck string
	CachePrune   string
}

type LogConfig struct {
	Level string
}

type AppConfig struct {
	Environment      string
	Log              LogConfig
	HTTP             HTTPConfig
	API              APIConfig
	Session          SessionConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Cache            CacheConfig
	Jobs             JobsConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("CLAMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "debug")

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("api.baseurl", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.csrfcookiename", "csrftoken")

	v.SetDefault("session.backend", "file")
	v.SetDefault("session.filepath", ".clamood/session.json")
	v.SetDefault("session.rediskey", "clamood:console:session")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.bucketexport", "clamood-exports")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.linkttl", "15m")

	v.SetDefault("cache.staletime", "0s")
	v.SetDefault("cache.gctime", "5m")

	v.SetDefault("jobs.sessioncheck", "0 */5 * * * *")
	v.SetDefault("jobs.cacheprune", "0 * * * * *")

	v.SetDefault("allowcorsorigins", []string{})
}
