package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		SiteURL string `mapstructure:"site_url"`
	} `mapstructure:"app"`
	Content struct {
		ProjectID  string `mapstructure:"project_id"`
		Dataset    string `mapstructure:"dataset"`
		APIVersion string `mapstructure:"api_version"`
		UseCDN     bool   `mapstructure:"use_cdn"`
		Token      string `mapstructure:"token"`
	} `mapstructure:"content"`
	Display struct {
		ProficiencyScale string `mapstructure:"proficiency_scale"`
		WideWhenGroups   int    `mapstructure:"wide_when_groups"`
		WideCount        int    `mapstructure:"wide_count"`
	} `mapstructure:"display"`
	Media struct {
		Provider string `mapstructure:"provider"`
	} `mapstructure:"media"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Analytics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"analytics"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

const (
	MediaProviderSanity     = "sanity"
	MediaProviderCloudinary = "cloudinary"
)

// LoadConfig reads .env and config.yaml from paths (the working directory when none
// are given), then overlays environment variables.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, len(paths))
	for i, p := range paths {
		envFiles[i] = filepath.Join(p, ".env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT", "PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.site_url", "APP_SITE_URL")

	// SANITY_ and VITE_SANITY_ names are accepted as aliases.
	v.BindEnv("content.project_id", "CONTENT_PROJECT_ID", "SANITY_PROJECT_ID", "VITE_SANITY_PROJECT_ID")
	v.BindEnv("content.dataset", "CONTENT_DATASET", "SANITY_DATASET", "VITE_SANITY_DATASET")
	v.BindEnv("content.api_version", "CONTENT_API_VERSION")
	v.BindEnv("content.use_cdn", "CONTENT_USE_CDN")
	v.BindEnv("content.token", "CONTENT_TOKEN", "SANITY_TOKEN")

	v.BindEnv("display.proficiency_scale", "DISPLAY_PROFICIENCY_SCALE")
	v.BindEnv("display.wide_when_groups", "DISPLAY_WIDE_WHEN_GROUPS")
	v.BindEnv("display.wide_count", "DISPLAY_WIDE_COUNT")

	v.BindEnv("media.provider", "MEDIA_PROVIDER")
	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("analytics.enabled", "ANALYTICS_ENABLED")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Content.Dataset = strings.TrimSpace(cfg.Content.Dataset)
	if cfg.Content.Dataset == "" {
		cfg.Content.Dataset = "production"
	}
	err = cfg.Validate()
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.site_url", "http://localhost:8080")
	v.SetDefault("content.dataset", "production")
	v.SetDefault("content.api_version", "2023-05-03")
	v.SetDefault("content.use_cdn", true)
	v.SetDefault("display.proficiency_scale", "rendered")
	v.SetDefault("display.wide_when_groups", 5)
	v.SetDefault("display.wide_count", 2)
	v.SetDefault("media.provider", MediaProviderSanity)
	v.SetDefault("analytics.enabled", false)
	v.SetDefault("kafka.group_id", "view-counter-group")
}

// Validate checks settings the server cannot start without. A malformed content project
// id is not one of them; it is reported on each page load.
func (c Config) Validate() error {
	switch c.Media.Provider {
	case MediaProviderSanity:
	case MediaProviderCloudinary:
		if c.Cloudinary.CloudName == "" {
			return fmt.Errorf("media provider %q needs cloudinary.cloud_name", c.Media.Provider)
		}
	default:
		return fmt.Errorf("unknown media provider %q", c.Media.Provider)
	}
	if c.Display.WideCount < 0 || c.Display.WideWhenGroups < 0 {
		return fmt.Errorf("display layout values must not be negative")
	}
	if c.Analytics.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("analytics needs kafka.brokers")
		}
		if c.Redis.Addr == "" {
			return fmt.Errorf("analytics needs redis.addr")
		}
		if c.DB.DSN == "" {
			return fmt.Errorf("analytics needs db.dsn")
		}
	}
	return nil
}
