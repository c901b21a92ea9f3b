package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "tzsync/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	OAuth    sharedConfig.OAuthConfig    `mapstructure:"oauth"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// legacyEnv maps the plain variable names used by older deployments onto
// config keys. TZSYNC_* variables take precedence.
var legacyEnv = map[string]string{
	"server.host":                      "HOST",
	"server.port":                      "PORT",
	"database.url":                     "DATABASE_URL",
	"database.max_connections":         "DB_MAX_CONNECTIONS",
	"database.connect_timeout_seconds": "DB_CONNECT_TIMEOUT",
	"redis.url":                        "REDIS_URL",
	"redis.pool_size":                  "REDIS_POOL_SIZE",
	"redis.connect_timeout_seconds":    "REDIS_CONNECT_TIMEOUT",
	"oauth.discord.client_id":          "CLIENT_ID",
	"oauth.discord.client_secret":      "CLIENT_SECRET",
	"oauth.discord.redirect_url":       "REDIRECT_URI",
}

// Load reads configuration from an optional yaml file, a .env file and the
// environment, then validates it. configPath may be empty, in which case
// configs/config.yaml is searched for in the usual places.
func Load(configPath string) (*Config, error) {
	// a missing .env is the normal case outside development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("TZSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		prefixed := "TZSYNC_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate checks struct tags and the cross-field rules tags cannot express.
// Error messages name the key but never the value.
func Validate(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config %s: failed %q rule", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if !hasScheme(config.Database.URL, "postgres", "postgresql", "sqlite") {
		return errors.New("invalid config database.url: must start with postgres://, postgresql:// or sqlite://")
	}
	if !hasScheme(config.Redis.URL, "redis", "rediss") {
		return errors.New("invalid config redis.url: must start with redis:// or rediss://")
	}

	enabled := 0
	for name, provider := range config.OAuth.Providers() {
		if !provider.Enabled() {
			continue
		}
		if provider.ClientSecret == "" {
			return fmt.Errorf("invalid config oauth.%s.client_secret: required when client_id is set", name)
		}
		if !hasScheme(provider.RedirectURL, "http", "https") {
			return fmt.Errorf("invalid config oauth.%s.redirect_url: must be an http(s) URL", name)
		}
		enabled++
	}
	if enabled == 0 {
		return errors.New("invalid config oauth: at least one provider must be configured")
	}

	return nil
}

func hasScheme(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, scheme := range schemes {
		if strings.EqualFold(u.Scheme, scheme) {
			return true
		}
	}
	return false
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.default_redirect", "/")
	v.SetDefault("server.public_list", true)
	v.SetDefault("server.trusted_proxies", []string{})

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.connect_timeout_seconds", 30)
	v.SetDefault("database.query_timeout_seconds", 5)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_strategy", "goose")

	// Redis defaults
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 5)
	v.SetDefault("redis.connect_timeout_seconds", 10)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.cookie.name", "session")
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", true)
	v.SetDefault("auth.cookie.same_site", "Lax")
	v.SetDefault("auth.session.ttl_seconds", 3600)
	v.SetDefault("auth.session.state_ttl_seconds", 600)
	v.SetDefault("auth.rate_limit.enabled", true)
	v.SetDefault("auth.rate_limit.requests", 30)
	v.SetDefault("auth.rate_limit.window_seconds", 60)

	// OAuth defaults (empty by default, must be configured)
	for _, name := range []string{"discord", "github", "google"} {
		v.SetDefault("oauth."+name+".client_id", "")
		v.SetDefault("oauth."+name+".client_secret", "")
		v.SetDefault("oauth."+name+".redirect_url", "")
		v.SetDefault("oauth."+name+".use_pkce", false)
		v.SetDefault("oauth."+name+".timeout_seconds", 10)
	}
}
