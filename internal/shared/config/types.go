package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host            string   `mapstructure:"host" validate:"required"`
	Port            int      `mapstructure:"port" validate:"min=1,max=65535"`
	Mode            string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	DefaultRedirect string   `mapstructure:"default_redirect" validate:"required"`
	PublicList      bool     `mapstructure:"public_list"`
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// honoured. Empty trusts none and the socket address is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,ip|cidr"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	URL                   string `mapstructure:"url" validate:"required"`
	MaxConnections        int    `mapstructure:"max_connections" validate:"min=1"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"min=1"`
	QueryTimeoutSeconds   int    `mapstructure:"query_timeout_seconds" validate:"min=1"`
	ConnMaxLifetime       int    `mapstructure:"conn_max_lifetime"` // minutes
	MigrationStrategy     string `mapstructure:"migration_strategy" validate:"oneof=goose golang_migrate auto"`
}

func (d *DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutSeconds) * time.Second
}

func (d *DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	URL                   string `mapstructure:"url" validate:"required"`
	PoolSize              int    `mapstructure:"pool_size" validate:"min=1"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"min=1"`
}

func (r *RedisConfig) ConnectTimeout() time.Duration {
	return time.Duration(r.ConnectTimeoutSeconds) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type CookieConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path" validate:"required"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site" validate:"oneof=Lax Strict"`
}

type SessionConfig struct {
	TTLSeconds      int `mapstructure:"ttl_seconds" validate:"min=60"`
	StateTTLSeconds int `mapstructure:"state_ttl_seconds" validate:"min=30"`
}

func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}

func (s *SessionConfig) StateTTL() time.Duration {
	return time.Duration(s.StateTTLSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests" validate:"min=1"`
	WindowSeconds int  `mapstructure:"window_seconds" validate:"min=1"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type AuthConfig struct {
	Cookie    CookieConfig    `mapstructure:"cookie"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ProviderConfig configures one OAuth identity provider. A provider with an
// empty ClientID is treated as disabled.
type ProviderConfig struct {
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	RedirectURL    string `mapstructure:"redirect_url"`
	UsePKCE        bool   `mapstructure:"use_pkce"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

func (p *ProviderConfig) Enabled() bool {
	return p.ClientID != ""
}

func (p *ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type OAuthConfig struct {
	Discord ProviderConfig `mapstructure:"discord"`
	GitHub  ProviderConfig `mapstructure:"github"`
	Google  ProviderConfig `mapstructure:"google"`
}

// Providers returns the configured providers keyed by route name.
func (o *OAuthConfig) Providers() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"discord": o.Discord,
		"github":  o.GitHub,
		"google":  o.Google,
	}
}
