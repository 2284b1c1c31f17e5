package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server          ServerConfig     `mapstructure:"http_server" yaml:"http_server"`
	Database        DatabaseConfig   `mapstructure:"database" yaml:"database"`
	PortmapDatabase DatabaseConfig   `mapstructure:"portmap_database" yaml:"portmap_database"`
	Cache           CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Directory       DirectoryConfig  `mapstructure:"directory" yaml:"directory"`
	Mail            MailConfig       `mapstructure:"mail" yaml:"mail"`
	Ticketing       TicketingConfig  `mapstructure:"ticketing" yaml:"ticketing"`
	RMS             RMSConfig        `mapstructure:"rms" yaml:"rms"`
	Security        SecurityConfig   `mapstructure:"security" yaml:"security"`
	Navbar          NavbarConfig     `mapstructure:"navbar" yaml:"navbar"`
	Onboarding      OnboardingConfig `mapstructure:"onboarding" yaml:"onboarding"`
	Inventory       InventoryConfig  `mapstructure:"inventory" yaml:"inventory"`
	Logging         LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" yaml:"port"`
	BaseURL           string        `mapstructure:"base_url" yaml:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time"`
	Source          string        `mapstructure:"source" yaml:"source"`
}

// CacheConfig selects the shared cache backend. Both permission checks and
// rendered navbars are stored there.
type CacheConfig struct {
	Driver        string        `mapstructure:"driver" yaml:"driver"`
	Addr          string        `mapstructure:"addr" yaml:"addr"`
	Password      string        `mapstructure:"password" yaml:"password"`
	DB            int           `mapstructure:"db" yaml:"db"`
	PermissionTTL time.Duration `mapstructure:"permission_ttl" yaml:"permission_ttl"`
	NavbarTTL     time.Duration `mapstructure:"navbar_ttl" yaml:"navbar_ttl"`
}

type DirectoryConfig struct {
	URL           string        `mapstructure:"url" yaml:"url"`
	BindDN        string        `mapstructure:"bind_dn" yaml:"bind_dn"`
	BindPassword  string        `mapstructure:"bind_password" yaml:"bind_password"`
	BaseDN        string        `mapstructure:"base_dn" yaml:"base_dn"`
	UserAttribute string        `mapstructure:"user_attribute" yaml:"user_attribute"`
	UserDomain    string        `mapstructure:"user_domain" yaml:"user_domain"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type MailConfig struct {
	ClientID       string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret   string `mapstructure:"client_secret" yaml:"client_secret"`
	RefreshToken   string `mapstructure:"refresh_token" yaml:"refresh_token"`
	User           string `mapstructure:"user" yaml:"user"`
	InboxLabel     string `mapstructure:"inbox_label" yaml:"inbox_label"`
	VoicemailLabel string `mapstructure:"voicemail_label" yaml:"voicemail_label"`
}

type TicketingConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// RMSConfig points at the housing records system that rosters are read from.
type RMSConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type SecurityConfig struct {
	AccessTokenSecret    string        `mapstructure:"access_token_secret" yaml:"access_token_secret"`
	RefreshTokenSecret   string        `mapstructure:"refresh_token_secret" yaml:"refresh_token_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration" yaml:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration" yaml:"refresh_token_duration"`
}

type NavbarConfig struct {
	DepthPolicy string `mapstructure:"depth_policy" yaml:"depth_policy"`
	StaticURL   string `mapstructure:"static_url" yaml:"static_url"`
}

type OnboardingConfig struct {
	PermissionClass string `mapstructure:"permission_class" yaml:"permission_class"`
}

// InventoryConfig holds the suffix appended to computer display names to form
// their DNS names.
type InventoryConfig struct {
	DNSSuffix string `mapstructure:"dns_suffix" yaml:"dns_suffix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"

	defaultCacheTTL = 4 * time.Hour
)

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds the configuration for container deployments where
// no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("HTTP_BASE_URL", "http://localhost:8080"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DB_SOURCE", ""),
		},
		PortmapDatabase: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("PORTMAP_DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getEnvAsInt("PORTMAP_DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("PORTMAP_DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("PORTMAP_DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("PORTMAP_DB_SOURCE", ""),
		},
		Cache: CacheConfig{
			Driver:        getEnv("CACHE_DRIVER", CacheDriverRedis),
			Addr:          getEnv("CACHE_ADDR", "localhost:6379"),
			Password:      getEnv("CACHE_PASSWORD", ""),
			DB:            getEnvAsInt("CACHE_DB", 0),
			PermissionTTL: getEnvAsDuration("CACHE_PERMISSION_TTL", defaultCacheTTL),
			NavbarTTL:     getEnvAsDuration("CACHE_NAVBAR_TTL", defaultCacheTTL),
		},
		Directory: DirectoryConfig{
			URL:           getEnv("DIRECTORY_URL", ""),
			BindDN:        getEnv("DIRECTORY_BIND_DN", ""),
			BindPassword:  getEnv("DIRECTORY_BIND_PASSWORD", ""),
			BaseDN:        getEnv("DIRECTORY_BASE_DN", ""),
			UserAttribute: getEnv("DIRECTORY_USER_ATTRIBUTE", "sAMAccountName"),
			UserDomain:    getEnv("DIRECTORY_USER_DOMAIN", ""),
			Timeout:       getEnvAsDuration("DIRECTORY_TIMEOUT", 5*time.Second),
		},
		Mail: MailConfig{
			ClientID:       getEnv("MAIL_CLIENT_ID", ""),
			ClientSecret:   getEnv("MAIL_CLIENT_SECRET", ""),
			RefreshToken:   getEnv("MAIL_REFRESH_TOKEN", ""),
			User:           getEnv("MAIL_USER", "me"),
			InboxLabel:     getEnv("MAIL_INBOX_LABEL", "INBOX"),
			VoicemailLabel: getEnv("MAIL_VOICEMAIL_LABEL", ""),
		},
		Ticketing: TicketingConfig{
			BaseURL: getEnv("TICKETING_BASE_URL", ""),
			APIKey:  getEnv("TICKETING_API_KEY", ""),
			Timeout: getEnvAsDuration("TICKETING_TIMEOUT", 5*time.Second),
		},
		RMS: RMSConfig{
			BaseURL: getEnv("RMS_BASE_URL", ""),
			APIKey:  getEnv("RMS_API_KEY", ""),
			Timeout: getEnvAsDuration("RMS_TIMEOUT", 10*time.Second),
		},
		Security: SecurityConfig{
			AccessTokenSecret:    getEnv("SECURITY_ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret:   getEnv("SECURITY_REFRESH_TOKEN_SECRET", ""),
			AccessTokenDuration:  getEnvAsDuration("SECURITY_ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getEnvAsDuration("SECURITY_REFRESH_TOKEN_DURATION", 7*24*time.Hour),
		},
		Navbar: NavbarConfig{
			DepthPolicy: getEnv("NAVBAR_DEPTH_POLICY", "flatten"),
			StaticURL:   getEnv("NAVBAR_STATIC_URL", "/static/"),
		},
		Onboarding: OnboardingConfig{
			PermissionClass: getEnv("ONBOARDING_PERMISSION_CLASS", "orientation"),
		},
		Inventory: InventoryConfig{
			DNSSuffix: getEnv("INVENTORY_DNS_SUFFIX", "housing.example.edu"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.PortmapDatabase.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("portmap database config: %v", err))
	}

	if err := c.Cache.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("cache config: %v", err))
	}

	if err := c.Directory.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("directory config: %v", err))
	}

	if err := c.Ticketing.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("ticketing config: %v", err))
	}

	if err := c.RMS.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("rms config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Navbar.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("navbar config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *CacheConfig) Validate() error {
	switch c.Driver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		if c.Addr == "" {
			return errors.New("addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.PermissionTTL < 0 || c.NavbarTTL < 0 {
		return errors.New("ttl values cannot be negative")
	}
	return nil
}

// PermissionTTLOrDefault falls back to four hours when unset.
func (c *CacheConfig) PermissionTTLOrDefault() time.Duration {
	if c.PermissionTTL == 0 {
		return defaultCacheTTL
	}
	return c.PermissionTTL
}

func (c *CacheConfig) NavbarTTLOrDefault() time.Duration {
	if c.NavbarTTL == 0 {
		return defaultCacheTTL
	}
	return c.NavbarTTL
}

func (c *DirectoryConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "ldap" && u.Scheme != "ldaps" {
		return fmt.Errorf("url scheme must be ldap or ldaps, got %q", u.Scheme)
	}
	if c.BaseDN == "" {
		return errors.New("base_dn is required")
	}
	return nil
}

func (c *TicketingConfig) Validate() error {
	if c.BaseURL == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	return nil
}

func (c *RMSConfig) Validate() error {
	if c.BaseURL == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access_token_secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh_token_secret must be at least 32 characters")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if c.AccessTokenDuration <= 0 || c.AccessTokenDuration > time.Hour {
		return errors.New("access_token_duration must be between 0 and 1h")
	}
	if c.RefreshTokenDuration < time.Hour {
		return errors.New("refresh_token_duration must be at least 1h")
	}
	return nil
}

func (c *NavbarConfig) Validate() error {
	switch c.DepthPolicy {
	case "", "flatten", "reject":
		return nil
	default:
		return fmt.Errorf("depth_policy must be flatten or reject, got %q", c.DepthPolicy)
	}
}
