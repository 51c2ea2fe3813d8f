package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/folio"
	ConfigFileName    = "folio.yml"

	// MinTokenSecretLength matches the token service's minimum.
	MinTokenSecretLength = 32

	StorePostgres = "postgres"
	StoreMemory   = "memory"

	sourceDefault     = "default"
	sourceFile        = "file"
	sourceEnvironment = "environment"
)

// FolioConfig holds all server configuration settings
type FolioConfig struct {
	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP listen port
	Port int `yaml:"port" json:"port"`

	// DatabaseURL is the postgres connection string
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// Store selects the persistence backend: postgres or memory
	Store string `yaml:"store" json:"store"`

	// TokenTTL is the lifetime of issued bearer tokens
	TokenTTL time.Duration `yaml:"-" json:"token_ttl"`

	// TokenIssuer is written to and required in the iss claim
	TokenIssuer string `yaml:"token_issuer" json:"token_issuer"`

	// BcryptCost is the password hashing cost
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost"`

	// CORSAllowedOrigins lists origins allowed to call the API
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// TrustedProxies is a list of CIDR ranges whose forwarding headers are honored
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// ConcealForbidden renders every forbidden response as not found
	ConcealForbidden bool `yaml:"conceal_forbidden" json:"conceal_forbidden"`

	// MetricsEnabled exposes /metrics and records request metrics
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// AuditEnabled writes audit events
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is json or text
	LogFormat string `yaml:"log_format" json:"log_format"`

	// tokenSecret and auditDatabaseURL come from the environment only
	tokenSecret      string
	auditDatabaseURL string

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors the YAML file; pointers distinguish unset from zero.
type fileConfig struct {
	BindAddress        *string  `yaml:"bind_address"`
	Port               *int     `yaml:"port"`
	DatabaseURL        *string  `yaml:"database_url"`
	Store              *string  `yaml:"store"`
	TokenTTL           *string  `yaml:"token_ttl"`
	TokenIssuer        *string  `yaml:"token_issuer"`
	BcryptCost         *int     `yaml:"bcrypt_cost"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
	ConcealForbidden   *bool    `yaml:"conceal_forbidden"`
	MetricsEnabled     *bool    `yaml:"metrics_enabled"`
	AuditEnabled       *bool    `yaml:"audit_enabled"`
	LogLevel           *string  `yaml:"log_level"`
	LogFormat          *string  `yaml:"log_format"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *FolioConfig {
	return &FolioConfig{
		BindAddress:        "0.0.0.0",
		Port:               8070,
		Store:              StorePostgres,
		TokenTTL:           30 * 24 * time.Hour,
		TokenIssuer:        "folio",
		BcryptCost:         10,
		CORSAllowedOrigins: []string{"*"},
		TrustedProxies:     []string{},
		MetricsEnabled:     true,
		AuditEnabled:       true,
		LogLevel:           "info",
		LogFormat:          "json",
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*FolioConfig, error) {
	configPath := os.Getenv("FOLIO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return LoadFile(filepath.Join(configPath, ConfigFileName))
}

// LoadFile loads configuration from path, which may not exist, and the environment.
func LoadFile(path string) (*FolioConfig, error) {
	config := newDefault()
	for _, name := range attributeNames() {
		config.sources[name] = sourceDefault
	}
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := config.applyFileConfig(&file); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}
	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "database_url", "store", "token_ttl",
		"token_issuer", "token_secret", "bcrypt_cost", "cors_allowed_origins",
		"trusted_proxies", "conceal_forbidden", "metrics_enabled",
		"audit_enabled", "audit_database_url", "log_level", "log_format",
	}
}

func (c *FolioConfig) applyFileConfig(file *fileConfig) error {
	if file.BindAddress != nil {
		c.BindAddress = *file.BindAddress
		c.sources["bind_address"] = sourceFile
	}
	if file.Port != nil {
		c.Port = *file.Port
		c.sources["port"] = sourceFile
	}
	if file.DatabaseURL != nil {
		c.DatabaseURL = *file.DatabaseURL
		c.sources["database_url"] = sourceFile
	}
	if file.Store != nil {
		c.Store = *file.Store
		c.sources["store"] = sourceFile
	}
	if file.TokenTTL != nil {
		ttl, err := time.ParseDuration(*file.TokenTTL)
		if err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
		c.TokenTTL = ttl
		c.sources["token_ttl"] = sourceFile
	}
	if file.TokenIssuer != nil {
		c.TokenIssuer = *file.TokenIssuer
		c.sources["token_issuer"] = sourceFile
	}
	if file.BcryptCost != nil {
		c.BcryptCost = *file.BcryptCost
		c.sources["bcrypt_cost"] = sourceFile
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = sourceFile
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = sourceFile
	}
	if file.ConcealForbidden != nil {
		c.ConcealForbidden = *file.ConcealForbidden
		c.sources["conceal_forbidden"] = sourceFile
	}
	if file.MetricsEnabled != nil {
		c.MetricsEnabled = *file.MetricsEnabled
		c.sources["metrics_enabled"] = sourceFile
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = sourceFile
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = sourceFile
	}
	if file.LogFormat != nil {
		c.LogFormat = *file.LogFormat
		c.sources["log_format"] = sourceFile
	}
	return nil
}

func (c *FolioConfig) applyEnvConfig() error {
	if val := os.Getenv("FOLIO_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = sourceEnvironment
	}
	port := os.Getenv("FOLIO_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" {
		i, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		c.Port = i
		c.sources["port"] = sourceEnvironment
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_STORE"); val != "" {
		c.Store = val
		c.sources["store"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_TOKEN_TTL"); val != "" {
		ttl, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid FOLIO_TOKEN_TTL %q: %w", val, err)
		}
		c.TokenTTL = ttl
		c.sources["token_ttl"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_TOKEN_ISSUER"); val != "" {
		c.TokenIssuer = val
		c.sources["token_issuer"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_TOKEN_SECRET"); val != "" {
		c.tokenSecret = val
		c.sources["token_secret"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_BCRYPT_COST"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid FOLIO_BCRYPT_COST %q: %w", val, err)
		}
		c.BcryptCost = i
		c.sources["bcrypt_cost"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_CONCEAL_FORBIDDEN"); val != "" {
		c.ConcealForbidden = isTrue(val)
		c.sources["conceal_forbidden"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = isTrue(val)
		c.sources["metrics_enabled"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = isTrue(val)
		c.sources["audit_enabled"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_AUDIT_DATABASE_URL"); val != "" {
		c.auditDatabaseURL = val
		c.sources["audit_database_url"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = sourceEnvironment
	}
	if val := os.Getenv("FOLIO_LOG_FORMAT"); val != "" {
		c.LogFormat = strings.ToLower(val)
		c.sources["log_format"] = sourceEnvironment
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *FolioConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *FolioConfig) Source(name string) string {
	if c.sources == nil {
		return sourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return sourceDefault
}

// Addr returns the listen address.
func (c *FolioConfig) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// TokenSecret returns the signing secret, which must be set in FOLIO_TOKEN_SECRET.
func (c *FolioConfig) TokenSecret() ([]byte, error) {
	if c.tokenSecret == "" {
		return nil, fmt.Errorf("FOLIO_TOKEN_SECRET is not set")
	}
	if len(c.tokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("FOLIO_TOKEN_SECRET must be at least %d bytes", MinTokenSecretLength)
	}
	return []byte(c.tokenSecret), nil
}

// AuditDatabaseURL returns the audit database connection string, if any.
func (c *FolioConfig) AuditDatabaseURL() string {
	return c.auditDatabaseURL
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *FolioConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if other := net.ParseIP(cidr); other != nil && other.Equal(parsedIP) {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// SlogLevel returns LogLevel as a slog.Level.
func (c *FolioConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the application logger for LogFormat and LogLevel.
func (c *FolioConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Validate validates the configuration
func (c *FolioConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s store", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid store: %s", c.Store)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL)
	}

	// bcrypt.MinCost and bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", c.BcryptCost)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}

	// Validate trusted proxies are valid CIDR ranges
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *FolioConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "store", Value: c.Store, Source: c.Source("store")},
		{Name: "token_ttl", Value: c.TokenTTL.String(), Source: c.Source("token_ttl")},
		{Name: "token_issuer", Value: c.TokenIssuer, Source: c.Source("token_issuer")},
		{Name: "token_secret", Value: masked(c.tokenSecret), Source: c.Source("token_secret")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "conceal_forbidden", Value: strconv.FormatBool(c.ConcealForbidden), Source: c.Source("conceal_forbidden")},
		{Name: "metrics_enabled", Value: strconv.FormatBool(c.MetricsEnabled), Source: c.Source("metrics_enabled")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "audit_database_url", Value: redactURL(c.auditDatabaseURL), Source: c.Source("audit_database_url")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
	}
}

// FormatText returns a text representation of the configuration
func (c *FolioConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *FolioConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func masked(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// redactURL hides the password in a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	creds := raw[scheme+3 : at]
	if user, _, ok := strings.Cut(creds, ":"); ok {
		return raw[:scheme+3] + user + ":********" + raw[at:]
	}
	return raw
}

func isTrue(val string) bool {
	return val == "true" || val == "1"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
