package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	ContentStore ContentStoreConfig `yaml:"content_store"`
	Auth         AuthConfig         `yaml:"auth"`
	Cache        CacheConfig        `yaml:"cache"`
	Preset       PresetConfig       `yaml:"preset"`
	Sandbox      SandboxConfig      `yaml:"sandbox"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	CORS         CORSConfig         `yaml:"cors"`
	Log          LogConfig          `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// ContentStoreConfig holds settings for the remote store holding preset
// records.
type ContentStoreConfig struct {
	Endpoint    string `yaml:"endpoint"     env:"STORE_ENDPOINT"     env-required:"true"`
	AccessToken string `yaml:"access_token" env:"STORE_ACCESS_TOKEN" env-required:"true"`
	StoreDomain string `yaml:"store_domain" env:"STORE_DOMAIN"       env-required:"true"`
	RecordType  string `yaml:"record_type"  env:"STORE_RECORD_TYPE"  env-default:"background_preset"`
	PageSize    int    `yaml:"page_size"    env:"STORE_PAGE_SIZE"    env-default:"50"`
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	AdminKey      string        `yaml:"admin_key"      env:"AUTH_ADMIN_KEY"      env-required:"true"`
	SessionSecret string        `yaml:"session_secret" env:"AUTH_SESSION_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"AUTH_TOKEN_TTL"      env-default:"30m"`
	LoginPerMin   int           `yaml:"login_per_min"  env:"AUTH_LOGIN_PER_MIN"  env-default:"10"`
}

// CacheConfig holds activation cache settings. An empty RedisAddr selects
// the in-process cache.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"     env:"CACHE_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"CACHE_REDIS_DB"       env-default:"0"`
	TTL           time.Duration `yaml:"ttl"            env:"CACHE_TTL"            env-default:"30s"`
}

// PresetConfig holds preset content ceilings.
type PresetConfig struct {
	MaxHTMLChars int `yaml:"max_html_chars" env:"PRESET_MAX_HTML_CHARS" env-default:"50000"`
	MaxCSSChars  int `yaml:"max_css_chars"  env:"PRESET_MAX_CSS_CHARS"  env-default:"25000"`
	MaxJSChars   int `yaml:"max_js_chars"   env:"PRESET_MAX_JS_CHARS"   env-default:"25000"`
}

// SandboxConfig holds sandbox renderer settings. BrowserURL is the CDP
// websocket of an existing Chrome; empty launches a local one when the
// rod host is used.
type SandboxConfig struct {
	LoadTimeout time.Duration `yaml:"load_timeout" env:"SANDBOX_LOAD_TIMEOUT" env-default:"5s"`
	BrowserURL  string        `yaml:"browser_url"  env:"SANDBOX_BROWSER_URL"`
}

// TelemetryConfig holds the persistent event log settings. An empty path
// disables persistence; the in-memory snapshot still works.
type TelemetryConfig struct {
	SQLitePath string `yaml:"sqlite_path" env:"TELEMETRY_SQLITE_PATH"`
	RecentMax  int    `yaml:"recent_max"  env:"TELEMETRY_RECENT_MAX" env-default:"100"`
}

// CORSConfig holds CORS settings for the admin UI origin.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
