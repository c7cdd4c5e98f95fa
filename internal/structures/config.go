package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type BackendConfig struct {
	BaseURL        string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout        time.Duration `yaml:"timeout" validate:"required|min:1"`
	PageSize       int           `yaml:"pageSize" validate:"required|uint|min:1|max:1000"`
	MaxRecords     int           `yaml:"maxRecords" validate:"required|uint|min:1"`
	MaxPages       int           `yaml:"maxPages" validate:"required|uint|min:1"`
	RetryAttempts  int           `yaml:"retryAttempts" validate:"uint"`
	RetryBaseDelay time.Duration `yaml:"retryBaseDelay"`
}

type DirectoryConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

type InsightsConfig struct {
	GrowthThreshold float64 `yaml:"growthThreshold"`
}

type SnapshotConfig struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Backend   BackendConfig   `yaml:"backend"`
	Directory DirectoryConfig `yaml:"directory"`
	Insights  InsightsConfig  `yaml:"insights"`
	WebServer Server          `yaml:"webServer"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type Route struct {
	Url     string
	Handler http.Handler
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
