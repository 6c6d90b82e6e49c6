package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver       string        `yaml:"driver" validate:"required|in:file,sqlite"`
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ScheduleDefaults struct {
	Bedtime  string `yaml:"bedtime" validate:"required"`
	WakeTime string `yaml:"wakeTime" validate:"required"`
	AutoLock bool   `yaml:"autoLock"`
}

type ChallengeConfig struct {
	WaitSeconds int `yaml:"waitSeconds" validate:"required|min:1"`
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
	AppName     string
	Debug       bool
	Path        string
	Schedule    ScheduleDefaults `yaml:"schedule"`
	Challenge   ChallengeConfig  `yaml:"challenge"`
	WebServer   Server           `yaml:"webServer"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
