// Package config loads and validates the tuning constants of the mesh
// stack: trickle parameters, timeouts, sensing cadence, logging and
// telemetry. Per-role binaries take none of this tuning from command-line
// flags (their flags only name the per-node topology file and, for
// cmd/root, a dashboard address); they load the embedded default and may
// retune it through environment variables, the same override mechanism
// the teacher uses for deployment knobs.
package config

import (
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"DodagMesh/internal/logger"
)

//go:embed mote.yaml
var defaultFS embed.FS

// TrickleConfig holds the adaptive beacon timer parameters (spec §4.1).
type TrickleConfig struct {
	IminMillis int `yaml:"iminMillis"`
	Imax       int `yaml:"imax"`
	K          int `yaml:"k"`
}

func (t TrickleConfig) Imin() time.Duration {
	return time.Duration(t.IminMillis) * time.Millisecond
}

// TimeoutsConfig holds the liveness/eviction timeouts (spec §5).
type TimeoutsConfig struct {
	ParentSeconds   int `yaml:"parentSeconds"`
	DAOPeriodSecs   int `yaml:"daoPeriodSeconds"`
	ChildrenSeconds int `yaml:"childrenSeconds"` // 0 => derive as 2*DAOPeriod
}

func (t TimeoutsConfig) ParentTimeout() time.Duration {
	return time.Duration(t.ParentSeconds) * time.Second
}

func (t TimeoutsConfig) DAOPeriod() time.Duration {
	return time.Duration(t.DAOPeriodSecs) * time.Second
}

func (t TimeoutsConfig) ChildrenTimeout() time.Duration {
	if t.ChildrenSeconds > 0 {
		return time.Duration(t.ChildrenSeconds) * time.Second
	}
	return 2 * t.DAOPeriod()
}

// SensingConfig holds the light-sensor sampling cadence (spec §5).
type SensingConfig struct {
	PeriodSeconds int `yaml:"periodSeconds"`
	JitterSeconds int `yaml:"jitterSeconds"`
}

func (s SensingConfig) Period() time.Duration {
	return time.Duration(s.PeriodSeconds) * time.Second
}

// RadioConfig tunes the better-parent predicate and the routing table.
type RadioConfig struct {
	RSSThreshold       int8 `yaml:"rssThreshold"`
	RoutingTableCap    int  `yaml:"routingTableCapacity"`
	DISRateLimitPerMin int  `yaml:"disRateLimitPerMinute"`
}

// FileLoggerConfig mirrors lumberjack's rotation knobs.
type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Active   bool             `yaml:"active"`
	Level    string           `yaml:"level"`
	Encoding string           `yaml:"encoding"`
	Mode     string           `yaml:"mode"`
	File     FileLoggerConfig `yaml:"file"`
}

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

type Config struct {
	Trickle   TrickleConfig   `yaml:"trickle"`
	Timeouts  TimeoutsConfig  `yaml:"timeouts"`
	Sensing   SensingConfig   `yaml:"sensing"`
	Radio     RadioConfig     `yaml:"radio"`
	Logger    LoggerConfig    `yaml:"logger"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoadDefault loads the configuration embedded at build time. This is what
// every cmd/* role wrapper calls: no flag and no external file is needed
// for the tuning.
func LoadDefault() (*Config, error) {
	data, err := defaultFS.ReadFile("mote.yaml")
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadFile loads configuration from an external YAML file, used by the
// cmd/testbed simulation harness to script non-default scenarios.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnvOverrides retunes deployment-sensitive knobs from the
// environment, without introducing command-line flags.
func (cfg *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TRICKLE_IMIN_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trickle.IminMillis = n
		}
	}
	if v := os.Getenv("TRICKLE_IMAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trickle.Imax = n
		}
	}
	if v := os.Getenv("TIMEOUT_PARENT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timeouts.ParentSeconds = n
		}
	}
	if v := os.Getenv("LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("LOGGER_MODE"); v != "" {
		cfg.Logger.Mode = v
	}
	if v := os.Getenv("TRACE_ENABLED"); v != "" {
		v = strings.ToLower(v)
		cfg.Telemetry.Tracing.Enabled = v == "true" || v == "1" || v == "yes"
	}
}

// Validate performs structural validation of the loaded configuration.
func (cfg *Config) Validate() error {
	var errs []string

	if cfg.Trickle.IminMillis <= 0 {
		errs = append(errs, "trickle.iminMillis must be > 0")
	}
	if cfg.Trickle.Imax < 0 {
		errs = append(errs, "trickle.imax must be >= 0")
	}
	if cfg.Trickle.K < 1 {
		errs = append(errs, "trickle.k must be >= 1")
	}
	if cfg.Timeouts.ParentSeconds <= 0 {
		errs = append(errs, "timeouts.parentSeconds must be > 0")
	}
	if cfg.Timeouts.DAOPeriodSecs <= 0 {
		errs = append(errs, "timeouts.daoPeriodSeconds must be > 0")
	}
	if cfg.Timeouts.ChildrenTimeout() < 2*cfg.Timeouts.DAOPeriod() {
		errs = append(errs, "timeouts.childrenSeconds must be >= 2*daoPeriodSeconds")
	}
	if cfg.Sensing.PeriodSeconds <= 0 {
		errs = append(errs, "sensing.periodSeconds must be > 0")
	}
	if cfg.Radio.RoutingTableCap < 16 {
		errs = append(errs, "radio.routingTableCapacity must be >= 16")
	}
	switch cfg.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Logger.Level))
	}
	switch cfg.Logger.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Logger.Encoding))
	}
	switch cfg.Logger.Mode {
	case "stdout":
	case "file":
		if cfg.Logger.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Logger.Mode))
	}
	if cfg.Telemetry.Tracing.Enabled {
		switch cfg.Telemetry.Tracing.Exporter {
		case "stdout":
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s", cfg.Telemetry.Tracing.Exporter))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig prints the loaded configuration at DEBUG level.
func (cfg *Config) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded configuration",
		logger.F("trickle.iminMillis", cfg.Trickle.IminMillis),
		logger.F("trickle.imax", cfg.Trickle.Imax),
		logger.F("trickle.k", cfg.Trickle.K),
		logger.F("timeouts.parentSeconds", cfg.Timeouts.ParentSeconds),
		logger.F("timeouts.daoPeriodSeconds", cfg.Timeouts.DAOPeriodSecs),
		logger.F("timeouts.childrenTimeout", cfg.Timeouts.ChildrenTimeout().String()),
		logger.F("sensing.periodSeconds", cfg.Sensing.PeriodSeconds),
		logger.F("sensing.jitterSeconds", cfg.Sensing.JitterSeconds),
		logger.F("radio.rssThreshold", cfg.Radio.RSSThreshold),
		logger.F("radio.routingTableCapacity", cfg.Radio.RoutingTableCap),
		logger.F("logger.level", cfg.Logger.Level),
		logger.F("logger.mode", cfg.Logger.Mode),
		logger.F("telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled),
	)
}
