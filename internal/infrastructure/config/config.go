package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Gray Logic access controller.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
	Keypad   KeypadConfig   `yaml:"keypad"`
	Door     DoorConfig     `yaml:"door"`
	Security SecurityConfig `yaml:"security"`
	Hardware HardwareConfig `yaml:"hardware"`
}

// SiteConfig identifies the door this controller guards.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageConfig locates the credential records.
type StorageConfig struct {
	// Dir holds password.txt and uid.txt. Created on first save.
	Dir string `yaml:"dir"`
}

// DatabaseConfig contains SQLite settings for the access event log.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
// The controller only publishes; it never accepts commands over MQTT.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// KeypadConfig holds matrix scan timing.
type KeypadConfig struct {
	// DebounceDelay is the poll interval while a key is held.
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// LongPressDelay is how long a key may be held before the press
	// is reported as a cancel instead of a key.
	LongPressDelay time.Duration `yaml:"long_press_delay"`
}

// DoorConfig holds servo calibration and the auto-close hold time.
type DoorConfig struct {
	// MinDutyPercent is the duty cycle for 0 degrees.
	MinDutyPercent float64 `yaml:"min_duty_percent"`

	// MaxDutyPercent is the duty cycle for 180 degrees.
	MaxDutyPercent float64 `yaml:"max_duty_percent"`

	OpenAngle   float64 `yaml:"open_angle"`
	ClosedAngle float64 `yaml:"closed_angle"`

	// HoldSeconds is the countdown length after a granted access.
	HoldSeconds int `yaml:"hold_seconds"`

	// SettleDelay is how long the servo signal is held after each move.
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// SecurityConfig contains the password retry policy.
type SecurityConfig struct {
	// MaxAttempts is the number of failed attempts allowed back to back.
	// 0 means unlimited, which matches the behaviour of the installed base.
	MaxAttempts int `yaml:"max_attempts"`

	// Backoff is the time it takes to earn one attempt back once
	// MaxAttempts is exhausted.
	Backoff time.Duration `yaml:"backoff"`
}

// HardwareConfig selects the collaborator backend.
type HardwareConfig struct {
	// Backend is the hardware implementation. Only "sim" ships in this tree.
	Backend string `yaml:"backend"`

	// SimTagUID is the tag presented by the simulator's "t" key,
	// one entry per payload byte.
	SimTagUID []int `yaml:"sim_tag_uid"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
// For example: GRAYLOGIC_STORAGE_DIR, GRAYLOGIC_MQTT_HOST
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration with environment overrides applied.
// Used when no config file is present on the device.
func Default() (*Config, error) {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns a Config matching the stock hardware build.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "door-001",
			Name: "Front door",
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Database: DatabaseConfig{
			Enabled:     true,
			Path:        "./data/access.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "graylogic-access",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Keypad: KeypadConfig{
			DebounceDelay:  50 * time.Millisecond,
			LongPressDelay: 500 * time.Millisecond,
		},
		Door: DoorConfig{
			MinDutyPercent: 3.0,
			MaxDutyPercent: 10.5,
			OpenAngle:      90,
			ClosedAngle:    0,
			HoldSeconds:    10,
			SettleDelay:    time.Second,
		},
		Security: SecurityConfig{
			MaxAttempts: 0,
			Backoff:     30 * time.Second,
		},
		Hardware: HardwareConfig{
			Backend:   "sim",
			SimTagUID: []int{104, 52, 31, 87},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAYLOGIC_SITE_ID"); v != "" {
		cfg.Site.ID = v
	}

	// Storage
	if v := os.Getenv("GRAYLOGIC_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}

	// Database
	if v := os.Getenv("GRAYLOGIC_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("GRAYLOGIC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("GRAYLOGIC_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Security
	if v := os.Getenv("GRAYLOGIC_SECURITY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.MaxAttempts = n
		}
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	if c.Storage.Dir == "" {
		errs = append(errs, "storage.dir is required")
	}

	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when database is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && (c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535) {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if c.Keypad.DebounceDelay <= 0 {
		errs = append(errs, "keypad.debounce_delay must be positive")
	}
	if c.Keypad.LongPressDelay < c.Keypad.DebounceDelay {
		errs = append(errs, "keypad.long_press_delay must not be shorter than debounce_delay")
	}

	if c.Door.MinDutyPercent <= 0 || c.Door.MaxDutyPercent <= c.Door.MinDutyPercent || c.Door.MaxDutyPercent > 100 {
		errs = append(errs, "door duty range must satisfy 0 < min_duty_percent < max_duty_percent <= 100")
	}
	if c.Door.OpenAngle < 0 || c.Door.OpenAngle > 180 || c.Door.ClosedAngle < 0 || c.Door.ClosedAngle > 180 {
		errs = append(errs, "door angles must be between 0 and 180")
	}
	if c.Door.HoldSeconds < 0 {
		errs = append(errs, "door.hold_seconds must not be negative")
	}

	if c.Security.MaxAttempts < 0 {
		errs = append(errs, "security.max_attempts must not be negative")
	}
	if c.Security.MaxAttempts > 0 && c.Security.Backoff <= 0 {
		errs = append(errs, "security.backoff must be positive when max_attempts is set")
	}

	switch c.Hardware.Backend {
	case "sim":
		if len(c.Hardware.SimTagUID) == 0 {
			errs = append(errs, "hardware.sim_tag_uid must not be empty")
		}
		for _, b := range c.Hardware.SimTagUID {
			if b < 0 || b > 255 {
				errs = append(errs, "hardware.sim_tag_uid entries must be between 0 and 255")
				break
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("hardware.backend %q is not supported (want sim)", c.Hardware.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
