package slotor

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"

	"github.com/viant/slotor/internal/expr"
	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/policy"
	slotenv "github.com/viant/slotor/service/dao/slot/env"
)

// Registry vendors
const (
	RegistryVendorMemory = "memory"
	RegistryVendorEnv    = "env"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML, JSON or environment variables. The zero-value
// is useful – all nested fields inherit their package defaults.
type Config struct {
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
	Events     EventsConfig     `json:"events" yaml:"events"`
	Logging    logging.Config   `json:"logging" yaml:"logging"`
	Monitoring MonitoringConfig `json:"monitoring" yaml:"monitoring"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
	Policy     *policy.Config   `json:"policy,omitempty" yaml:"policy,omitempty" ignored:"true"`
}

// RegistryConfig selects the slot registry vendor. The env vendor persists
// entries as process environment variables named "<PREFIX>_" + slot, the
// boundary external tooling reads.
type RegistryConfig struct {
	Vendor string `json:"vendor" yaml:"vendor" envconfig:"REGISTRY_VENDOR" default:"memory"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" envconfig:"REGISTRY_PREFIX"`
}

// EventsConfig controls lifecycle event publication.
type EventsConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled" envconfig:"EVENTS_ENABLED" default:"true"`
	QueueBuffer int  `json:"queueBuffer,omitempty" yaml:"queueBuffer,omitempty" envconfig:"EVENTS_QUEUE_BUFFER"`
}

// MonitoringConfig controls Prometheus metrics.
type MonitoringConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" envconfig:"MONITORING_ENABLED"`
}

// TracingConfig controls OpenTelemetry tracing.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled" envconfig:"TRACING_ENABLED"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty" envconfig:"TRACING_SERVICE_NAME"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty" envconfig:"TRACING_SERVICE_VERSION"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty" envconfig:"TRACING_OUTPUT_FILE"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Vendor: RegistryVendorMemory,
			Prefix: slotenv.DefaultPrefix,
		},
		Events:  EventsConfig{Enabled: true},
		Logging: logging.DefaultConfig(),
		Tracing: TracingConfig{
			ServiceName:    "slotor",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Registry.Vendor {
	case "", RegistryVendorMemory, RegistryVendorEnv:
	default:
		return fmt.Errorf("registry.vendor %q not supported", c.Registry.Vendor)
	}
	if c.Registry.Prefix != "" {
		if err := model.ValidateSlot(c.Registry.Prefix); err != nil {
			return fmt.Errorf("registry.prefix %q must contain alpha, numbers and '_' only", c.Registry.Prefix)
		}
	}
	if c.Events.QueueBuffer < 0 {
		return fmt.Errorf("events.queueBuffer must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML config document from URL (any scheme afs supports,
// e.g. file, embed, s3), expanding ${env.KEY} expressions first.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	data = []byte(expr.ExpandEnv(string(data)))
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigFromEnv populates the config from environment variables
// (REGISTRY_VENDOR, REGISTRY_PREFIX, EVENTS_ENABLED, LOG_LEVEL, ...) on top
// of the package defaults.
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
