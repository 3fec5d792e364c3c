// Package monitor reads and checks the timestamp telemetry stream a
// pulsetime device emits over its serial port.
package monitor

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML values like "10s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	v, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", node.Value, err)
	}
	*d = Duration(v)
	return nil
}

// Config holds the monitor settings. Flags on the command line override
// values loaded from the YAML file.
type Config struct {
	// Device path, e.g. "/dev/ttyACM0" or "COM3".
	Device string `yaml:"device"`

	// Baud rate. USB CDC ignores it, real UARTs do not.
	Baud int `yaml:"baud"`

	// ReportInterval is how often offset statistics are logged.
	ReportInterval Duration `yaml:"report_interval"`
}

// DefaultConfig returns the stock monitor settings.
func DefaultConfig() Config {
	return Config{
		Device:         "/dev/ttyACM0",
		Baud:           115200,
		ReportInterval: Duration(10 * time.Second),
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path is
// not an error; the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
