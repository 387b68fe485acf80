package eye

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "animeyes.json"

// DefaultCommandBaud is the baud rate of the command link.
const DefaultCommandBaud = 9600

// Config holds the controller configuration.
type Config struct {
	// BusPort is the serial port of the servo bus.
	BusPort string `json:"bus_port"`

	// CommandPort is the serial port commands arrive on. "-" means
	// stdin/stdout.
	CommandPort string `json:"command_port"`

	// CommandBaud is the baud rate of the command port.
	CommandBaud int `json:"command_baud,omitempty"`

	Calibration Calibration `json:"calibration,omitempty"`
}

// EffectiveCalibration returns the configured calibration, or the
// factory default when the config carries none.
func (c *Config) EffectiveCalibration() Calibration {
	if len(c.Calibration) > 0 {
		return c.Calibration
	}
	return DefaultCalibration()
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
