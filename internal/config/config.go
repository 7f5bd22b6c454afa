package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gpsclock/internal/serial"
)

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Display DisplayConfig `yaml:"display"`
	Web     WebConfig     `yaml:"web"`
	Log     LogConfig     `yaml:"log"`
}

type SerialConfig struct {
	// Device may be empty to auto-detect.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type DisplayConfig struct {
	Enable bool `yaml:"enable"`
	// Pins use BCM GPIO numbering.
	DINPin  int `yaml:"din_pin"`
	CLKPin  int `yaml:"clk_pin"`
	LOADPin int `yaml:"load_pin"`
	// Intensity is the MAX7219 brightness step, 0..15.
	Intensity *int `yaml:"intensity"`
	// UTCOffsetHours is added to the received UTC hour before display.
	UTCOffsetHours int `yaml:"utc_offset_hours"`
}

type WebConfig struct {
	// Listen is host:port for the status API; empty disables it.
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML, rejecting unknown keys, then applies defaults.
func Parse(b []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return Config{}, fmt.Errorf("config contains unknown fields: %s", unknownFieldDetail(err))
		}
		return Config{}, err
	}
	if err := DefaultAndValidate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func unknownFieldDetail(err error) string {
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg := te.Errors[0]
		// "line N: field x not found in type config.T"
		if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, "line ") {
			msg = msg[i+2:]
		}
		return msg
	}
	return err.Error()
}

// DefaultAndValidate fills defaults in place and reports the first invalid key.
func DefaultAndValidate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	cfg.Serial.Device = strings.TrimSpace(cfg.Serial.Device)
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 9600
	}
	if !serial.Supported(cfg.Serial.Baud) {
		return fmt.Errorf("serial.baud %d is not supported", cfg.Serial.Baud)
	}

	if cfg.Display.DINPin == 0 {
		cfg.Display.DINPin = 10
	}
	if cfg.Display.CLKPin == 0 {
		cfg.Display.CLKPin = 11
	}
	if cfg.Display.LOADPin == 0 {
		cfg.Display.LOADPin = 8
	}
	if cfg.Display.DINPin < 0 || cfg.Display.CLKPin < 0 || cfg.Display.LOADPin < 0 {
		return fmt.Errorf("display pins must be positive BCM numbers")
	}
	if cfg.Display.DINPin == cfg.Display.CLKPin || cfg.Display.DINPin == cfg.Display.LOADPin || cfg.Display.CLKPin == cfg.Display.LOADPin {
		return fmt.Errorf("display.din_pin, display.clk_pin and display.load_pin must be distinct")
	}
	if cfg.Display.Intensity == nil {
		v := 12
		cfg.Display.Intensity = &v
	}
	if *cfg.Display.Intensity < 0 || *cfg.Display.Intensity > 15 {
		return fmt.Errorf("display.intensity must be within [0,15]")
	}
	if cfg.Display.UTCOffsetHours < -12 || cfg.Display.UTCOffsetHours > 14 {
		return fmt.Errorf("display.utc_offset_hours must be within [-12,14]")
	}

	cfg.Web.Listen = strings.TrimSpace(cfg.Web.Listen)

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}

	return nil
}
