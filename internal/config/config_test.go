package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gpsclock/internal/serial"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_EmptyFileGetsDefaults(t *testing.T) {
	path := writeTempConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serial.Baud != 9600 {
		t.Fatalf("baud=%d want 9600", cfg.Serial.Baud)
	}
	if cfg.Display.DINPin != 10 || cfg.Display.CLKPin != 11 || cfg.Display.LOADPin != 8 {
		t.Fatalf("pins=%d/%d/%d", cfg.Display.DINPin, cfg.Display.CLKPin, cfg.Display.LOADPin)
	}
	if cfg.Display.Intensity == nil || *cfg.Display.Intensity != 12 {
		t.Fatalf("intensity=%v want 12", cfg.Display.Intensity)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("log=%+v", cfg.Log)
	}
	if cfg.Web.Listen != "" {
		t.Fatalf("web.listen=%q want disabled", cfg.Web.Listen)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeTempConfig(t, `
serial:
  device: ' /dev/ttyAMA0 '
  baud: 4800
display:
  enable: true
  din_pin: 17
  clk_pin: 27
  load_pin: 22
  intensity: 0
  utc_offset_hours: 13
web:
  listen: ':8080'
log:
  level: DEBUG
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serial.Device != "/dev/ttyAMA0" || cfg.Serial.Baud != 4800 {
		t.Fatalf("serial=%+v", cfg.Serial)
	}
	if !cfg.Display.Enable || cfg.Display.DINPin != 17 || cfg.Display.UTCOffsetHours != 13 {
		t.Fatalf("display=%+v", cfg.Display)
	}
	// An explicit zero intensity must survive defaulting.
	if *cfg.Display.Intensity != 0 {
		t.Fatalf("intensity=%d want 0", *cfg.Display.Intensity)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log=%+v", cfg.Log)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "UnsupportedBaud",
			body: "serial:\n  baud: 1200\n",
			want: "serial.baud 1200 is not supported",
		},
		{
			name: "IntensityRange",
			body: "display:\n  intensity: 16\n",
			want: "display.intensity must be within [0,15]",
		},
		{
			name: "OffsetRange",
			body: "display:\n  utc_offset_hours: 15\n",
			want: "display.utc_offset_hours must be within [-12,14]",
		},
		{
			name: "DuplicatePins",
			body: "display:\n  din_pin: 8\n",
			want: "display.din_pin, display.clk_pin and display.load_pin must be distinct",
		},
		{
			name: "NegativePin",
			body: "display:\n  clk_pin: -1\n",
			want: "display pins must be positive BCM numbers",
		},
		{
			name: "LogLevel",
			body: "log:\n  level: trace\n",
			want: "log.level must be one of debug, info, warn, error",
		},
		{
			name: "LogFormat",
			body: "log:\n  format: xml\n",
			want: "log.format must be 'text' or 'json'",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tc.body))
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	path := writeTempConfig(t, "serial:\n  device: /dev/ttyUSB0\n  parity: even\n")
	_, err := Load(path)
	requireErrEq(t, err, "config contains unknown fields: field parity not found in type config.SerialConfig")
}

func TestDefaultAndValidate_Nil(t *testing.T) {
	requireErrEq(t, DefaultAndValidate(nil), "config is nil")
}

func TestParse_AcceptsEverySerialBaud(t *testing.T) {
	for _, baud := range serial.SupportedBauds {
		cfg, err := Parse([]byte(fmt.Sprintf("serial:\n  baud: %d\n", baud)))
		if err != nil {
			t.Fatalf("baud %d: %v", baud, err)
		}
		if cfg.Serial.Baud != baud {
			t.Fatalf("baud=%d want %d", cfg.Serial.Baud, baud)
		}
	}
}
