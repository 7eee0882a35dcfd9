package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Import.MaxFileSize != 104857600 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 104857600)
	}
	if cfg.Import.SampleRows != 5 {
		t.Errorf("Import.SampleRows = %d, want %d", cfg.Import.SampleRows, 5)
	}
	if cfg.Import.DefaultEncoding != "utf-8" {
		t.Errorf("Import.DefaultEncoding = %q, want %q", cfg.Import.DefaultEncoding, "utf-8")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("IMPORT_SAMPLE_ROWS", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Import.SampleRows != 10 {
		t.Errorf("Import.SampleRows = %d, want %d", cfg.Import.SampleRows, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.ShutdownTimeout != 90*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, 90*time.Second)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port number", "SERVER_PORT", "not-a-port"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad duration", "SERVER_READ_TIMEOUT", "soon"},
		{"zero sample rows", "IMPORT_SAMPLE_ROWS", "0"},
		{"negative file size", "IMPORT_MAX_FILE_SIZE", "-1"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded with %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	t.Setenv("IMPORT_SAMPLE_ROWS", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with two invalid settings")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "IMPORT_SAMPLE_ROWS") {
		t.Errorf("error does not mention both problems: %v", err)
	}
}

func TestAddr(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{"host and port", ServerConfig{Host: "127.0.0.1", Port: 8080}, "127.0.0.1:8080"},
		{"empty host", ServerConfig{Host: "", Port: 9000}, ":9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}
