package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "test-site"
  name: "Test Varasto"
database:
  enabled: true
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  enabled: true
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
  topic_prefix: "test"
api:
  host: "0.0.0.0"
  port: 8080
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-site" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-site")
	}

	if !cfg.Database.Enabled {
		t.Error("Database.Enabled = false, want true")
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.MQTT.TopicPrefix != "test" {
		t.Errorf("MQTT.TopicPrefix = %q, want %q", cfg.MQTT.TopicPrefix, "test")
	}

	// Values absent from the file keep their defaults.
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults", err)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Database.Enabled || cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("optional adapters should be disabled by default")
	}
}

func TestLoad_UnreadablePath(t *testing.T) {
	// A directory exists but cannot be read as a file.
	_, err := Load(t.TempDir())
	if err == nil {
		t.Error("Load() expected error for directory path, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
site:
  id: ""
api:
  port: 8080
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty site.id, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				MQTT: MQTTConfig{QoS: 1},
				API:  APIConfig{Port: 8080},
			},
			wantErr: false,
		},
		{
			name: "missing site ID",
			config: &Config{
				Site: SiteConfig{ID: ""},
				API:  APIConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "database enabled without path",
			config: &Config{
				Site:     SiteConfig{ID: "varasto"},
				Database: DatabaseConfig{Enabled: true, Path: ""},
				API:      APIConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "database disabled without path",
			config: &Config{
				Site:     SiteConfig{ID: "varasto"},
				Database: DatabaseConfig{Enabled: false, Path: ""},
				API:      APIConfig{Port: 8080},
			},
			wantErr: false,
		},
		{
			name: "invalid QoS",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				MQTT: MQTTConfig{QoS: 3},
				API:  APIConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "mqtt enabled without topic prefix",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				MQTT: MQTTConfig{Enabled: true, QoS: 1},
				API:  APIConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "invalid port low",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				API:  APIConfig{Port: 0},
			},
			wantErr: true,
		},
		{
			name: "invalid port high",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				API:  APIConfig{Port: 70000},
			},
			wantErr: true,
		},
		{
			name: "tls without certificate",
			config: &Config{
				Site: SiteConfig{ID: "varasto"},
				API:  APIConfig{Port: 8443, TLS: TLSConfig{Enabled: true}},
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled without url",
			config: &Config{
				Site:     SiteConfig{ID: "varasto"},
				API:      APIConfig{Port: 8080},
				InfluxDB: InfluxDBConfig{Enabled: true, Bucket: "varasto"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API: APIConfig{
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()

	t.Setenv("VARASTO_DATABASE_ENABLED", "true")
	t.Setenv("VARASTO_DATABASE_PATH", "/custom/path.db")
	t.Setenv("VARASTO_MQTT_ENABLED", "1")
	t.Setenv("VARASTO_MQTT_HOST", "mqtt.example.com")
	t.Setenv("VARASTO_MQTT_USERNAME", "testuser")
	t.Setenv("VARASTO_MQTT_PASSWORD", "testpass")
	t.Setenv("VARASTO_API_HOST", "192.168.1.1")
	t.Setenv("VARASTO_API_PORT", "9090")
	t.Setenv("VARASTO_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("VARASTO_LOG_LEVEL", "debug")

	applyEnvOverrides(cfg)

	if !cfg.Database.Enabled {
		t.Error("Database.Enabled = false, want true")
	}

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if !cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = false, want true")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}

	if cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.MQTT.Auth.Password, "testpass")
	}

	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}

	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestApplyEnvOverrides_IgnoresMalformedValues(t *testing.T) {
	cfg := Default()

	t.Setenv("VARASTO_API_PORT", "not-a-port")
	t.Setenv("VARASTO_DATABASE_ENABLED", "maybe")

	applyEnvOverrides(cfg)

	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled = true, want false")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Site.ID == "" {
		t.Error("Default should have non-empty Site.ID")
	}

	if cfg.Database.Path == "" {
		t.Error("Default should have non-empty Database.Path")
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("Default MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("Default API.Port = %d, want 8080", cfg.API.Port)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

// The shipped example must load and match the defaults it documents.
func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.API.Port != def.API.Port {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, def.API.Port)
	}
	if cfg.MQTT.TopicPrefix != def.MQTT.TopicPrefix {
		t.Errorf("MQTT.TopicPrefix = %q, want %q", cfg.MQTT.TopicPrefix, def.MQTT.TopicPrefix)
	}
	if cfg.InfluxDB.BatchSize != def.InfluxDB.BatchSize {
		t.Errorf("InfluxDB.BatchSize = %d, want %d", cfg.InfluxDB.BatchSize, def.InfluxDB.BatchSize)
	}
}
