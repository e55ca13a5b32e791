package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yllada/twingate-tray/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ClientBinary != "twingate" {
		t.Errorf("ClientBinary = %q, want twingate", cfg.ClientBinary)
	}
	if cfg.NotifierBinary != "twingate-notifier" {
		t.Errorf("NotifierBinary = %q, want twingate-notifier", cfg.NotifierBinary)
	}
	if cfg.RefreshInterval != 3*time.Second {
		t.Errorf("RefreshInterval = %v, want 3s", cfg.RefreshInterval)
	}
	if cfg.CommandTimeout != 0 {
		t.Errorf("CommandTimeout = %v, want 0", cfg.CommandTimeout)
	}
	if !cfg.ShowNotifications || !cfg.RecordHistory {
		t.Error("notifications and history should be enabled by default")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		check    func(t *testing.T, cfg *Config)
		wantKind error
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.RefreshInterval != common.RefreshInterval {
					t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
				}
			},
		},
		{
			name: "overrides",
			yaml: "client_binary: /opt/tg/twingate\nrefresh_interval: 10s\nelevation_command: \"\"\nhistory_limit: 5\nlog_level: debug\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.ClientBinary != "/opt/tg/twingate" {
					t.Errorf("ClientBinary = %q", cfg.ClientBinary)
				}
				if cfg.RefreshInterval != 10*time.Second {
					t.Errorf("RefreshInterval = %v, want 10s", cfg.RefreshInterval)
				}
				if cfg.ElevationCommand != "" {
					t.Errorf("ElevationCommand = %q, want empty", cfg.ElevationCommand)
				}
				if cfg.HistoryLimit != 5 {
					t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
				}
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
				}
			},
		},
		{
			name: "too fast interval falls back",
			yaml: "refresh_interval: 10ms\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.RefreshInterval != common.RefreshInterval {
					t.Errorf("RefreshInterval = %v, want default", cfg.RefreshInterval)
				}
			},
		},
		{
			name: "blank binaries fall back",
			yaml: "client_binary: \"\"\nnotifier_binary: \"\"\nhistory_limit: -1\ncommand_timeout: -5s\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.ClientBinary != common.DefaultClientBinary || cfg.NotifierBinary != common.DefaultNotifierBinary {
					t.Errorf("binaries = %q, %q", cfg.ClientBinary, cfg.NotifierBinary)
				}
				if cfg.HistoryLimit != common.DefaultHistoryLimit {
					t.Errorf("HistoryLimit = %d", cfg.HistoryLimit)
				}
				if cfg.CommandTimeout != 0 {
					t.Errorf("CommandTimeout = %v", cfg.CommandTimeout)
				}
			},
		},
		{
			name:     "unknown key rejected",
			yaml:     "theme: dark\n",
			wantKind: common.ErrInvalidConfig,
		},
		{
			name:     "bad duration rejected",
			yaml:     "refresh_interval: soon\n",
			wantKind: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.ClientBinary != common.DefaultClientBinary {
		t.Errorf("ClientBinary = %q", cfg.ClientBinary)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("LoadFile should write defaults: %v", err)
	}

	again, err := LoadFile(path)
	if err != nil {
		t.Fatalf("second LoadFile() error = %v", err)
	}
	if *again != *cfg {
		t.Errorf("round trip mismatch: %+v != %+v", again, cfg)
	}
}
