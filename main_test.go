package main

import (
	"errors"
	"testing"
	"time"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
)

func TestApplyInterval(t *testing.T) {
	tests := []struct {
		name    string
		flag    time.Duration
		want    time.Duration
		wantErr error
	}{
		{"unset keeps config", 0, common.RefreshInterval, nil},
		{"override", 10 * time.Second, 10 * time.Second, nil},
		{"too fast", 100 * time.Millisecond, common.RefreshInterval, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := applyInterval(cfg, tt.flag)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("applyInterval() error = %v, want %v", err, tt.wantErr)
			}
			if cfg.RefreshInterval != tt.want {
				t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, tt.want)
			}
		})
	}
}
