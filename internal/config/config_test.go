package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	r := Default()
	if r.HandLimit != 7 {
		t.Errorf("hand limit = %d, want 7", r.HandLimit)
	}
	if r.MaxSettlements != 5 || r.MaxCities != 4 || r.MaxRoads != 15 {
		t.Errorf("building limits = %d/%d/%d, want 5/4/15", r.MaxSettlements, r.MaxCities, r.MaxRoads)
	}
	if r.BankTradeRatio != 4 {
		t.Errorf("bank trade ratio = %d, want 4", r.BankTradeRatio)
	}
	if r.MinPlayers != 2 || r.MaxPlayers != 4 {
		t.Errorf("player bounds = %d-%d, want 2-4", r.MinPlayers, r.MaxPlayers)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("default rules invalid: %v", err)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r != Default() {
		t.Fatalf("empty path rules = %+v, want defaults", r)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settlers.yaml")
	body := "hand_limit: 9\nbank_trade_ratio: 3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.HandLimit != 9 || r.BankTradeRatio != 3 {
		t.Errorf("overrides not applied: %+v", r)
	}
	// Unset keys fall back to defaults.
	if r.MaxSettlements != 5 || r.MinPlayers != 2 {
		t.Errorf("defaults not filled: %+v", r)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settlers.yaml")
	if err := os.WriteFile(path, []byte("hand_limit: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed file loaded without error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Rules)
		wantErr bool
	}{
		{name: "Defaults", mutate: func(*Rules) {}},
		{name: "NegativeHandLimit", mutate: func(r *Rules) { r.HandLimit = -1 }, wantErr: true},
		{name: "ZeroSettlements", mutate: func(r *Rules) { r.MaxSettlements = 0 }, wantErr: true},
		{name: "ZeroRatio", mutate: func(r *Rules) { r.BankTradeRatio = 0 }, wantErr: true},
		{name: "SoloMin", mutate: func(r *Rules) { r.MinPlayers = 1 }, wantErr: true},
		{name: "MaxBelowMin", mutate: func(r *Rules) { r.MinPlayers = 3; r.MaxPlayers = 2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("validate accepted %+v", r)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("validate rejected %+v: %v", r, err)
			}
		})
	}
}
