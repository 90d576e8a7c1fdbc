package config

import "testing"

func TestLoadDefaultValidates(t *testing.T) {
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestChildrenTimeoutDerivedFromDAOPeriod(t *testing.T) {
	cfg := TimeoutsConfig{DAOPeriodSecs: 30}
	if got, want := cfg.ChildrenTimeout(), cfg.DAOPeriod()*2; got != want {
		t.Fatalf("ChildrenTimeout() = %v, want %v", got, want)
	}
}

func TestValidateRejectsShortChildrenTimeout(t *testing.T) {
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	cfg.Timeouts.ChildrenSeconds = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for childrenSeconds < 2*daoPeriodSeconds")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	t.Setenv("TRICKLE_IMIN_MS", "2000")
	cfg.ApplyEnvOverrides()
	if cfg.Trickle.IminMillis != 2000 {
		t.Fatalf("ApplyEnvOverrides did not apply TRICKLE_IMIN_MS, got %d", cfg.Trickle.IminMillis)
	}
}
