package config

import (
	"testing"
	"time"
)

func TestOptions_ApplyDefaults(t *testing.T) {
	var o Options
	o.ApplyDefaults()

	if o.TargetDir != "." {
		t.Fatalf("expected default target dir, got %q", o.TargetDir)
	}
	if o.ExecTimeout != 10*time.Second {
		t.Fatalf("expected default exec timeout, got %v", o.ExecTimeout)
	}
	if o.Logging.Level != "info" || o.Logging.Format != "console" {
		t.Fatalf("expected logging defaults, got %+v", o.Logging)
	}
}

func TestOptions_Validate(t *testing.T) {
	o := Options{ConfigPath: "scaffold.json"}
	o.ApplyDefaults()
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := Options{}
	missing.ApplyDefaults()
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing config path")
	}

	bad := Options{ConfigPath: "x", ExecTimeout: -time.Second}
	bad.Logging.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}

	badLevel := Options{ConfigPath: "x"}
	badLevel.ApplyDefaults()
	badLevel.Logging.Level = "verbose"
	if err := badLevel.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
