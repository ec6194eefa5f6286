package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.GroupSize != 10 || cfg.TimeoutMS != 4000 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "listen_addr: \":9090\"\ngroup_size: 25\nglobal_seed: world-1\ntick_interval_s: 60\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen_addr = %q", cfg.ListenAddr)
	}
	if cfg.GroupSize != 25 {
		t.Fatalf("group_size = %d", cfg.GroupSize)
	}
	if cfg.GlobalSeed != "world-1" {
		t.Fatalf("global_seed = %q", cfg.GlobalSeed)
	}
	if cfg.TickInterval() != 60*time.Second {
		t.Fatalf("tick interval = %v", cfg.TickInterval())
	}
	if cfg.TimeoutMS != 4000 {
		t.Fatalf("unset keys must keep defaults, timeout_ms = %d", cfg.TimeoutMS)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("group_size: 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VOLITION_GROUP_SIZE", "3")
	t.Setenv("VOLITION_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GroupSize != 3 {
		t.Fatalf("env override lost, group_size = %d", cfg.GroupSize)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
}

func TestInvalidValuesRejected(t *testing.T) {
	t.Setenv("VOLITION_GROUP_SIZE", "-1")
	if _, err := Load(""); err == nil {
		t.Fatal("negative group_size must fail validation")
	}
}

func TestMalformedYAMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [oops\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must fail")
	}
}

func TestTimeoutHelper(t *testing.T) {
	cfg := Default()
	if cfg.Timeout() != 4*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout())
	}
}
