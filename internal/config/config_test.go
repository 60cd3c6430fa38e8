package config_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"todo/internal/config"
	"todo/internal/store"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvDSN, "")

	cfg, err := config.New("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != filepath.Join("/xdg", "todo") {
		t.Errorf("expected dir /xdg/todo, got %q", cfg.Dir)
	}
	if cfg.Store != store.KindFile {
		t.Errorf("expected store %q, got %q", store.KindFile, cfg.Store)
	}
	if cfg.DSN != "" {
		t.Errorf("expected empty dsn, got %q", cfg.DSN)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvStore, "mysql")
	t.Setenv(config.EnvDSN, "user:pw@/todo")

	cfg, err := config.New("/data", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/data" {
		t.Errorf("expected dir /data, got %q", cfg.Dir)
	}
	if cfg.Store != "mysql" {
		t.Errorf("expected store mysql, got %q", cfg.Store)
	}
	if cfg.DSN != "user:pw@/todo" {
		t.Errorf("expected dsn from env, got %q", cfg.DSN)
	}
}

func TestNew_FlagsBeatEnv(t *testing.T) {
	t.Setenv(config.EnvStore, "mysql")
	t.Setenv(config.EnvDSN, "env-dsn")

	cfg, err := config.New("/data", "sqlite", "flag-dsn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != "sqlite" || cfg.DSN != "flag-dsn" {
		t.Errorf("expected flag values, got store=%q dsn=%q", cfg.Store, cfg.DSN)
	}
}

func TestDefaultDataDir_Home(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/someone")

	got := config.DefaultDataDir()
	want := filepath.Join("/home/someone", ".local", "share", "todo")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	quiet := &config.Config{}
	quiet.Logger(&buf).Debug("hidden")
	quiet.Logger(&buf).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output without --debug, got %q", buf.String())
	}
	quiet.Logger(&buf).Warn("warned")
	if !bytes.Contains(buf.Bytes(), []byte("msg=warned")) {
		t.Errorf("expected warning without --debug, got %q", buf.String())
	}
	buf.Reset()

	debug := &config.Config{Debug: true}
	debug.Logger(&buf).Debug("shown", "key", "value")
	if !bytes.Contains(buf.Bytes(), []byte("msg=shown key=value")) {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}
