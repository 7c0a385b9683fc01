package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("RAPPORT_TEST_NAME", "notes")
	p := writeFile(t, "name: ${RAPPORT_TEST_NAME}\n")

	cfg := &testConfig{Port: 8080}
	if err := Load(p, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "notes" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port lost: %d", cfg.Port)
	}
}

func TestLoad_Validation(t *testing.T) {
	p := writeFile(t, "port: 0\n")
	err := Load(p, &testConfig{})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeFile(t, "port: [\n")
	if err := Load(p, &testConfig{Port: 1}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := &testConfig{Port: 9000}
	loaded, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if loaded || cfg.Port != 9000 {
		t.Errorf("loaded=%v port=%d", loaded, cfg.Port)
	}

	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), &testConfig{}); err == nil {
		t.Error("defaults must still be validated")
	}
}

func TestLoadOrDefault_ExistingFile(t *testing.T) {
	p := writeFile(t, "port: 7000\n")
	cfg := &testConfig{Port: 1}
	loaded, err := LoadOrDefault(p, cfg)
	if err != nil || !loaded || cfg.Port != 7000 {
		t.Errorf("loaded=%v port=%d err=%v", loaded, cfg.Port, err)
	}
}
