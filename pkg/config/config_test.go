package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "showcase")
	path := writeFile(t, "name: ${SAMPLE_NAME}\nport: 8080\n")
	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "showcase" || s.Port != 8080 {
		t.Errorf("s = %+v", s)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	path := writeFile(t, "name: x\nport: 0\n")
	var s sample
	if err := Load(path, &s); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOptional(t *testing.T) {
	s := sample{Port: 1}
	found, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &s)
	if err != nil || found {
		t.Fatalf("LoadOptional(missing) = %v, %v", found, err)
	}

	bad := sample{}
	if _, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &bad); err == nil {
		t.Fatal("invalid defaults should still fail validation")
	}

	path := writeFile(t, "port: 7\n")
	found, err = LoadOptional(path, &s)
	if err != nil || !found || s.Port != 7 {
		t.Fatalf("LoadOptional(present) = %v, %v, %+v", found, err, s)
	}
}
