package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/showcase/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestCatalogConfig_SourceRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Catalog.Source = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty source should fail validation")
	}
	if !strings.HasPrefix(err.Error(), "catalog:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRemoteConfig_EndpointCheckedOnlyWhenEnabled(t *testing.T) {
	cfg := RemoteConfig{Enabled: false, Endpoint: "not a url"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled remote should pass: %v", err)
	}
	cfg.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled remote with bad endpoint should fail")
	}
	cfg.Endpoint = "https://api.github.com/users/x/repos"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid endpoint rejected: %v", err)
	}
}

func TestSiteConfig_Theme(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown theme should fail validation")
	}
}

func TestCatalogConfig_HideSet(t *testing.T) {
	cfg := CatalogConfig{}
	if !cfg.HideSet().Hidden("macro-creator") {
		t.Error("default hide set should hide macro-creator")
	}
	cfg.Hidden = []string{"Secret"}
	hs := cfg.HideSet()
	if !hs.Hidden("secret") || hs.Hidden("macro-creator") {
		t.Error("configured hide set should replace the default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("SHOWCASE_TEST_TOKEN", "ghp_test")
	yaml := `
app:
  log_level: debug
  http:
    port: 9090
catalog:
  source: https://example.com/projects.json
  timeout: 3s
remote:
  enabled: true
  endpoint: https://api.github.com/users/someone/repos
  token: ${SHOWCASE_TEST_TOKEN}
site:
  title: My Projects
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Catalog.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Catalog.Timeout)
	}
	if cfg.Remote.Token != "ghp_test" {
		t.Errorf("token = %q, want expanded env", cfg.Remote.Token)
	}
	if cfg.Site.Title != "My Projects" || cfg.Site.Theme != "dark" {
		t.Errorf("site = %+v", cfg.Site)
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if found {
		t.Error("missing file reported as found")
	}
	if cfg.Catalog.Source != "./site/projects.json" {
		t.Errorf("defaults lost: %+v", cfg.Catalog)
	}
}
