package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error = %v", err)
	}
	if !cfg.StartMenu || !cfg.Confirmations {
		t.Fatalf("StartMenu/Confirmations = %v/%v, want true/true", cfg.StartMenu, cfg.Confirmations)
	}
	if cfg.Layout != defaultLayout() {
		t.Fatalf("Layout = %+v, want %+v", cfg.Layout, defaultLayout())
	}
	if cfg.DeliveryDelay != 0 {
		t.Fatalf("DeliveryDelay = %v, want 0", cfg.DeliveryDelay)
	}
}

func TestLoadConfig_File(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	data := `
start_menu = false
export_dir = "~/exports"

[layout]
curve_clamp = 20

[delivery]
delay = "1500ms"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.StartMenu {
		t.Fatalf("StartMenu = true, want false")
	}
	if !cfg.Confirmations {
		t.Fatalf("Confirmations = false, want default true")
	}
	if cfg.Layout.CurveClamp != 20 || cfg.Layout.ActionAnchorOffset != defaultActionAnchorOffset {
		t.Fatalf("Layout = %+v, want clamp 20 and default anchor offset", cfg.Layout)
	}
	if cfg.DeliveryDelay != 1500*time.Millisecond {
		t.Fatalf("DeliveryDelay = %v, want 1.5s", cfg.DeliveryDelay)
	}
	if want := filepath.Join(home, "exports"); cfg.ExportDir != want {
		t.Fatalf("ExportDir = %q, want %q", cfg.ExportDir, want)
	}
}

func TestLoadConfig_BadDelay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[delivery]\ndelay = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("loadConfig() error = nil, want parse error")
	}
}

func TestExportPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := Config{ExportDir: dir}

	got, err := cfg.ExportPath("mailflow.png")
	if err != nil {
		t.Fatalf("ExportPath() error = %v", err)
	}
	if want := filepath.Join(dir, "mailflow.png"); got != want {
		t.Fatalf("ExportPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("export dir not created: %v", err)
	}

	if got, _ := (Config{}).ExportPath("x.txt"); got != "x.txt" {
		t.Fatalf("ExportPath() without dir = %q, want x.txt", got)
	}
}
