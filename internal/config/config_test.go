package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Animation defaults
	if !cfg.Export.AnimLoop {
		t.Error("expected anim_loop to be true by default")
	}
	if !cfg.Export.AnimBake {
		t.Error("expected anim_bake to be true by default")
	}

	// Geometry defaults
	if cfg.Export.Export3D {
		t.Error("expected export_3d to be false by default")
	}
	if cfg.Export.SwitchAxis || cfg.Export.CollapseTransforms {
		t.Error("expected switch_axis and collapse_transforms to be false by default")
	}
	if cfg.Export.FPS != nil {
		t.Errorf("expected nil fps override, got %v", *cfg.Export.FPS)
	}
	if cfg.Export.Scale != 10 {
		t.Errorf("expected scale 10, got %f", cfg.Export.Scale)
	}
	if cfg.Export.Width != 640 || cfg.Export.Height != 480 {
		t.Errorf("expected root 640x480, got %dx%d", cfg.Export.Width, cfg.Export.Height)
	}
	if cfg.Export.Perspective != 70 {
		t.Errorf("expected perspective 70, got %f", cfg.Export.Perspective)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	// Watch defaults
	if cfg.Watch.Enabled {
		t.Error("expected watch to be disabled by default")
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Watch.Debounce)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  anim_loop: false
  anim_bake: false
  export_3d: true
  switch_axis: true
  collapse_transforms: true
  fps: 30
  scale: 25
  width: 800
  height: 600
  perspective: 120
  output: out/scene.html

logging:
  level: warn
  log_file: export.log

watch:
  enabled: true
  debounce: 1s
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	e := cfg.Export
	if e.AnimLoop || e.AnimBake {
		t.Error("expected anim_loop and anim_bake to be false")
	}
	if !e.Export3D || !e.SwitchAxis || !e.CollapseTransforms {
		t.Error("expected export_3d, switch_axis and collapse_transforms to be true")
	}
	if e.FPS == nil || *e.FPS != 30 {
		t.Errorf("expected fps 30, got %v", e.FPS)
	}
	if e.Scale != 25 {
		t.Errorf("expected scale 25, got %f", e.Scale)
	}
	if e.Width != 800 || e.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", e.Width, e.Height)
	}
	if e.Perspective != 120 {
		t.Errorf("expected perspective 120, got %f", e.Perspective)
	}
	if e.Output != "out/scene.html" {
		t.Errorf("expected output out/scene.html, got %s", e.Output)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Debounce != time.Second {
		t.Errorf("expected watch enabled with 1s debounce, got %+v", cfg.Watch)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("export:\n  export_3d: true\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Export.Export3D {
		t.Error("expected export_3d from file")
	}
	// Untouched keys keep their defaults
	if !cfg.Export.AnimLoop || cfg.Export.Scale != 10 {
		t.Error("expected defaults to survive a partial file")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
export:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scale", func(c *Config) { c.Export.Scale = 0 }},
		{"negative width", func(c *Config) { c.Export.Width = -1 }},
		{"zero height", func(c *Config) { c.Export.Height = 0 }},
		{"zero fps", func(c *Config) { c.Export.FPS = &zero }},
		{"negative perspective", func(c *Config) { c.Export.Perspective = -5 }},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "scene2css.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  scale: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find scene2css.yaml in current directory")
	}
}

func boolPtr(b bool) *bool { return &b }

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "output and log file flags",
			setup: func() { *flagOutput = "page.html"; *flagLogFile = "run.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Output != "page.html" {
					t.Errorf("expected output page.html, got %s", cfg.Export.Output)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagOutput = ""; *flagLogFile = "" },
		},
		{
			name:  "fps and scale flags",
			setup: func() { *flagFPS = 12; *flagScale = 4 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.FPS == nil || *cfg.Export.FPS != 12 {
					t.Errorf("expected fps 12, got %v", cfg.Export.FPS)
				}
				if cfg.Export.Scale != 4 {
					t.Errorf("expected scale 4, got %f", cfg.Export.Scale)
				}
			},
			teardown: func() { *flagFPS = 0; *flagScale = 0 },
		},
		{
			name:  "toggles can switch defaults off",
			setup: func() { flagLoop.v = boolPtr(false); flagBake.v = boolPtr(false) },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.AnimLoop || cfg.Export.AnimBake {
					t.Error("expected loop and bake to be disabled")
				}
			},
			teardown: func() { flagLoop.v = nil; flagBake.v = nil },
		},
		{
			name: "toggles can switch options on",
			setup: func() {
				flag3D.v = boolPtr(true)
				flagSwitchAxis.v = boolPtr(true)
				flagCollapse.v = boolPtr(true)
				flagWatch.v = boolPtr(true)
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.Export3D || !cfg.Export.SwitchAxis || !cfg.Export.CollapseTransforms {
					t.Error("expected 3d, switch-axis and collapse to be enabled")
				}
				if !cfg.Watch.Enabled {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { flag3D.v = nil; flagSwitchAxis.v = nil; flagCollapse.v = nil; flagWatch.v = nil },
		},
		{
			name:  "unset toggles leave config alone",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.AnimLoop || cfg.Export.Export3D {
					t.Error("expected defaults without flags")
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestOptBoolSet(t *testing.T) {
	var o optBool
	if o.String() != "" {
		t.Errorf("expected empty string for unset flag, got %q", o.String())
	}
	if err := o.Set("false"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if o.v == nil || *o.v {
		t.Error("expected explicit false")
	}
	if err := o.Set("maybe"); err == nil {
		t.Error("expected error for non-boolean value")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
export:
  scale: 20
  width: 1024
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagScale = 30
	defer func() {
		*flagConfig = ""
		*flagScale = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale from flag, not file
	if cfg.Export.Scale != 30 {
		t.Errorf("expected scale 30 from flag, got %f", cfg.Export.Scale)
	}
	// Width from file since no flag override
	if cfg.Export.Width != 1024 {
		t.Errorf("expected width 1024 from file, got %d", cfg.Export.Width)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  scale: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	fps := 24.0
	cfg := Default()
	cfg.Export.Export3D = true
	cfg.Export.FPS = &fps

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Export.Export3D {
		t.Error("expected export_3d to survive a save")
	}
	if loaded.Export.FPS == nil || *loaded.Export.FPS != 24 {
		t.Errorf("expected fps 24, got %v", loaded.Export.FPS)
	}
}
