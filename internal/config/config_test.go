package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Faultbox/simvis/internal/engine/camera"
	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/internal/engine/visual"
	"github.com/Faultbox/simvis/pkg/sim"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scene.MaxGeom != 1000 {
		t.Errorf("expected max geom 1000, got %d", cfg.Scene.MaxGeom)
	}
	if cfg.Visual.Label != "none" {
		t.Errorf("expected label 'none', got %s", cfg.Visual.Label)
	}
	if cfg.Camera.Mode != "free" {
		t.Errorf("expected camera mode 'free', got %s", cfg.Camera.Mode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	mask, err := cfg.Scene.CategoryMask()
	if err != nil {
		t.Fatalf("default categories: %v", err)
	}
	if mask != scene.CatAll {
		t.Errorf("expected all categories, got %v", mask)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
scene:
  max_geom: 250
  categories: [dynamic, decor]

visual:
  enable: [contactpoint, contactforce]
  disable: [skin]
  label: geom
  frame: body
  geom_groups: [0, 3]

camera:
  mode: tracking
  track_body: arm
  distance: 4

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scene.MaxGeom != 250 {
		t.Errorf("expected max geom 250, got %d", cfg.Scene.MaxGeom)
	}
	mask, err := cfg.Scene.CategoryMask()
	if err != nil {
		t.Fatalf("category mask: %v", err)
	}
	if mask != scene.CatDynamic|scene.CatDecor {
		t.Errorf("expected dynamic|decor, got %v", mask)
	}

	opt, err := cfg.Visual.Option()
	if err != nil {
		t.Fatalf("visual option: %v", err)
	}
	if !opt.Flags[visual.FlagContactPoint] || !opt.Flags[visual.FlagContactForce] {
		t.Error("expected contact flags to be enabled")
	}
	if opt.Flags[visual.FlagSkin] {
		t.Error("expected skin flag to be disabled")
	}
	if !opt.Flags[visual.FlagStatic] {
		t.Error("expected default flags to be kept")
	}
	if opt.Label != visual.LabelGeom || opt.Frame != visual.FrameBody {
		t.Errorf("expected label geom and frame body, got %v and %v", opt.Label, opt.Frame)
	}
	if !opt.GeomGroup.Enabled(3) || opt.GeomGroup.Enabled(1) {
		t.Errorf("expected geom groups 0 and 3, got %v", opt.GeomGroup)
	}
	if !opt.SiteGroup.Enabled(1) {
		t.Error("expected site groups to keep defaults")
	}

	if cfg.Camera.TrackBody != "arm" || cfg.Camera.Distance != 4 {
		t.Errorf("unexpected camera config %+v", cfg.Camera)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
scene:
  max_geom: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Config)
	}{
		{"category", func(c *Config) { c.Scene.Categories = []string{"ghost"} }},
		{"flag", func(c *Config) { c.Visual.Enable = []string{"wireframe"} }},
		{"label", func(c *Config) { c.Visual.Label = "everything" }},
		{"frame", func(c *Config) { c.Visual.Frame = "tendon" }},
		{"group", func(c *Config) { c.Visual.TendonGroups = []int{6} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.setup(cfg)
			_, maskErr := cfg.Scene.CategoryMask()
			_, optErr := cfg.Visual.Option()
			err := errors.Join(maskErr, optErr)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func testModel() *sim.Model {
	return &sim.Model{
		Bodies:  []sim.Body{{Name: "world", MocapID: -1}, {Name: "arm", RootID: 1, WeldID: 1, MocapID: -1}},
		Cameras: []sim.Camera{{Name: "overhead", FovY: 45}},
		Visual:  sim.DefaultVisual(),
		Stat:    sim.Statistic{Extent: 2},
	}
}

func TestCamera(t *testing.T) {
	m := testModel()

	cfg := Default()
	cam, err := cfg.Camera.Camera(m)
	if err != nil {
		t.Fatalf("free camera: %v", err)
	}
	if cam.Type != camera.Free || cam.Distance != 3 {
		t.Errorf("expected free camera at distance 3, got %v at %v", cam.Type, cam.Distance)
	}

	cfg.Camera.Mode = "tracking"
	cfg.Camera.TrackBody = "arm"
	cam, err = cfg.Camera.Camera(m)
	if err != nil {
		t.Fatalf("tracking camera: %v", err)
	}
	if cam.TrackBodyID != 1 {
		t.Errorf("expected track body 1, got %d", cam.TrackBodyID)
	}

	cfg.Camera.Mode = "fixed"
	cfg.Camera.FixedCamera = "overhead"
	cam, err = cfg.Camera.Camera(m)
	if err != nil {
		t.Fatalf("fixed camera: %v", err)
	}
	if cam.FixedCamID != 0 {
		t.Errorf("expected fixed camera 0, got %d", cam.FixedCamID)
	}

	cfg.Camera.FixedCamera = "missing"
	if _, err := cfg.Camera.Camera(m); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for unknown camera, got %v", err)
	}

	cfg.Camera.Mode = "orbit"
	if _, err := cfg.Camera.Camera(m); !errors.Is(err, camera.ErrCameraType) {
		t.Errorf("expected ErrCameraType, got %v", err)
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
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "simvis.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  max_geom: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "simvis.yaml" {
		t.Errorf("expected simvis.yaml in current directory, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "maxgeom flag",
			setup: func() { *flagMaxGeom = 64 },
			verify: func(cfg *Config) {
				if cfg.Scene.MaxGeom != 64 {
					t.Errorf("expected max geom 64, got %d", cfg.Scene.MaxGeom)
				}
			},
			teardown: func() { *flagMaxGeom = 0 },
		},
		{
			name: "label and frame flags",
			setup: func() {
				*flagLabel = "contactforce"
				*flagFrame = "world"
			},
			verify: func(cfg *Config) {
				if cfg.Visual.Label != "contactforce" {
					t.Errorf("expected label contactforce, got %s", cfg.Visual.Label)
				}
				if cfg.Visual.Frame != "world" {
					t.Errorf("expected frame world, got %s", cfg.Visual.Frame)
				}
			},
			teardown: func() {
				*flagLabel = ""
				*flagFrame = ""
			},
		},
		{
			name:  "camera flag",
			setup: func() { *flagCamera = "fixed" },
			verify: func(cfg *Config) {
				if cfg.Camera.Mode != "fixed" {
					t.Errorf("expected camera fixed, got %s", cfg.Camera.Mode)
				}
			},
			teardown: func() { *flagCamera = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
scene:
  max_geom: 300
visual:
  label: body
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxGeom = 500
	defer func() {
		*flagConfig = ""
		*flagMaxGeom = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scene.MaxGeom != 500 {
		t.Errorf("expected max geom 500 from flag, got %d", cfg.Scene.MaxGeom)
	}
	if cfg.Visual.Label != "body" {
		t.Errorf("expected label body from file, got %s", cfg.Visual.Label)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Scene.MaxGeom = 42

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scene.MaxGeom != 42 {
		t.Errorf("expected max geom 42 after reload, got %d", loaded.Scene.MaxGeom)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scene:\n  maxgeom: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), path)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for misspelled key, got %v", err)
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Scene.MaxGeom != 1000 {
		t.Errorf("expected defaults to survive, got max geom %d", cfg.Scene.MaxGeom)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("scene:\n  max_geom: 77\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Scene.MaxGeom != 77 {
		t.Errorf("expected max geom 77 from $%s, got %d", EnvConfig, cfg.Scene.MaxGeom)
	}
}

func TestLoadValidates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative capacity", "scene:\n  max_geom: -1\n"},
		{"unknown level", "logging:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			t.Setenv(EnvConfig, path)

			if _, err := Load(); !errors.Is(err, ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
}
