// Package config handles scenetool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Visual  VisualConfig  `yaml:"visual"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig holds scene buffer settings.
type SceneConfig struct {
	MaxGeom    int      `yaml:"max_geom"`
	Categories []string `yaml:"categories"` // static, dynamic, decor or all
}

// VisualConfig holds the initial visualization options.
type VisualConfig struct {
	Enable  []string `yaml:"enable"`  // flags turned on after the defaults
	Disable []string `yaml:"disable"` // flags turned off after Enable
	Label   string   `yaml:"label"`
	Frame   string   `yaml:"frame"`

	// Visible group numbers per entity kind
	GeomGroups     []int `yaml:"geom_groups"`
	SiteGroups     []int `yaml:"site_groups"`
	JointGroups    []int `yaml:"joint_groups"`
	TendonGroups   []int `yaml:"tendon_groups"`
	ActuatorGroups []int `yaml:"actuator_groups"`
}

// CameraConfig holds the initial abstract camera.
type CameraConfig struct {
	Mode        string  `yaml:"mode"`
	TrackBody   string  `yaml:"track_body"`   // body name for tracking mode
	FixedCamera string  `yaml:"fixed_camera"` // model camera name for fixed mode
	Azimuth     float64 `yaml:"azimuth"`
	Elevation   float64 `yaml:"elevation"`
	Distance    float64 `yaml:"distance"` // 0 fits the model extent
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	visible := func() []int { return []int{0, 1, 2} }
	return &Config{
		Scene: SceneConfig{
			MaxGeom:    1000,
			Categories: []string{"all"},
		},
		Visual: VisualConfig{
			Label:          "none",
			Frame:          "none",
			GeomGroups:     visible(),
			SiteGroups:     visible(),
			JointGroups:    visible(),
			TendonGroups:   visible(),
			ActuatorGroups: visible(),
		},
		Camera: CameraConfig{
			Mode:      "free",
			Azimuth:   90,
			Elevation: -45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
