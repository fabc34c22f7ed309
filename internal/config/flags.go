package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMaxGeom = flag.Int("maxgeom", 0, "Scene geom capacity")
	flagLabel   = flag.String("label", "", "Label target (none, body, geom, ...)")
	flagFrame   = flag.String("frame", "", "Frame target (none, body, world, ...)")
	flagCamera  = flag.String("camera", "", "Camera mode (free, tracking, fixed)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMaxGeom > 0 {
		cfg.Scene.MaxGeom = *flagMaxGeom
	}
	if *flagLabel != "" {
		cfg.Visual.Label = *flagLabel
	}
	if *flagFrame != "" {
		cfg.Visual.Frame = *flagFrame
	}
	if *flagCamera != "" {
		cfg.Camera.Mode = *flagCamera
	}
}
