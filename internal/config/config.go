// Package config handles orrery configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is set by Load and never serialized.
	Source Source `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Wireframe  bool       `yaml:"wireframe"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the initial camera placement and projection.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"` // vertical, degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// SceneConfig describes the body hierarchy.
type SceneConfig struct {
	// Resolution is the sphere subdivision count used for every body.
	Resolution int          `yaml:"resolution"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one body. Bodies may be listed in any order;
// Parent names another body, empty for the root.
type BodyConfig struct {
	Name             string  `yaml:"name"`
	Parent           string  `yaml:"parent,omitempty"`
	Radius           float32 `yaml:"radius"`
	OrbitRadius      float64 `yaml:"orbit_radius"`
	RevolutionPeriod float64 `yaml:"revolution_period"` // seconds, 0 = no orbit
	RotationPeriod   float64 `yaml:"rotation_period"`   // seconds, 0 = no spin
	Color            string  `yaml:"color,omitempty"`   // hex, e.g. "#ffcc33"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the sun, earth and moon system.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Simple Solar System",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [3]float32{0.7, 0.7, 0.7},
		},
		Camera: CameraConfig{
			Position: [3]float32{5, 2, 20},
			FOV:      45,
			Near:     0.1,
			Far:      80.1,
		},
		Scene: SceneConfig{
			Resolution: 32,
			Bodies: []BodyConfig{
				{Name: "sun", Radius: 1, Color: "#ffd23f"},
				{
					Name:             "earth",
					Parent:           "sun",
					Radius:           0.5,
					OrbitRadius:      10,
					RevolutionPeriod: 10,
					RotationPeriod:   10,
					Color:            "#2f6fd6",
				},
				{
					Name:             "moon",
					Parent:           "earth",
					Radius:           0.25,
					OrbitRadius:      2,
					RevolutionPeriod: 4,
					RotationPeriod:   2,
					Color:            "#b8b8b8",
				},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
