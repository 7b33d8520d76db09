// Package config handles application configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shaders  ShadersConfig  `yaml:"shaders"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	MSAASamples  int  `yaml:"msaa_samples"`
	CursorLocked bool `yaml:"cursor_locked"`
}

// ShadersConfig holds shader source paths. Empty Vertex and Fragment
// select the embedded Blinn-Phong sources.
type ShadersConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Geometry string `yaml:"geometry"`
	// Normals draws a normal-vector overlay using the embedded geometry shader.
	Normals bool `yaml:"normals"`
}

// Embedded reports whether the embedded sources should be used.
func (s ShadersConfig) Embedded() bool {
	return s.Vertex == "" && s.Fragment == ""
}

// CameraConfig holds the initial camera placement and controls.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Focus       [3]float32 `yaml:"focus"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1200,
			Height:       900,
			Fullscreen:   false,
			VSync:        true,
			MSAASamples:  4,
			CursorLocked: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Focus:       [3]float32{0, 0, 0},
			Speed:       2.5,
			Sensitivity: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
