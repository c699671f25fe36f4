package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
)

// Config holds window, camera and render settings.
type Config struct {
	Window WindowSettings `toml:"window"`
	Camera CameraSettings `toml:"camera"`
	Render RenderSettings `toml:"render"`
}

// WindowSettings configure the host window.
type WindowSettings struct {
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	VSync    bool   `toml:"vsync"`
	FPSLimit int    `toml:"fps_limit"` // 0 = unlimited
}

// CameraSettings configure the start pose, movement and projection.
// Angles are in radians.
type CameraSettings struct {
	StartPosition    [3]float32 `toml:"start_position"`
	StartYaw         float32    `toml:"start_yaw"`
	StartPitch       float32    `toml:"start_pitch"`
	MoveSpeed        float32    `toml:"move_speed"`        // units per second
	MouseSensitivity float32    `toml:"mouse_sensitivity"` // radians per pointer unit
	FOVY             float32    `toml:"fov_y"`
	Near             float32    `toml:"near"`
	Far              float32    `toml:"far"`
}

// RenderSettings configure the frame.
type RenderSettings struct {
	ClearColor [4]float32 `toml:"clear_color"`
	SpinSpeed  float32    `toml:"spin_speed"` // radians per second while spinning

	// Optional shader sources on disk. Both empty means the built-in shader.
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: WindowSettings{
			Title:  "minecraf2",
			Width:  900,
			Height: 600,
		},
		Camera: CameraSettings{
			StartPosition:    [3]float32{0, 0, -5},
			StartYaw:         1.5 * math32.Pi,
			MoveSpeed:        3.0,
			MouseSensitivity: 0.01,
			FOVY:             math32.Pi / 3,
			Near:             0.1,
			Far:              100.0,
		},
		Render: RenderSettings{
			ClearColor: [4]float32{0.9, 0.4, 0.4, 1.0},
			SpinSpeed:  3.0,
		},
	}
}

// Load reads a TOML config file on top of the defaults.
// Keys not present in the file keep their default values; unknown keys are an error.
// Relative shader paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: parse %s: %s", path, strict.String())
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Render.VertexShader = resolvePath(dir, cfg.Render.VertexShader)
	cfg.Render.FragmentShader = resolvePath(dir, cfg.Render.FragmentShader)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate reports settings that would produce a broken projection or window.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", c.Window.FPSLimit))
	}
	if c.Camera.FOVY <= 0 || c.Camera.FOVY >= math32.Pi {
		errs = append(errs, fmt.Errorf("fov_y %v must be in (0, π)", c.Camera.FOVY))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v need 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed %v must not be negative", c.Camera.MoveSpeed))
	}
	if (c.Render.VertexShader == "") != (c.Render.FragmentShader == "") {
		errs = append(errs, errors.New("vertex_shader and fragment_shader must be set together"))
	}
	return errors.Join(errs...)
}

// HasShaderFiles reports whether shader sources come from disk.
func (c Config) HasShaderFiles() bool {
	return c.Render.VertexShader != "" && c.Render.FragmentShader != ""
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone.
type Flags struct {
	Width     int
	Height    int
	FPSLimit  int
	VSync     bool
	MoveSpeed float64
}

// Resolve applies non-zero flags on top of the loaded settings.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Window.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Window.Height = flags.Height
	}
	if flags.FPSLimit > 0 {
		c.Window.FPSLimit = flags.FPSLimit
	}
	if flags.VSync {
		c.Window.VSync = true
	}
	if flags.MoveSpeed > 0 {
		c.Camera.MoveSpeed = float32(flags.MoveSpeed)
	}
}

// WatchPaths returns the files whose changes should trigger a reload.
func (c Config) WatchPaths(configPath string) []string {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	if c.HasShaderFiles() {
		paths = append(paths, c.Render.VertexShader, c.Render.FragmentShader)
	}
	return paths
}
