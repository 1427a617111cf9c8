// Package config loads the classroom description from TOML.
// Load priority: custom path > DefaultConfigPath > embedded defaults.
package config

import (
	_ "embed"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/pose"
	"github.com/lixenwraith/vi-classroom/render"
	"github.com/lixenwraith/vi-classroom/scene"
)

// DefaultConfigPath is checked when no -config flag is given
const DefaultConfigPath = "classroom.toml"

//go:embed default.toml
var embedded []byte

type Config struct {
	FPS     int    `toml:"fps"`
	Color   string `toml:"color"`
	Variant string `toml:"variant"`

	Scene    SceneConfig    `toml:"scene"`
	Room     RoomConfig     `toml:"room"`
	Palette  PaletteConfig  `toml:"palette"`
	Light    LightConfig    `toml:"light"`
	Camera   CameraConfig   `toml:"camera"`
	Render   RenderConfig   `toml:"render"`
	Log      LogConfig      `toml:"log"`
	Audio    AudioConfig    `toml:"audio"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

type SceneConfig struct {
	Rows           int     `toml:"rows"`
	Cols           int     `toml:"cols"`
	Step           float64 `toml:"step"`
	XStart         float64 `toml:"x_start"`
	ZStart         float64 `toml:"z_start"`
	StudentOffsetZ float64 `toml:"student_offset_z"`
}

type RoomConfig struct {
	Width  float64 `toml:"width"`
	Depth  float64 `toml:"depth"`
	Height float64 `toml:"height"`
}

// PaletteConfig holds hex colours, "#rrggbb"
type PaletteConfig struct {
	Background  string `toml:"background"`
	Floor       string `toml:"floor"`
	Wall        string `toml:"wall"`
	Ceiling     string `toml:"ceiling"`
	Blackboard  string `toml:"blackboard"`
	Podium      string `toml:"podium"`
	DeskTop     string `toml:"desk_top"`
	DeskBody    string `toml:"desk_body"`
	Chair       string `toml:"chair"`
	Student     string `toml:"student"`
	Skin        string `toml:"skin"`
	Teacher     string `toml:"teacher"`
	TeacherSkin string `toml:"teacher_skin"`
}

type LightConfig struct {
	Ambient   float64    `toml:"ambient"`
	Intensity float64    `toml:"intensity"`
	Position  [3]float64 `toml:"position"`
}

type CameraConfig struct {
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
	Fov      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
}

type RenderConfig struct {
	Shadows        bool    `toml:"shadows"`
	ContactShadows bool    `toml:"contact_shadows"`
	ShadowFactor   float64 `toml:"shadow_factor"`
	ContactFactor  float64 `toml:"contact_factor"`
	ContactRings   int     `toml:"contact_rings"`
}

type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type AudioConfig struct {
	Bell bool `toml:"bell"`
}

type SnapshotConfig struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Time    float64 `toml:"time"`
	Caption bool    `toml:"caption"`
}

// Default returns the embedded reference configuration
func Default() *Config {
	c := &Config{}
	if err := toml.Unmarshal(embedded, c); err != nil {
		panic(errors.Wrap(err, "embedded default config"))
	}
	return c
}

// Parse overlays TOML data onto the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, errors.Wrapf(err, "config parse at %d:%d", row, col)
		}
		return nil, errors.Wrap(err, "config parse")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a TOML file and overlays it onto the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return c, nil
}

// LoadAuto resolves the config source by priority and returns the path used,
// empty when the embedded defaults were taken
func LoadAuto(customPath string) (*Config, string, error) {
	if customPath != "" {
		c, err := Load(customPath)
		return c, customPath, err
	}
	if fileExists(DefaultConfigPath) {
		c, err := Load(DefaultConfigPath)
		return c, DefaultConfigPath, err
	}
	return Default(), "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate rejects configurations the builder or renderer cannot use
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return errors.Errorf("fps must be positive, got %d", c.FPS)
	case c.Scene.Rows <= 0 || c.Scene.Cols <= 0:
		return errors.Errorf("scene grid must be positive, got %dx%d", c.Scene.Rows, c.Scene.Cols)
	case c.Scene.Step <= 0:
		return errors.Errorf("scene step must be positive, got %g", c.Scene.Step)
	case c.Room.Width <= 0 || c.Room.Depth <= 0 || c.Room.Height <= 0:
		return errors.Errorf("room dimensions must be positive, got %gx%gx%g", c.Room.Width, c.Room.Depth, c.Room.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return errors.Errorf("camera fov must be in (0, 180), got %g", c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Errorf("camera clip range invalid: near %g far %g", c.Camera.Near, c.Camera.Far)
	case c.Render.ContactRings < 0:
		return errors.Errorf("contact rings must not be negative, got %d", c.Render.ContactRings)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return errors.Errorf("snapshot size must be positive, got %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}

	if _, err := pose.ParseVariant(c.Variant); err != nil {
		return errors.Wrap(err, "variant")
	}
	if _, err := c.Palette.colors(); err != nil {
		return err
	}
	return nil
}

func (p PaletteConfig) colors() (scene.Palette, error) {
	var out scene.Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", p.Background, &out.Background},
		{"floor", p.Floor, &out.Floor},
		{"wall", p.Wall, &out.Wall},
		{"ceiling", p.Ceiling, &out.Ceiling},
		{"blackboard", p.Blackboard, &out.Blackboard},
		{"podium", p.Podium, &out.Podium},
		{"desk_top", p.DeskTop, &out.DeskTop},
		{"desk_body", p.DeskBody, &out.DeskBody},
		{"chair", p.Chair, &out.Chair},
		{"student", p.Student, &out.Student},
		{"skin", p.Skin, &out.Skin},
		{"teacher", p.Teacher, &out.Teacher},
		{"teacher_skin", p.TeacherSkin, &out.TeacherSkin},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return out, errors.Wrapf(err, "palette.%s %q", f.name, f.hex)
		}
		*f.dst = c
	}
	return out, nil
}

// Layout converts a validated config into builder input
func (c *Config) Layout() scene.Layout {
	variant, _ := pose.ParseVariant(c.Variant)
	palette, _ := c.Palette.colors()
	return scene.Layout{
		Rows:           c.Scene.Rows,
		Cols:           c.Scene.Cols,
		Step:           c.Scene.Step,
		XStart:         c.Scene.XStart,
		ZStart:         c.Scene.ZStart,
		StudentOffsetZ: c.Scene.StudentOffsetZ,
		Room:           scene.Room{Width: c.Room.Width, Depth: c.Room.Depth, Height: c.Room.Height},
		Variant:        variant,
		Palette:        palette,
		Light: scene.Light{
			Ambient:   c.Light.Ambient,
			Intensity: c.Light.Intensity,
			Position:  mgl64.Vec3(c.Light.Position),
		},
	}
}

// CameraDefaults returns the configured start camera
func (c *Config) CameraDefaults() camera.Camera {
	return camera.Camera{
		Position: mgl64.Vec3(c.Camera.Position),
		Target:   mgl64.Vec3(c.Camera.Target),
		FovY:     c.Camera.Fov,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
	}
}

// RenderOptions returns the configured shadow passes
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Shadows:        c.Render.Shadows,
		ContactShadows: c.Render.ContactShadows,
		ShadowFactor:   c.Render.ShadowFactor,
		ContactFactor:  c.Render.ContactFactor,
		ContactRings:   c.Render.ContactRings,
	}
}
