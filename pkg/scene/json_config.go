package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
	"github.com/juli-99/raytracing.github.io/pkg/material"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func vecCfg(v core.Vec3) Vec3Cfg {
	return Vec3Cfg{v.X, v.Y, v.Z}
}

// CameraCfg mirrors renderer.CameraConfig. Missing fields keep the weekend
// scene's values.
type CameraCfg struct {
	LookFrom      Vec3Cfg `json:"lookFrom"`
	LookAt        Vec3Cfg `json:"lookAt"`
	Up            Vec3Cfg `json:"vup"`
	VFov          float64 `json:"vfov"`
	Aperture      float64 `json:"aperture"`
	FocusDistance float64 `json:"focusDistance"` // 0 focuses on lookAt
}

// MaterialCfg describes one named material. Color, an SVG color name,
// replaces Albedo when set.
type MaterialCfg struct {
	Type   string  `json:"type"` // lambertian, metal or dielectric
	Albedo Vec3Cfg `json:"albedo"`
	Color  string  `json:"color,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	IOR    float64 `json:"ior,omitempty"`
}

// SphereCfg places a sphere using a material by name
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the top-level JSON scene file
type Config struct {
	Camera    CameraCfg              `json:"camera"`
	Materials map[string]MaterialCfg `json:"materials"`
	Spheres   []SphereCfg            `json:"spheres"`
}

// LoadJSON reads a scene file from disk
func LoadJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := ParseJSON(f, name)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ParseJSON decodes a scene from r. Unknown fields are rejected.
func ParseJSON(r io.Reader, name string) (*Scene, error) {
	defaults := defaultCameraConfig()
	cfg := Config{
		Camera: CameraCfg{
			LookFrom:      vecCfg(defaults.Center),
			LookAt:        vecCfg(defaults.LookAt),
			Up:            vecCfg(defaults.Up),
			VFov:          defaults.VFov,
			Aperture:      defaults.Aperture,
			FocusDistance: defaults.FocusDistance,
		},
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", core.ErrInvalidConfig, err)
	}

	return cfg.Build(name)
}

// Build validates the configuration and creates the scene
func (cfg *Config) Build(name string) (*Scene, error) {
	materials := make(map[string]material.Material, len(cfg.Materials))
	for matName, m := range cfg.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", matName, err)
		}
		materials[matName] = mat
	}

	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("%w: scene has no spheres", core.ErrInvalidConfig)
	}

	shapes := make([]geometry.Shape, 0, len(cfg.Spheres))
	for i, s := range cfg.Spheres {
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere %d: radius must be positive, got %g", core.ErrInvalidConfig, i, s.Radius)
		}
		mat, ok := materials[s.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d: unknown material %q", core.ErrInvalidConfig, i, s.Material)
		}
		shapes = append(shapes, geometry.NewSphere(s.Center.vec(), s.Radius, mat))
	}

	camera := renderer.CameraConfig{
		Center:        cfg.Camera.LookFrom.vec(),
		LookAt:        cfg.Camera.LookAt.vec(),
		Up:            cfg.Camera.Up.vec(),
		VFov:          cfg.Camera.VFov,
		AspectRatio:   16.0 / 9.0,
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	}
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	return &Scene{Name: name, Shapes: shapes, CameraConfig: camera}, nil
}

func (m MaterialCfg) build() (material.Material, error) {
	albedo := m.Albedo.vec()
	if m.Color != "" {
		c, ok := colornames.Map[strings.ToLower(m.Color)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown color name %q", core.ErrInvalidConfig, m.Color)
		}
		albedo = core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
	}

	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		if m.Fuzz < 0 {
			return nil, fmt.Errorf("%w: fuzz must not be negative, got %g", core.ErrInvalidConfig, m.Fuzz)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("%w: ior must be positive, got %g", core.ErrInvalidConfig, m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", core.ErrInvalidConfig, m.Type)
	}
}
