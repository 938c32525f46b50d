package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/output"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
	"github.com/juli-99/raytracing.github.io/pkg/scene"
)

const (
	exitRenderError = 1
	exitUsageError  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// vecFlag parses "x,y,z" and remembers whether it was given
type vecFlag struct {
	value core.Vec3
	set   bool
}

func (v *vecFlag) String() string {
	if v == nil || !v.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", v.value.X, v.value.Y, v.value.Z)
}

func (v *vecFlag) Set(s string) error {
	vec, err := parseVec(s)
	if err != nil {
		return err
	}
	v.value, v.set = vec, true
	return nil
}

// parseVec parses three comma-separated numbers
func parseVec(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad component %q in %q", p, s)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// parseAspect accepts a ratio like "16/9" or a plain number
func parseAspect(s string) (float64, error) {
	num, den, isRatio := strings.Cut(s, "/")
	w, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad aspect ratio %q", core.ErrInvalidConfig, s)
	}
	if !isRatio {
		return w, nil
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || h == 0 {
		return 0, fmt.Errorf("%w: bad aspect ratio %q", core.ErrInvalidConfig, s)
	}
	return w / h, nil
}

// createScene returns a built-in scene by name, or loads a JSON scene file
func createScene(name string, seed int64) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no scene given", core.ErrInvalidConfig)
	}
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return scene.LoadJSON(name)
	}
	return scene.NewBuiltin(name, seed)
}

// options holds everything parsed from the command line
type options struct {
	config renderer.Config
	scene  string
	out    string
	format string
	order  string
	accel  string
	quiet  bool

	lookFrom vecFlag
	lookAt   vecFlag
	up       vecFlag
	vfov     float64
	aperture float64
	focus    float64

	vfovSet     bool
	apertureSet bool
	focusSet    bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{config: renderer.DefaultConfig()}
	aspect := fs.String("aspect", "16/9", "Aspect ratio, width/height, e.g. 16/9 or 1.5")
	fs.IntVar(&opts.config.Width, "width", 400, "Image width in pixels")
	fs.IntVar(&opts.config.SamplesPerPixel, "spp", 10, "Samples per pixel")
	fs.IntVar(&opts.config.MaxDepth, "depth", 50, "Maximum ray bounce depth")
	workers := fs.Int("workers", 0, "Number of worker goroutines (0 = logical CPU count)")
	fs.Int64Var(&opts.config.Seed, "seed", 42, "Base random seed; worker i uses seed+i")
	fs.StringVar(&opts.scene, "scene", "weekend", "Scene: "+strings.Join(scene.Names(), ", ")+", or a .json scene file")
	fs.StringVar(&opts.out, "out", "", "Output file (stdout when empty or -)")
	fs.StringVar(&opts.format, "format", "", "Output format: ppm, png, bmp or tiff (default from -out extension, else ppm)")
	fs.StringVar(&opts.order, "order", string(output.OrderTopDown), "PPM pixel order: topdown or legacy")
	fs.StringVar(&opts.accel, "accel", string(scene.AccelNone), "Intersection accelerator: none or rtree")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress messages")
	fs.Var(&opts.lookFrom, "lookfrom", "Camera position x,y,z (overrides the scene)")
	fs.Var(&opts.lookAt, "lookat", "Camera target x,y,z (overrides the scene)")
	fs.Var(&opts.up, "vup", "Camera up vector x,y,z (overrides the scene)")
	fs.Float64Var(&opts.vfov, "vfov", 0, "Vertical field of view in degrees (overrides the scene)")
	fs.Float64Var(&opts.aperture, "aperture", 0, "Lens aperture (overrides the scene)")
	fs.Float64Var(&opts.focus, "focus", 0, "Focus distance, 0 = distance to lookat (overrides the scene)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", core.ErrInvalidConfig, fs.Args())
	}

	// Only flags given explicitly replace scene camera values
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vfov":
			opts.vfovSet = true
		case "aperture":
			opts.apertureSet = true
		case "focus":
			opts.focusSet = true
		}
	})

	ratio, err := parseAspect(*aspect)
	if err != nil {
		return nil, err
	}
	opts.config.AspectRatio = ratio

	opts.config.NumWorkers = *workers
	if *workers == 0 {
		opts.config.NumWorkers = renderer.DefaultWorkerCount()
	}

	if err := opts.config.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// cameraConfig applies the command-line overrides to the scene camera
func (o *options) cameraConfig(base renderer.CameraConfig) renderer.CameraConfig {
	cfg := base
	cfg.AspectRatio = o.config.AspectRatio
	if o.lookFrom.set {
		cfg.Center = o.lookFrom.value
	}
	if o.lookAt.set {
		cfg.LookAt = o.lookAt.value
	}
	if o.up.set {
		cfg.Up = o.up.value
	}
	if o.vfovSet {
		cfg.VFov = o.vfov
	}
	if o.apertureSet {
		cfg.Aperture = o.aperture
	}
	if o.focusSet {
		cfg.FocusDistance = o.focus
	}
	return cfg
}

func (o *options) encoder() (output.Encoder, error) {
	format := output.FormatFromPath(o.out)
	if o.format != "" {
		f, err := output.ParseFormat(o.format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	order, err := output.ParseOrder(o.order)
	if err != nil {
		return nil, err
	}
	return output.NewEncoder(format, order)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	var logger core.Logger = renderer.NewWriterLogger(stderr)
	if opts.quiet {
		logger = renderer.NopLogger{}
	}

	rt, enc, err := setup(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	fb, _, err := rt.Render(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRenderError
	}

	if err := writeImage(opts.out, stdout, enc, fb, opts.config.SamplesPerPixel); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRenderError
	}
	if opts.out != "" && opts.out != "-" {
		logger.Printf("Render saved as %s\n", opts.out)
	}
	logger.Printf("Done.\n")
	return 0
}

// setup builds the raytracer and output encoder from validated options
func setup(opts *options, logger core.Logger) (*renderer.Raytracer, output.Encoder, error) {
	enc, err := opts.encoder()
	if err != nil {
		return nil, nil, err
	}
	accel, err := scene.ParseAccelerator(opts.accel)
	if err != nil {
		return nil, nil, err
	}

	selected, err := createScene(opts.scene, opts.config.Seed)
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("Using %s scene (%d spheres)\n", selected.Name, selected.GetPrimitiveCount())

	camera, err := renderer.NewCamera(opts.cameraConfig(selected.CameraConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("camera: %w", err)
	}
	world, err := selected.World(accel)
	if err != nil {
		return nil, nil, err
	}

	return renderer.NewRaytracer(world, camera, opts.config, logger), enc, nil
}

func writeImage(path string, stdout io.Writer, enc output.Encoder, fb *renderer.Framebuffer, spp int) error {
	if path == "" || path == "-" {
		return enc.Encode(stdout, fb, spp)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := enc.Encode(file, fb, spp); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
