package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-normal-raytracer/pkg/core"
	"github.com/df07/go-normal-raytracer/pkg/output"
	"github.com/df07/go-normal-raytracer/pkg/renderer"
	"github.com/df07/go-normal-raytracer/pkg/scene"
)

func main() {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render a normal-shaded sphere as a PPM or PNG image"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Value: "-",
			Usage: "output path (.ppm or .png); '-' writes PPM to stdout",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML scene file overriding the default camera and sphere",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels (default 400)",
		},
		cli.Float64Flag{
			Name:  "aspect",
			Usage: "target aspect ratio, width / height (default 16/9)",
		},
		cli.Float64Flag{
			Name:  "focal",
			Usage: "focal length (default 1.0)",
		},
		cli.BoolFlag{
			Name:  "unclamped",
			Usage: "scale channels without clamping to [0,1] (values may exceed 255)",
		},
		cli.BoolFlag{
			Name:  "pattern",
			Usage: "write the 256x256 red/green test pattern instead of rendering",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "suppress progress and log output",
		},
	}
	app.Action = func(c *cli.Context) error {
		opts := renderOptions{
			Output:     c.String("output"),
			ConfigPath: c.String("config"),
			Camera: renderer.CameraConfig{
				Width:       c.Int("width"),
				AspectRatio: c.Float64("aspect"),
				FocalLength: c.Float64("focal"),
			},
			Pattern:   c.Bool("pattern"),
			Unclamped: c.Bool("unclamped"),
		}

		var logger core.Logger = renderer.NewDefaultLogger()
		var diag io.Writer = os.Stderr
		if c.Bool("quiet") {
			logger = renderer.NopLogger{}
			diag = io.Discard
		}

		return run(context.Background(), opts, logger, diag)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// renderOptions holds the parsed command line
type renderOptions struct {
	Output     string
	ConfigPath string
	Camera     renderer.CameraConfig // Non-zero fields override the scene
	Pattern    bool
	Unclamped  bool
}

func (o renderOptions) encoding() output.ChannelEncoding {
	if o.Unclamped {
		return output.ChannelUnclamped
	}
	return output.ChannelClamped
}

// createScene builds the default scene, or the one described by configPath, with overrides applied
func createScene(configPath string, overrides renderer.CameraConfig) (*scene.Scene, error) {
	if configPath == "" {
		return scene.NewDefaultScene(overrides)
	}

	cfg, err := scene.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build(overrides)
}

// render produces the pixels and dimensions for opts
func render(ctx context.Context, opts renderOptions, logger core.Logger, diag io.Writer) ([]core.Vec3, int, int, error) {
	if opts.Pattern {
		const size = 256
		logger.Printf("Writing %dx%d test pattern\n", size, size)
		return renderer.TestPattern(size, size), size, size, nil
	}

	s, err := createScene(opts.ConfigPath, opts.Camera)
	if err != nil {
		return nil, 0, 0, err
	}

	raytracer := renderer.NewRaytracer(s, logger)
	raytracer.SetProgressReporter(renderer.NewScanlineProgress(diag))

	pixels, stats, err := raytracer.RenderPass(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Sphere coverage: %.1f%% of %d pixels\n", 100*stats.HitRatio(), stats.TotalPixels)

	return pixels, raytracer.Width(), raytracer.Height(), nil
}

func run(ctx context.Context, opts renderOptions, logger core.Logger, diag io.Writer) error {
	if _, err := output.FormatForPath(opts.Output); err != nil {
		return err
	}

	pixels, width, height, err := render(ctx, opts, logger, diag)
	if err != nil {
		return err
	}

	if err := output.WriteFile(opts.Output, width, height, pixels, opts.encoding()); err != nil {
		return err
	}
	if opts.Output != "-" && opts.Output != "" {
		logger.Printf("Render saved as %s\n", opts.Output)
	}
	return nil
}
