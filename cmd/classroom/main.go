package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-classroom/audio"
	"github.com/lixenwraith/vi-classroom/config"
	"github.com/lixenwraith/vi-classroom/core"
	"github.com/lixenwraith/vi-classroom/engine"
	"github.com/lixenwraith/vi-classroom/logx"
	"github.com/lixenwraith/vi-classroom/render"
	"github.com/lixenwraith/vi-classroom/scene"
	"github.com/lixenwraith/vi-classroom/snapshot"
	"github.com/lixenwraith/vi-classroom/terminal"
)

var (
	configFlag   = flag.String("config", "", "Config file (default: ./"+config.DefaultConfigPath+" if present)")
	variantFlag  = flag.String("variant", "", "Pose variant: simple, detailed")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256")
	fpsFlag      = flag.Int("fps", 0, "Frames per second")
	snapshotFlag = flag.String("snapshot", "", "Render one frame to this PNG and exit")
	watchFlag    = flag.Bool("watch", false, "Reload the config file when it changes")
	logFlag      = flag.String("log", "", "Log file, overrides log.path")
)

func main() {
	// Panic recovery: restore the terminal even if the viewer crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "classroom: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgPath, err := config.LoadAuto(*configFlag)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Wrap(err, "log.level")
	}
	logger, err := logx.New(cfg.Log.Path, level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting",
		logx.String("config", cfgPath),
		logx.String("variant", cfg.Variant),
		logx.Int("fps", cfg.FPS),
	)

	if *snapshotFlag != "" {
		return renderSnapshot(cfg, *snapshotFlag, logger)
	}
	return runViewer(cfg, cfgPath, logger)
}

// applyFlags overlays command-line overrides; the watcher reruns it on reload
func applyFlags(cfg *config.Config) error {
	if *variantFlag != "" {
		cfg.Variant = *variantFlag
	}
	if *colorFlag != "" {
		cfg.Color = *colorFlag
	}
	if *fpsFlag != 0 {
		cfg.FPS = *fpsFlag
	}
	if *logFlag != "" {
		cfg.Log.Path = *logFlag
	}
	return errors.Wrap(cfg.Validate(), "flags")
}

// renderSnapshot draws a single frame without touching the terminal
func renderSnapshot(cfg *config.Config, path string, log logx.Log) error {
	s := scene.Build(cfg.Layout())
	req := snapshot.Request{
		Width:  cfg.Snapshot.Width,
		Height: cfg.Snapshot.Height,
		Time:   cfg.Snapshot.Time,
		Camera: cfg.CameraDefaults(),
	}
	if cfg.Snapshot.Caption {
		req.Caption = engine.Caption(s.Variant, req.Time)
	}

	img, stats := snapshot.Capture(render.NewRenderer(cfg.RenderOptions()), s, req)
	if err := snapshot.WritePNG(path, img); err != nil {
		return err
	}
	log.Info("snapshot written",
		logx.String("path", path),
		logx.Int("triangles", stats.Triangles),
		logx.Int("shadow_pixels", stats.Shadows),
	)
	return nil
}

func runViewer(cfg *config.Config, cfgPath string, log logx.Log) error {
	opts := engine.Options{}

	if *watchFlag {
		if cfgPath == "" {
			log.Warn("-watch ignored: no config file in use")
		} else {
			w, err := config.NewWatcher(cfgPath, applyFlags)
			if err != nil {
				return err
			}
			opts.Watcher = w
		}
	}

	// Audio is optional, the viewer runs silent on failure
	if cfg.Audio.Bell {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Warn("audio disabled", logx.Err(err))
		} else {
			defer sm.Cleanup()
			opts.Sounds = sm
		}
	}

	screen, err := terminal.New(terminal.ParseColorMode(cfg.Color))
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	log.Debug("terminal ready", logx.String("color", screen.ColorMode().String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := engine.NewViewer(cfg, screen, log, opts)
	err = viewer.Run(ctx)
	log.Info("stopped", logx.Float64("t", viewer.Clock().Seconds()))
	return err
}
