package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"air-track/internal/commands"
	"air-track/internal/debug"
	"air-track/internal/engineconfig"
	"air-track/internal/env"
	"air-track/internal/graphics"
	"air-track/internal/logger"
	"air-track/internal/mapgen"
	"air-track/internal/physics"
	"air-track/internal/render"
	"air-track/internal/scene"
	"air-track/internal/session"
	"air-track/internal/terminal"
	"air-track/internal/tui"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "airtrack:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("airtrack", flag.ContinueOnError)
	configPath := fs.String("config", engineconfig.EngineConfigPath, "engine preferences (JSON)")
	envPath := fs.String("env", ".env", "file of KEY=VALUE lines loaded before AIRTRACK_* overrides")
	scenePath := fs.String("scene", "", "scene file (YAML); empty uses the config value or the built-in scene")
	driver := fs.String("driver", "", "window, tui or headless")
	frames := fs.Int("frames", 0, "headless: number of frames to simulate")
	outDir := fs.String("out", "", "headless: directory for PNG frames")
	debugLog := fs.Bool("debug", false, "log debug lines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := env.Load(*envPath); err != nil {
		return fmt.Errorf("load %s: %w", *envPath, err)
	}
	prefs, err := engineconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", *configPath, err)
	}
	if err := engineconfig.ApplyEnv(&prefs); err != nil {
		return err
	}
	if *scenePath != "" {
		prefs.ScenePath = *scenePath
	}
	if *driver != "" {
		prefs.Driver = *driver
	}
	if *frames > 0 {
		prefs.Frames = *frames
	}
	if *outDir != "" {
		prefs.OutDir = *outDir
	}
	if *debugLog {
		prefs.Debug = true
	}
	if err := prefs.Validate(); err != nil {
		return err
	}

	log := logger.New(prefs.LogPath, prefs.Debug)
	if prefs.Driver == engineconfig.DriverHeadless {
		log.SetEcho(os.Stderr)
	}

	sc, err := loadScene(prefs.ScenePath, log)
	if err != nil {
		return err
	}
	mapgen.Apply(&sc)
	world, err := scene.Build(sc)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	sess, err := session.New(sc.Name, world, log)
	if err != nil {
		return err
	}
	log.Debugf("driver=%s fps=%d scene=%q", prefs.Driver, prefs.FrameRateLimit, prefs.ScenePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch prefs.Driver {
	case engineconfig.DriverHeadless:
		return runHeadless(ctx, sess, sc, prefs, log)
	case engineconfig.DriverTerminal:
		return runTerminal(ctx, sess, sc, prefs, log)
	default:
		return runWindow(sess, sc, *configPath, &prefs, log)
	}
}

// loadScene reads path, or the default scene file if present, or falls back to the built-in scene.
func loadScene(path string, log *logger.Logger) (scene.Scene, error) {
	explicit := path != ""
	if !explicit {
		path = scene.DefaultPath
	}
	sc, err := scene.Load(path)
	switch {
	case err == nil:
		log.Infof("scene %s", path)
		return sc, nil
	case !explicit && errors.Is(err, os.ErrNotExist):
		log.Warnf("no %s, using built-in scene", path)
		return scene.Default(), nil
	default:
		return scene.Scene{}, err
	}
}

func runHeadless(ctx context.Context, sess *session.Session, sc scene.Scene, prefs engineconfig.EnginePrefs, log *logger.Logger) error {
	dir := filepath.Join(prefs.OutDir, sess.RunID)
	rec := render.NewRecorder(dir, prefs.FrameEvery, sc.Window.Width, sc.Window.Height)
	err := sess.Run(ctx, session.FixedClock{Dt: prefs.FixedDt}, rec, prefs.Frames, rec.Capture)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	st := sess.World.Stats()
	log.Infof("headless done: %d frames, t=%.3fs, %d wall hits, %d PNGs in %s", st.Frames, st.Elapsed, st.WallHits, len(rec.Saved()), dir)
	return nil
}

func runTerminal(ctx context.Context, sess *session.Session, sc scene.Scene, prefs engineconfig.EnginePrefs, log *logger.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	// Terminals redraw far slower than a window; 60 is plenty.
	fps := min(prefs.FrameRateLimit, 60)
	return tui.NewDriver(screen, sess, sc.Window.Width, sc.Window.Height, fps, log).Run(ctx)
}

func runWindow(sess *session.Session, sc scene.Scene, configPath string, prefs *engineconfig.EnginePrefs, log *logger.Logger) error {
	hud := debug.New(sess.World)
	hud.ShowFPS = prefs.ShowFPS
	hud.ShowStats = prefs.ShowStats

	reg := commands.NewRegistry()
	sess.RegisterCommands(reg)
	engineconfig.RegisterCommands(reg, configPath, prefs, log, func(p *engineconfig.EnginePrefs) {
		p.ShowFPS, p.ShowStats = hud.ShowFPS, hud.ShowStats
	})
	term := terminal.New(log, reg)

	update := func() {
		term.Update()
		if term.IsOpen() {
			return
		}
		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			sess.SetPaused(!sess.Paused())
		case rl.IsKeyPressed(rl.KeyR):
			if err := sess.Reset(); err != nil {
				log.Errorf("reset: %v", err)
			}
		case rl.IsKeyPressed(rl.KeyF1):
			hud.Toggle()
		}
	}
	frame := func(dt float64, c *graphics.Canvas) error {
		return sess.Frame(dt, c)
	}
	overlay := func() {
		hud.Draw()
		term.Draw()
	}

	err := graphics.Run(graphics.Options{
		Width:     sc.Window.Width,
		Height:    sc.Window.Height,
		Title:     sess.Caption(),
		TargetFPS: prefs.FrameRateLimit,
	}, update, frame, overlay)
	if errors.Is(err, physics.ErrInvalidArgument) {
		log.Errorf("simulation stopped: %v", err)
	}
	return err
}
