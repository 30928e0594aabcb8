package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// Drivers accepted in EnginePrefs.Driver.
const (
	DriverWindow   = "window"
	DriverTerminal = "tui"
	DriverHeadless = "headless"
)

// EnginePrefs holds how the simulation is driven and displayed. Scene content lives in the scene file.
type EnginePrefs struct {
	Driver         string `json:"driver"`
	ScenePath      string `json:"scene,omitempty"`
	FrameRateLimit int    `json:"frame_rate_limit"`
	ShowFPS        bool   `json:"show_fps"`
	ShowStats      bool   `json:"show_stats"`
	LogPath        string `json:"log_path,omitempty"`
	Debug          bool   `json:"debug"`

	// Headless recording.
	Frames     int     `json:"frames,omitempty"`
	FixedDt    float64 `json:"fixed_dt,omitempty"`
	FrameEvery int     `json:"frame_every,omitempty"`
	OutDir     string  `json:"out_dir,omitempty"`
}

// Default returns the default preferences: a window capped at 400 FPS, overlays off.
func Default() EnginePrefs {
	return EnginePrefs{
		Driver:         DriverWindow,
		FrameRateLimit: 400,
		LogPath:        "logs/airtrack.log",
		Frames:         2000,
		FixedDt:        1.0 / 400,
		FrameEvery:     40,
		OutDir:         "out",
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default();
// only a read error other than not-exist is reported.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports preferences no driver can run with.
func (p EnginePrefs) Validate() error {
	switch p.Driver {
	case DriverWindow, DriverTerminal, DriverHeadless:
	default:
		return fmt.Errorf("unknown driver %q", p.Driver)
	}
	if p.FrameRateLimit <= 0 {
		return fmt.Errorf("frame rate limit must be positive, got %d", p.FrameRateLimit)
	}
	if p.Driver == DriverHeadless {
		if p.Frames <= 0 || p.FixedDt <= 0 {
			return fmt.Errorf("headless run needs frames > 0 and fixed_dt > 0")
		}
	}
	return nil
}

// ApplyEnv overrides p with AIRTRACK_* environment variables (typically loaded from .env).
// Unparsable values are reported and leave the field unchanged.
func ApplyEnv(p *EnginePrefs) error {
	var errs []string
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			*dst = b
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			*dst = f
		}
	}

	str("AIRTRACK_DRIVER", &p.Driver)
	str("AIRTRACK_SCENE", &p.ScenePath)
	str("AIRTRACK_LOG", &p.LogPath)
	str("AIRTRACK_OUT", &p.OutDir)
	integer("AIRTRACK_FPS", &p.FrameRateLimit)
	integer("AIRTRACK_FRAMES", &p.Frames)
	integer("AIRTRACK_FRAME_EVERY", &p.FrameEvery)
	float("AIRTRACK_DT", &p.FixedDt)
	boolean("AIRTRACK_SHOW_FPS", &p.ShowFPS)
	boolean("AIRTRACK_SHOW_STATS", &p.ShowStats)
	boolean("AIRTRACK_DEBUG", &p.Debug)

	if len(errs) > 0 {
		return fmt.Errorf("environment: %s", strings.Join(errs, "; "))
	}
	return nil
}
