// Package config holds the startup settings. Defaults come from UMT_*
// environment variables; main lets flags override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDisplay       = "UMT_DISPLAY"
	EnvFBDevice      = "UMT_FB_DEVICE"
	EnvInput         = "UMT_INPUT"
	EnvLang          = "UMT_LANG"
	EnvDebug         = "UMT_DEBUG"
	EnvStdioLog      = "UMT_STDIO_LOG"
	EnvHeadlessTicks = "UMT_HEADLESS_TICKS"
	EnvWidth         = "UMT_WIDTH"
	EnvHeight        = "UMT_HEIGHT"
)

// Display selects the surface provider.
type Display string

const (
	DisplayFBDev    Display = "fbdev"
	DisplayWindow   Display = "window"
	DisplayHeadless Display = "headless"
)

func ParseDisplay(raw string) (Display, error) {
	switch d := Display(strings.ToLower(strings.TrimSpace(raw))); d {
	case DisplayFBDev, DisplayWindow, DisplayHeadless:
		return d, nil
	default:
		return "", fmt.Errorf("unknown display %q (want fbdev, window or headless)", raw)
	}
}

type Config struct {
	Display   Display
	FBDevice  string
	InputGlob string
	Language  string
	Debug     bool
	// StdioLog, when set, receives stdout and stderr.
	StdioLog string
	// HeadlessTicks is how many idle ticks a headless run waits before
	// backing out with Escape.
	HeadlessTicks int
	Width         int
	Height        int
}

func Defaults() Config {
	return Config{
		Display:       DisplayFBDev,
		FBDevice:      "/dev/fb0",
		InputGlob:     "/dev/input/event*",
		Language:      "en-US",
		HeadlessTicks: 20,
		Width:         640,
		Height:        480,
	}
}

// FromEnv returns Defaults overridden by the environment.
func FromEnv() (Config, error) {
	cfg := Defaults()

	if raw := os.Getenv(EnvDisplay); raw != "" {
		d, err := ParseDisplay(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDisplay, err)
		}
		cfg.Display = d
	}
	if raw := os.Getenv(EnvFBDevice); raw != "" {
		cfg.FBDevice = raw
	}
	if raw := os.Getenv(EnvInput); raw != "" {
		cfg.InputGlob = raw
	}
	if raw := os.Getenv(EnvLang); raw != "" {
		cfg.Language = raw
	}
	cfg.StdioLog = os.Getenv(EnvStdioLog)

	if raw := os.Getenv(EnvDebug); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDebug, raw, err)
		}
		cfg.Debug = parsed
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvHeadlessTicks, &cfg.HeadlessTicks},
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
	}
	for _, field := range ints {
		raw := os.Getenv(field.env)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", field.env, raw, err)
		}
		*field.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseDisplay(string(c.Display)); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("geometry must be positive (got %dx%d)", c.Width, c.Height)
	}
	if c.HeadlessTicks < 1 {
		return fmt.Errorf("headless ticks must be at least 1 (got %d)", c.HeadlessTicks)
	}
	if c.Display == DisplayFBDev && c.FBDevice == "" {
		return fmt.Errorf("fbdev display needs a device path")
	}
	return nil
}
