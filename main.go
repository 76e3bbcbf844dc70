package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/app/screens"
	"github.com/HyperNiki/umt/internal/assets"
	"github.com/HyperNiki/umt/internal/config"
	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/graphics/fbdev"
	"github.com/HyperNiki/umt/internal/graphics/headless"
	"github.com/HyperNiki/umt/internal/graphics/window"
	"github.com/HyperNiki/umt/internal/input"
	"github.com/HyperNiki/umt/internal/resource"
	"github.com/HyperNiki/umt/internal/system"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults, err := config.FromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Flags
	display := flag.String("display", string(defaults.Display), "display: fbdev | window | headless; also configurable via "+config.EnvDisplay)
	fbDevice := flag.String("fb", defaults.FBDevice, "framebuffer device; also configurable via "+config.EnvFBDevice)
	inputGlob := flag.String("input", defaults.InputGlob, "evdev devices to read keys from; also configurable via "+config.EnvInput)
	lang := flag.String("lang", defaults.Language, "preferred UI language; also configurable via "+config.EnvLang)
	debug := flag.Bool("debug", defaults.Debug, "enable debug logging to ./umt-debug.log; also configurable via "+config.EnvDebug)
	stdioLog := flag.String("stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	width := flag.Int("width", defaults.Width, "window/headless width; also configurable via "+config.EnvWidth)
	height := flag.Int("height", defaults.Height, "window/headless height; also configurable via "+config.EnvHeight)
	headlessTicks := flag.Int("headless-ticks", defaults.HeadlessTicks, "idle ticks before a headless run backs out; also configurable via "+config.EnvHeadlessTicks)
	script := flag.String("keys", "", "comma separated keys to replay first, e.g. down,enter,right (fbdev, headless)")
	snapshot := flag.String("png", "", "headless: write the last frame to this PNG file")
	flag.Parse()

	cfg := defaults
	cfg.FBDevice = *fbDevice
	cfg.InputGlob = *inputGlob
	cfg.Language = *lang
	cfg.Debug = *debug
	cfg.StdioLog = *stdioLog
	cfg.Width = *width
	cfg.Height = *height
	cfg.HeadlessTicks = *headlessTicks
	if cfg.Display, err = config.ParseDisplay(*display); err != nil {
		fmt.Println("config error:", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}
	keys, err := input.ParseKeys(*script)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Best-effort: a crash with the console in graphics mode is otherwise
	// invisible.
	if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if cfg.Debug {
		f, err := os.OpenFile("./umt-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kit := screens.NewKit(logger)
	table, err := screens.Table(kit)
	if err != nil {
		fmt.Println("Error:", err)
		return app.StatusOf(err).ExitCode()
	}

	boot := app.BootConfig{
		Resources: resource.NewDatabase(cfg.Language),
		Package:   resource.Package{Name: assets.StringsName, Data: assets.StringsYAML},
		States:    table,
		Logger:    logger,
		Console:   os.Stdout,
	}
	// present runs the boot sequence; the window provider needs it off the
	// main goroutine.
	present := func(session func()) error { session(); return nil }
	var cleanup []func()

	switch cfg.Display {
	case config.DisplayFBDev:
		console := system.NewConsole(logger)
		var fb *fbdev.Provider
		// Scripted keys, if any, play before live ones.
		boot.Input = input.Multi{input.NewScript(keys...), input.StartEvdev(ctx, cfg.InputGlob, logger)}
		boot.Locate = func() (graphics.Provider, error) {
			p, err := fbdev.Locate(cfg.FBDevice)
			if err != nil {
				return nil, err
			}
			p.Logger = logger
			fb = p
			// Failure leaves the text console visible but the test usable.
			_ = console.EnterGraphics()
			return p, nil
		}
		cleanup = append(cleanup, func() {
			_ = console.Restore()
			if fb != nil {
				if err := fb.Close(); err != nil {
					logger.Errorf("main", "framebuffer close: %v", err)
				}
			}
		})

	case config.DisplayWindow:
		w := window.New(window.Config{Width: cfg.Width, Height: cfg.Height})
		boot.Input = w.Keys()
		boot.Locate = func() (graphics.Provider, error) { return w, nil }
		present = w.Run

	case config.DisplayHeadless:
		h := headless.New(headless.Config{Width: cfg.Width, Height: cfg.Height, Format: graphics.PixelBGRX, Stopped: true})
		boot.Input = input.NewScript(keys...).WithEscapeTail(cfg.HeadlessTicks)
		boot.Locate = func() (graphics.Provider, error) { return h, nil }
		if *snapshot != "" {
			cleanup = append(cleanup, func() {
				if err := writeSnapshot(h, *snapshot); err != nil {
					fmt.Println("snapshot error:", err)
				}
			})
		}
	}

	status := app.StatusProviderFailure
	err = present(func() { status = app.Boot(boot) })
	if err := kit.Close(); err != nil {
		logger.Errorf("main", "release fonts: %v", err)
	}
	for _, fn := range cleanup {
		fn()
	}
	if err != nil {
		fmt.Println("window error:", err)
		if status == app.StatusSuccess {
			status = app.StatusProviderFailure
		}
	}
	logger.Infof("main", "exit: %s", status)
	return status.ExitCode()
}

func writeSnapshot(h *headless.Provider, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := h.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
