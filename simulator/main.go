package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/HyperNiki/umt/internal/app"
	"github.com/HyperNiki/umt/internal/config"
	"github.com/HyperNiki/umt/internal/graphics"
	"github.com/HyperNiki/umt/internal/graphics/headless"
	"github.com/HyperNiki/umt/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	appDefaults, err := config.FromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (CORS); also configurable via "+web.EnvDevMode)
	width := flag.Int("width", appDefaults.Width, "simulated display width; also configurable via "+config.EnvWidth)
	height := flag.Int("height", appDefaults.Height, "simulated display height; also configurable via "+config.EnvHeight)
	format := flag.String("format", "bgrx", "simulated pixel format: bgrx | rgbx")
	lang := flag.String("lang", appDefaults.Language, "preferred UI language; also configurable via "+config.EnvLang)
	verbose := flag.Bool("v", appDefaults.Debug, "log to stderr")
	flag.Parse()

	pixelFormat := graphics.PixelBGRX
	switch strings.ToLower(*format) {
	case "bgrx":
	case "rgbx":
		pixelFormat = graphics.PixelRGBX
	default:
		fmt.Println("unknown pixel format:", *format)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := headless.New(headless.Config{Width: *width, Height: *height, Format: pixelFormat, Stopped: true})
	control := NewSimControl(display, *lang, logger)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	mux := web.NewDefaultMux(control.Deps())
	registerSimEndpoints(mux, control)
	server.Handler = mux

	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	if err := control.Start(); err != nil {
		fmt.Println("session start error:", err)
		os.Exit(1)
	}

	fmt.Println("umt simulator listening on", server.Addr)
	fmt.Printf("Display: %dx%d %s\n", *width, *height, pixelFormat)
	fmt.Println("Frame:  http://" + displayAddr(server.Addr) + "/api/v1/frame.png")
	fmt.Println("Keys:   POST http://" + displayAddr(server.Addr) + "/api/v1/key/{up,down,left,right,enter,esc,f1}")

	<-processCtx.Done()
	_ = server.Stop()
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if strings.HasPrefix(addr, "[::]:") {
		return "127.0.0.1" + strings.TrimPrefix(addr, "[::]")
	}
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
