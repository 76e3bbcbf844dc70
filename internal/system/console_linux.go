//go:build linux

// Package system switches the Linux console between text and graphics
// while the framebuffer is in use.
package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// DefaultConsolePaths lists the active VT first.
var DefaultConsolePaths = []string{"/dev/tty", "/dev/tty0"}

// Console owns the VT mode for one fbdev session.
type Console struct {
	Paths  []string
	Logger logger

	entered bool
}

func NewConsole(log logger) *Console {
	return &Console{Paths: DefaultConsolePaths, Logger: log}
}

// EnterGraphics stops the kernel from drawing text and the cursor over the
// framebuffer.
func (c *Console) EnterGraphics() error {
	if err := c.setMode(kdGraphics); err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
		return err
	}
	c.entered = true
	c.infof("KD_GRAPHICS set")
	if err := c.write(hideCursor); err != nil {
		c.errorf("hide cursor failed: %v", err)
	}
	return nil
}

// Restore returns the VT to text mode. It is a no-op unless EnterGraphics
// succeeded.
func (c *Console) Restore() error {
	if !c.entered {
		return nil
	}
	c.entered = false
	var errs []error
	if err := c.setMode(kdText); err != nil {
		c.errorf("KD_TEXT failed: %v", err)
		errs = append(errs, err)
	} else {
		c.infof("KD_TEXT set")
	}
	if err := c.write(showCursor); err != nil {
		c.errorf("show cursor failed: %v", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Console) setMode(mode int) error {
	var lastErr error
	for _, p := range c.Paths {
		fd, err := unix.Open(p, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no console device configured")
	}
	return lastErr
}

func (c *Console) write(s string) error {
	var lastErr error
	for _, p := range c.Paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no console device configured")
	}
	return fmt.Errorf("write VT: %w", lastErr)
}

func (c *Console) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}
