//go:build !linux

package fbdev

import (
	"fmt"

	"github.com/HyperNiki/umt/internal/graphics"
)

const DefaultDevice = "/dev/fb0"

// Provider is unavailable off Linux; Locate always fails.
type Provider struct {
	graphics.Provider
	Path   string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func Locate(path string) (*Provider, error) {
	return nil, fmt.Errorf("%w: framebuffer devices need linux", graphics.ErrDisplayNotFound)
}

func (p *Provider) Close() error { return nil }
