//go:build !linux

package input

import "context"

const DefaultEvdevGlob = ""

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// StartEvdev has no devices to read off Linux.
func StartEvdev(ctx context.Context, glob string, log logger) *Queue {
	if log != nil {
		log.Infof("input", "evdev input needs linux")
	}
	return NewQueue(1)
}
