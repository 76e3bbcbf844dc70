//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// linux/input-event-codes.h
	codeEsc     = 1
	codeTab     = 15
	codeEnter   = 28
	codeF1      = 59
	codeKPEnter = 96
	codeUp      = 103
	codeLeft    = 105
	codeRight   = 106
	codeDown    = 108

	DefaultEvdevGlob = "/dev/input/event*"
)

var evdevKeys = map[uint16]Key{
	codeEsc:     KeyEscape,
	codeTab:     KeyTab,
	codeEnter:   KeyEnter,
	codeKPEnter: KeyEnter,
	codeF1:      KeyF1,
	codeUp:      KeyUp,
	codeDown:    KeyDown,
	codeLeft:    KeyLeft,
	codeRight:   KeyRight,
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// timevalSize is the size of the timeval that prefixes each input_event.
func timevalSize() int {
	return binary.Size(unix.Timeval{})
}

// StartEvdev reads key presses from every device matching glob into a Queue
// until ctx is done. Missing devices are logged, not fatal: the returned
// queue then simply stays empty.
func StartEvdev(ctx context.Context, glob string, log logger) *Queue {
	q := NewQueue(64)
	if glob == "" {
		glob = DefaultEvdevGlob
	}
	paths, err := filepath.Glob(glob)
	if err != nil || len(paths) == 0 {
		if log != nil {
			log.Infof("input", "no evdev devices match %s", glob)
		}
		return q
	}
	for _, path := range paths {
		go readEvdev(ctx, path, q, log)
	}
	return q
}

func readEvdev(ctx context.Context, path string, q *Queue, log logger) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if log != nil {
			log.Errorf("input", "open %s: %v", path, err)
		}
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	tvSize := timevalSize()
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, k := range decodeEvents(buf[:n], tvSize) {
			q.Push(k)
		}
	}
}

// decodeEvents extracts key presses (value 1) and auto-repeats (value 2)
// from a run of input_event records.
func decodeEvents(data []byte, tvSize int) []Key {
	eventSize := tvSize + 2 + 2 + 4
	var keys []Key
	for off := 0; off+eventSize <= len(data); off += eventSize {
		rec := data[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || (value != 1 && value != 2) {
			continue
		}
		if k, ok := evdevKeys[code]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
