//go:build !linux

package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console is a no-op where there is no Linux VT.
type Console struct {
	Logger logger
}

func NewConsole(log logger) *Console { return &Console{Logger: log} }

func (c *Console) EnterGraphics() error { return nil }
func (c *Console) Restore() error       { return nil }
