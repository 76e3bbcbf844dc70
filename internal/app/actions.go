package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidState    = errors.New("invalid state")
	ErrIncompleteTable = errors.New("incomplete state table")
)

// ActionBundle is the behavior of one state. The loop calls Init once on the
// initial state's bundle, then Doit once per tick. KeyRight and KeyLeft are
// navigation hooks reached through Context.KeyRight/KeyLeft.
type ActionBundle interface {
	Init(c *Context)
	Doit(c *Context)
	Tip(c *Context)
	KeyRight(c *Context)
	KeyLeft(c *Context)
}

// ActionFuncs builds an ActionBundle out of plain functions. Use it through a
// pointer; NewStateTable rejects it unless all five are set.
type ActionFuncs struct {
	InitFunc     func(c *Context)
	DoitFunc     func(c *Context)
	TipFunc      func(c *Context)
	KeyRightFunc func(c *Context)
	KeyLeftFunc  func(c *Context)
}

func (f *ActionFuncs) Init(c *Context)     { f.InitFunc(c) }
func (f *ActionFuncs) Doit(c *Context)     { f.DoitFunc(c) }
func (f *ActionFuncs) Tip(c *Context)      { f.TipFunc(c) }
func (f *ActionFuncs) KeyRight(c *Context) { f.KeyRightFunc(c) }
func (f *ActionFuncs) KeyLeft(c *Context)  { f.KeyLeftFunc(c) }

func (f *ActionFuncs) missing() []string {
	var out []string
	if f.InitFunc == nil {
		out = append(out, "Init")
	}
	if f.DoitFunc == nil {
		out = append(out, "Doit")
	}
	if f.TipFunc == nil {
		out = append(out, "Tip")
	}
	if f.KeyRightFunc == nil {
		out = append(out, "KeyRight")
	}
	if f.KeyLeftFunc == nil {
		out = append(out, "KeyLeft")
	}
	return out
}

// StateTable maps every State to its bundle. The zero value is empty and
// fails every lookup; build tables with NewStateTable.
type StateTable struct {
	bundles [StateCount]ActionBundle
}

// NewStateTable checks that every state has a fully populated bundle.
func NewStateTable(bundles map[State]ActionBundle) (StateTable, error) {
	var table StateTable
	for s, b := range bundles {
		if !s.Valid() {
			return StateTable{}, fmt.Errorf("%w: %v", ErrInvalidState, s)
		}
		table.bundles[s] = b
	}
	for _, s := range States() {
		b := table.bundles[s]
		if b == nil {
			return StateTable{}, fmt.Errorf("%w: no bundle for %s", ErrIncompleteTable, s)
		}
		if err := checkBundle(b); err != nil {
			return StateTable{}, fmt.Errorf("%w: %s: %v", ErrIncompleteTable, s, err)
		}
		if funcs, ok := b.(*ActionFuncs); ok {
			if missing := funcs.missing(); len(missing) > 0 {
				return StateTable{}, fmt.Errorf("%w: %s lacks %s", ErrIncompleteTable, s, strings.Join(missing, ", "))
			}
		}
	}
	return table, nil
}

// checkBundle rejects bundles the loop cannot call or compare. Screens tell
// whether they are still current by comparing Context.Actions with
// themselves, and interface comparison panics on uncomparable types.
func checkBundle(b ActionBundle) error {
	v := reflect.ValueOf(b)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return fmt.Errorf("nil %T bundle", b)
		}
	}
	if !v.Type().Comparable() {
		return fmt.Errorf("bundle type %T is not comparable", b)
	}
	return nil
}

// Lookup returns the bundle for s, or nil for an invalid state.
func (t *StateTable) Lookup(s State) ActionBundle {
	if !s.Valid() {
		return nil
	}
	return t.bundles[s]
}
