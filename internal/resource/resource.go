// Package resource is the string database that menu content renders from.
// Packages are opaque blobs to their owners; the database decodes them once
// at registration and hands back a Handle.
package resource

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var ErrRegistration = errors.New("resource registration failed")

// StringID names one localized string.
type StringID string

// Package is an unparsed string package as shipped with the binary.
type Package struct {
	Name string
	Data []byte
}

type packageFile struct {
	Name    string                       `yaml:"name"`
	Default string                       `yaml:"default"`
	Strings map[string]map[string]string `yaml:"strings"`
}

// Registrar registers string packages.
type Registrar interface {
	Register(pkg Package) (*Handle, error)
}

// Database holds registered packages. Preferred lists the languages to
// resolve strings in, best first.
type Database struct {
	Preferred []string

	mu      sync.Mutex
	next    int
	handles map[int]*Handle
}

func NewDatabase(preferred ...string) *Database {
	return &Database{Preferred: preferred, handles: make(map[int]*Handle)}
}

func (db *Database) Register(pkg Package) (*Handle, error) {
	if len(pkg.Data) == 0 {
		return nil, fmt.Errorf("%w: package %q is empty", ErrRegistration, pkg.Name)
	}
	var file packageFile
	if err := yaml.Unmarshal(pkg.Data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %w", ErrRegistration, pkg.Name, err)
	}
	if len(file.Strings) == 0 {
		return nil, fmt.Errorf("%w: package %q has no languages", ErrRegistration, pkg.Name)
	}

	tags := make([]language.Tag, 0, len(file.Strings))
	tables := make([]map[string]string, 0, len(file.Strings))
	names := make([]string, 0, len(file.Strings))
	for name := range file.Strings {
		names = append(names, name)
	}
	sort.Strings(names)
	defaultIndex := -1
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: package %q: language %q: %w", ErrRegistration, pkg.Name, name, err)
		}
		if name == file.Default {
			defaultIndex = len(tags)
		}
		tags = append(tags, tag)
		tables = append(tables, file.Strings[name])
	}
	if defaultIndex < 0 {
		return nil, fmt.Errorf("%w: package %q: default language %q has no strings", ErrRegistration, pkg.Name, file.Default)
	}

	// The matcher falls back to its first tag, so the default goes first.
	ordered := append([]language.Tag{tags[defaultIndex]}, tags[:defaultIndex]...)
	ordered = append(ordered, tags[defaultIndex+1:]...)
	orderedTables := append([]map[string]string{tables[defaultIndex]}, tables[:defaultIndex]...)
	orderedTables = append(orderedTables, tables[defaultIndex+1:]...)

	chosen := 0
	if len(db.Preferred) > 0 {
		prefs := make([]language.Tag, 0, len(db.Preferred))
		for _, p := range db.Preferred {
			if tag, err := language.Parse(p); err == nil {
				prefs = append(prefs, tag)
			}
		}
		_, chosen, _ = language.NewMatcher(ordered).Match(prefs...)
	}

	name := file.Name
	if name == "" {
		name = pkg.Name
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.handles == nil {
		db.handles = make(map[int]*Handle)
	}
	db.next++
	h := &Handle{
		ID:       db.next,
		Name:     name,
		lang:     ordered[chosen],
		langs:    ordered,
		selected: orderedTables[chosen],
		fallback: orderedTables[0],
	}
	db.handles[h.ID] = h
	return h, nil
}

// Unregister drops a handle. Strings already looked up stay valid.
func (db *Database) Unregister(h *Handle) {
	if h == nil {
		return
	}
	db.mu.Lock()
	delete(db.handles, h.ID)
	db.mu.Unlock()
}

// Registered reports whether h is still live in db.
func (db *Database) Registered(h *Handle) bool {
	if h == nil {
		return false
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.handles[h.ID]
	return ok
}

// Handle resolves strings of one registered package.
type Handle struct {
	ID   int
	Name string

	lang     language.Tag
	langs    []language.Tag
	selected map[string]string
	fallback map[string]string
}

// Lookup returns the string in the selected language, falling back to the
// package default.
func (h *Handle) Lookup(id StringID) (string, bool) {
	if h == nil {
		return "", false
	}
	if s, ok := h.selected[string(id)]; ok {
		return s, true
	}
	s, ok := h.fallback[string(id)]
	return s, ok
}

// String is Lookup that renders a missing string as its id.
func (h *Handle) String(id StringID) string {
	if s, ok := h.Lookup(id); ok {
		return s
	}
	return string(id)
}

func (h *Handle) Language() language.Tag { return h.lang }

func (h *Handle) Languages() []language.Tag {
	return append([]language.Tag(nil), h.langs...)
}
