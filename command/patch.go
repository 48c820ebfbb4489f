package command

import (
	"fmt"
	"sort"

	"github.com/cozy/scribe-go/selection"
	"golang.org/x/net/html"
)

// Context is what a command runs against: the editable root and the
// platform selection of that root.
type Context struct {
	Root      *html.Node
	Selection selection.Surface
}

// Func is the execution behavior of a command. value is the optional
// argument the command was invoked with.
type Func func(ctx *Context, value interface{}) error

// Patch wraps one command.
type Patch struct {
	name      string
	original  Func
	active    Func
	installed bool
}

// Name returns the name of the patched command.
func (p *Patch) Name() string {
	return p.name
}

// Original runs the behavior the command had before it was patched.
func (p *Patch) Original(ctx *Context, value interface{}) error {
	return p.original(ctx, value)
}

// Install sets the behavior of the command. It can be called once per
// patch.
func (p *Patch) Install(fn Func) error {
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNilOverride, p.name)
	}
	if p.installed {
		return fmt.Errorf("%w: %q", ErrAlreadyInstalled, p.name)
	}
	p.active = fn
	p.installed = true
	return nil
}

// Installed reports whether an override was installed.
func (p *Patch) Installed() bool {
	return p.installed
}

// Execute runs the active behavior: the override when installed, the
// original otherwise.
func (p *Patch) Execute(ctx *Context, value interface{}) error {
	return p.active(ctx, value)
}

// Registry holds the native commands of a platform and the patches
// installed over them, both keyed by command name.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	natives map[string]Func
	patches map[string]*Patch
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		natives: make(map[string]Func),
		patches: make(map[string]*Patch),
	}
}

// Define registers the native behavior of a command. Patches created
// earlier keep the original they captured.
func (r *Registry) Define(name string, fn Func) {
	r.natives[name] = fn
}

// IsSupported reports whether the platform has a command by that name.
func (r *Registry) IsSupported(name string) bool {
	_, ok := r.natives[name]
	return ok
}

// NewPatch creates the patch for a native command, capturing its current
// behavior as the original.
func (r *Registry) NewPatch(name string) (*Patch, error) {
	native, ok := r.natives[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if _, ok := r.patches[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyPatched, name)
	}
	p := &Patch{name: name, original: native}
	p.active = func(ctx *Context, value interface{}) error {
		return p.original(ctx, value)
	}
	r.patches[name] = p
	return p, nil
}

// Lookup returns the patch installed for a command.
func (r *Registry) Lookup(name string) (*Patch, error) {
	p, ok := r.patches[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotPatched, name)
	}
	return p, nil
}

// Patched reports whether the command has a patch.
func (r *Registry) Patched(name string) bool {
	_, ok := r.patches[name]
	return ok
}

// Names returns the names of the patched commands, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.patches))
	for name := range r.patches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a command: through its patch if there is one, natively
// otherwise.
func (r *Registry) Execute(ctx *Context, name string, value interface{}) error {
	if p, ok := r.patches[name]; ok {
		return p.Execute(ctx, value)
	}
	if native, ok := r.natives[name]; ok {
		return native(ctx, value)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
