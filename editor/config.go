package editor

import (
	"github.com/cozy/scribe-go/history"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/schema/basic"
	"github.com/cozy/scribe-go/schema/list"
	"github.com/cozy/scribe-go/transform"
	"golang.org/x/net/html/atom"
)

var defaultSchema = mustSchema(model.NewSchema(&model.SchemaSpec{
	Nodes: list.AddListNodes(basic.Nodes, model.GroupBlock),
}))

func mustSchema(s *model.Schema, err error) *model.Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// Config holds editor configuration options.
type Config struct {
	// MaxHistory is the number of undo checkpoints kept.
	MaxHistory int

	// Logf is called with log messages. Nil disables logging.
	Logf func(format string, args ...interface{})

	// Quirks selects the platform bugs the native commands reproduce.
	Quirks transform.Quirks

	// Schema tells block elements from inline ones.
	Schema *model.Schema

	// RootTag is the tag of the root New creates when given none.
	RootTag atom.Atom
}

// DefaultConfig returns a configuration behaving like the browsers the
// patches are written for.
func DefaultConfig() Config {
	return Config{
		MaxHistory: history.DefaultMaxEntries,
		Quirks:     transform.AllQuirks(),
		Schema:     defaultSchema,
		RootTag:    atom.Div,
	}
}

// WithMaxHistory returns a copy of the config with the history limit set.
func (c Config) WithMaxHistory(max int) Config {
	c.MaxHistory = max
	return c
}

// WithLogger returns a copy of the config logging through logf.
func (c Config) WithLogger(logf func(format string, args ...interface{})) Config {
	c.Logf = logf
	return c
}

// WithQuirks returns a copy of the config with the platform quirks set.
func (c Config) WithQuirks(q transform.Quirks) Config {
	c.Quirks = q
	return c
}

// WithSchema returns a copy of the config with the schema set.
func (c Config) WithSchema(s *model.Schema) Config {
	c.Schema = s
	return c
}

// WithRootTag returns a copy of the config with the root tag set.
func (c Config) WithRootTag(tag atom.Atom) Config {
	c.RootTag = tag
	return c
}
