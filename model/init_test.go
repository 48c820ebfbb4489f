package model_test

import (
	"github.com/cozy/scribe-go/test/builder"
)

var (
	schema     = builder.Schema
	doc        = builder.Doc
	blockquote = builder.Blockquote
	h1         = builder.H1
	p          = builder.P
	em         = builder.Em
	strong     = builder.Strong
	ul         = builder.Ul
	li         = builder.Li
	br         = builder.Br
	findText   = builder.FindText
	findTag    = builder.FindTag
)
