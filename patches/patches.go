// Package patches corrects the trees some platforms produce when their
// native editing commands run. Each patch is an editor plugin:
//
//	err := e.Use(patches.Core()...)
package patches

import "github.com/cozy/scribe-go/editor"

// Core returns every patch of this package.
func Core() []editor.Plugin {
	return []editor.Plugin{
		Indent(),
		EmptyEditorWhenDeleting(),
	}
}
