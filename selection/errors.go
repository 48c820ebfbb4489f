package selection

import "errors"

// Selection errors.
var (
	// ErrNoSelection indicates there is no selection inside the editable
	// root, e.g. because the editor does not have focus. Patches treat it as
	// "nothing to do".
	ErrNoSelection = errors.New("selection: no selection")

	// ErrNotFound indicates no ancestor of the selection matched.
	ErrNotFound = errors.New("selection: no matching ancestor")

	// ErrOutsideRoot indicates a range that does not lie inside the
	// editable root.
	ErrOutsideRoot = errors.New("selection: range outside the editable root")
)
