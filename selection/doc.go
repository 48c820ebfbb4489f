// Package selection gives patches a stable view of the platform's
// selection.
//
// A Snapshot is read once, with Capture, and never changes afterwards: it
// holds a copy of the range the platform reported at that moment. Anything
// that mutates the tree (the patch itself, or a native command it delegates
// to) may leave that copy pointing at moved or detached nodes, so a patch
// captures a fresh Snapshot after every mutation instead of reusing the old
// one.
//
// Writing goes the other way and is always explicit: build or adjust a
// model.Range, then install it with ReplaceWith.
//
//	snap, err := selection.Capture(surface)
//	if errors.Is(err, selection.ErrNoSelection) {
//	    return nil
//	}
//	r := snap.Range()
//	r.Collapse(true)
//	err = snap.ReplaceWith(r)
package selection
