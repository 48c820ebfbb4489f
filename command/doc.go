// Package command wraps the platform's editing commands so that patches
// can run their own logic around them.
//
// The platform registers its native commands on a Registry with Define. A
// patch for one of them is created with NewPatch, which captures the
// native behavior once, as the patch's original. Install then sets the
// behavior that runs when the command is executed. An override is expected
// to delegate to Original at some point; not doing so suppresses the native
// command and should be a deliberate choice.
//
//	indent, err := registry.NewPatch("indent")
//	if err != nil {
//	    return err
//	}
//	err = indent.Install(func(ctx *command.Context, value interface{}) error {
//	    // before
//	    if err := indent.Original(ctx, value); err != nil {
//	        return err
//	    }
//	    // after
//	    return nil
//	})
//
// Each command has at most one patch. Errors returned by an override reach
// the caller of Execute untouched and never alter the registry: the next
// execution runs the same patch with the same original.
package command
