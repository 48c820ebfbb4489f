package editor

import "github.com/cozy/scribe-go/transform"

// Key codes the editor gives a default behavior to.
const (
	KeyBackspace = 8
	KeyDelete    = 46
)

// KeyEvent is a key press reaching the editable root.
type KeyEvent struct {
	Code int
}

// Decision is what a key hook wants done with an event.
type Decision struct {
	// Suppress cancels the default behavior of the key.
	Suppress bool
	// Run replaces the default behavior when Suppress is set.
	Run func() error
}

// Allow lets the default behavior happen.
var Allow = Decision{}

// SuppressWith cancels the default behavior and runs run instead.
func SuppressWith(run func() error) Decision {
	return Decision{Suppress: true, Run: run}
}

// KeyHook is called before the default behavior of a key.
type KeyHook func(ev KeyEvent) (Decision, error)

// AddKeyHook registers a hook. Hooks are called in registration order,
// until one of them suppresses the event.
func (e *Editor) AddKeyHook(h KeyHook) {
	if h != nil {
		e.keyHooks = append(e.keyHooks, h)
	}
}

// KeyDown dispatches ev: the hooks decide first, then either the
// replacement of the suppressing hook or the default behavior runs. It
// returns the decision taken.
func (e *Editor) KeyDown(ev KeyEvent) (Decision, error) {
	for _, h := range e.keyHooks {
		d, err := h(ev)
		if err != nil {
			return d, err
		}
		if d.Suppress {
			e.logf("editor: key %d suppressed", ev.Code)
			if d.Run != nil {
				return d, d.Run()
			}
			return d, nil
		}
	}
	return Allow, e.defaultKey(ev)
}

func (e *Editor) defaultKey(ev KeyEvent) error {
	var name string
	switch ev.Code {
	case KeyBackspace:
		name = transform.Delete
	case KeyDelete:
		name = transform.ForwardDelete
	default:
		return nil
	}
	return e.ExecCommand(name, nil)
}
