package editor

// EventContentChanged is triggered after every change of the content made
// through the editor.
const EventContentChanged = "content-changed"

// Listener is called with the name of the event it was registered for.
type Listener func(name string)

// On registers fn for the event name.
func (e *Editor) On(name string, fn Listener) {
	if fn == nil {
		return
	}
	e.listeners[name] = append(e.listeners[name], fn)
}

// Trigger calls the listeners of the event name, in registration order.
func (e *Editor) Trigger(name string) {
	e.logf("editor: trigger %s", name)
	for _, fn := range e.listeners[name] {
		fn(name)
	}
}
