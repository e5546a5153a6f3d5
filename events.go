package movieclip

// EventKind identifies a timeline notification.
type EventKind uint8

const (
	EventFrameLabel   EventKind = iota // a labelled frame was entered during playback
	EventLoopComplete                  // the clip wrapped to frame 1 and keeps playing
	EventComplete                      // the clip reached its last frame and stopped
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventFrameLabel:
		return "frameLabel"
	case EventLoopComplete:
		return "loopComplete"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is delivered to timeline listeners.
type Event struct {
	Kind  EventKind
	Frame int    // current frame when the event was queued
	Label string // label name, set for EventFrameLabel
}

// --- Listener registry ---

type listener struct {
	id uint32
	fn func(Event)
}

type listenerRegistry struct {
	byKind [3][]listener
	nextID uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id   uint32
	reg  *listenerRegistry
	kind EventKind
}

// Remove unregisters the listener. Safe to call more than once, and safe to
// call from inside a listener.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.kind) >= len(h.reg.byKind) {
		return
	}
	h.reg.byKind[h.kind] = removeListener(h.reg.byKind[h.kind], h.id)
}

func (r *listenerRegistry) add(kind EventKind, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byKind[kind] = append(r.byKind[kind], listener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, kind: kind}
}

// removeListener returns a fresh slice without id so that a dispatch loop
// ranging over the old slice is not disturbed.
func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			out := make([]listener, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (r *listenerRegistry) dispatch(e Event) {
	if int(e.Kind) >= len(r.byKind) {
		return
	}
	for _, l := range r.byKind[e.Kind] {
		l.fn(e)
	}
}

func (r *listenerRegistry) clear() {
	for i := range r.byKind {
		r.byKind[i] = nil
	}
}
