package movieclip

import "time"

// Tickable receives elapsed time from a Ticker.
type Tickable interface {
	// AdvanceTime is called with the milliseconds elapsed since the previous
	// tick and reports whether anything changed.
	AdvanceTime(deltaMs float64) bool
}

// Ticker feeds elapsed time to subscribed timelines. Subscribe and
// Unsubscribe must be idempotent.
type Ticker interface {
	Subscribe(t Tickable)
	Unsubscribe(t Tickable)
}

// FrameTicker is the Ticker used by Scene. Subscribers are ticked in
// subscription order. It is not safe for concurrent use.
type FrameTicker struct {
	subs    []Tickable
	ticking bool
	removed int // nil slots left in subs by Unsubscribe during Tick
}

// NewFrameTicker returns an empty ticker.
func NewFrameTicker() *FrameTicker {
	return &FrameTicker{}
}

// Subscribe adds t. No-op if t is already subscribed.
func (tk *FrameTicker) Subscribe(t Tickable) {
	if t == nil || tk.index(t) >= 0 {
		return
	}
	tk.subs = append(tk.subs, t)
}

// Unsubscribe removes t. No-op if t is not subscribed. During Tick the slot
// is cleared and compacted once the tick finishes.
func (tk *FrameTicker) Unsubscribe(t Tickable) {
	i := tk.index(t)
	if i < 0 {
		return
	}
	if tk.ticking {
		tk.subs[i] = nil
		tk.removed++
		return
	}
	copy(tk.subs[i:], tk.subs[i+1:])
	tk.subs[len(tk.subs)-1] = nil
	tk.subs = tk.subs[:len(tk.subs)-1]
}

// Len returns the number of live subscribers.
func (tk *FrameTicker) Len() int {
	return len(tk.subs) - tk.removed
}

// Tick advances every subscriber by deltaMs. Negative deltas are treated as
// zero. Subscribers added during the tick are first ticked on the next call.
func (tk *FrameTicker) Tick(deltaMs float64) {
	if deltaMs < 0 {
		deltaMs = 0
	}
	tk.ticking = true
	n := len(tk.subs)
	for i := 0; i < n; i++ {
		if t := tk.subs[i]; t != nil {
			t.AdvanceTime(deltaMs)
		}
	}
	tk.ticking = false
	if tk.removed > 0 {
		tk.compact()
	}
}

// TickDuration is Tick with a time.Duration.
func (tk *FrameTicker) TickDuration(d time.Duration) {
	tk.Tick(float64(d) / float64(time.Millisecond))
}

func (tk *FrameTicker) index(t Tickable) int {
	for i, s := range tk.subs {
		if s == t {
			return i
		}
	}
	return -1
}

func (tk *FrameTicker) compact() {
	live := tk.subs[:0]
	for _, s := range tk.subs {
		if s != nil {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(tk.subs); i++ {
		tk.subs[i] = nil
	}
	tk.subs = live
	tk.removed = 0
}
