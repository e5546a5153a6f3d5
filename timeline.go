package movieclip

import (
	"math"
	"reflect"
)

// Timeline advances a frame pointer over a KeyframeSource at the source's
// frame rate and provides play/stop/seek transport controls.
//
// Frame numbers are 1-based. A timeline is driven by the Ticker it was built
// with: it subscribes while playing on stage and unsubscribes on stop,
// completion or detach. All methods must be called from one goroutine;
// listeners run synchronously and may call transport methods.
type Timeline struct {
	ticker Ticker
	source KeyframeSource

	labels        FrameLabels
	totalFrames   int
	frameRate     float64
	frameInterval float64 // ms per frame

	currentFrame int
	nextFrame    int // may pass totalFrames inside AdvanceTime before clamping
	accumulated  float64

	// remainingPlays is -1 for infinite looping, 0 when not playing.
	remainingPlays int
	playing        bool // user intent
	stopped        bool // true while not subscribed to the ticker
	onStage        bool

	displayed  int // frame whose texture was last fetched
	texture    TextureRegion
	hasTexture bool

	pending   []Event
	listeners listenerRegistry

	// onFrame is called after a new frame's texture is fetched.
	onFrame func(region TextureRegion, ok bool)
	// sink receives every dispatched event after the listeners.
	sink func(Event)
}

// NewTimeline creates an unbound timeline driven by ticker. A nil ticker is
// allowed; the timeline then only moves through AdvanceTime and seeks.
func NewTimeline(ticker Ticker) *Timeline {
	t := &Timeline{ticker: ticker, stopped: true}
	t.reset()
	return t
}

// --- Binding ---

// Bind attaches source and resets all playback state. Binding the source
// that is already bound is a no-op (sources of uncomparable types are
// always rebound). When the source is valid the timeline shows frame 1
// immediately; an invalid or nil source leaves nothing to show.
func (t *Timeline) Bind(source KeyframeSource) {
	if sameSource(t.source, source) {
		return
	}
	t.source = source
	t.reset()
	if source == nil || !source.StructurallyValid() || !source.TextureDataValid() {
		return
	}
	t.totalFrames = source.TotalFrames()
	t.labels = FrameLabels(source.Labels())
	t.setInterval(source.FrameRate())
	t.commit()
	t.constructFrame()
}

// sameSource compares sources without panicking on uncomparable dynamic
// types, which are never treated as equal.
func sameSource(a, b KeyframeSource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Source returns the bound source, or nil.
func (t *Timeline) Source() KeyframeSource {
	return t.source
}

func (t *Timeline) reset() {
	t.stopTicking()
	t.labels = nil
	t.totalFrames = 0
	t.frameRate = 0
	t.frameInterval = 0
	t.currentFrame = 0
	t.nextFrame = 1
	t.accumulated = 0
	t.remainingPlays = 0
	t.playing = false
	t.stopped = true
	t.displayed = 0
	t.pending = t.pending[:0]
	if t.hasTexture || t.texture != (TextureRegion{}) {
		t.texture = TextureRegion{}
		t.hasTexture = false
		if t.onFrame != nil {
			t.onFrame(TextureRegion{}, false)
		}
	}
}

func (t *Timeline) setInterval(fps float64) {
	t.frameRate = fps
	t.frameInterval = 1000 / fps
	if t.frameInterval > 0 && !math.IsInf(t.frameInterval, 0) {
		t.accumulated = math.Mod(t.accumulated, t.frameInterval)
	}
}

// syncFrameRate picks up rate changes made directly on the source.
func (t *Timeline) syncFrameRate() {
	if fps := t.source.FrameRate(); fps != t.frameRate {
		t.setInterval(fps)
	}
}

// --- Time advancement ---

// AdvanceTime moves the timeline forward by deltaMs milliseconds and reports
// whether at least one frame step happened. Sub-frame time is carried to the
// next call. Crossing the last frame either wraps (queuing a loop event) or
// completes and stops. After the steps the current frame's texture is
// fetched and queued events are dispatched.
//
// AdvanceTime never panics on bad state; it returns false instead.
func (t *Timeline) AdvanceTime(deltaMs float64) bool {
	if t.totalFrames == 0 || t.source == nil {
		return false
	}
	t.syncFrameRate()
	interval := t.frameInterval
	if !(interval > 0) || math.IsInf(interval, 0) || !finite(deltaMs) {
		return false
	}
	if deltaMs < 0 {
		deltaMs = 0
	}

	elapsed := t.accumulated + deltaMs
	steps := math.Floor(elapsed / interval)
	if !finite(steps) {
		return false
	}
	t.accumulated = math.Mod(elapsed, interval)
	if steps < 1 {
		return false
	}
	n := t.boundSteps(steps)

	for i := 0; i < n; i++ {
		t.nextFrame++
		if t.nextFrame > t.totalFrames {
			if t.remainingPlays == -1 {
				t.enqueue(EventLoopComplete)
				t.nextFrame = 1
			} else {
				t.remainingPlays--
				if t.remainingPlays > 0 {
					t.enqueue(EventLoopComplete)
					t.nextFrame = 1
				} else {
					t.nextFrame = t.totalFrames
					t.enqueue(EventComplete)
					t.remainingPlays = 0
					t.Stop()
					t.commit()
					break
				}
			}
		}
		entered := t.nextFrame != t.currentFrame
		t.commit()
		if entered {
			t.enqueueLabel()
		}
	}

	t.constructFrame()
	t.flushPendingEvents()
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// boundSteps caps the number of single-frame steps. For an infinite loop
// every whole cycle past the first lands on the same frame, so those cycles
// are skipped. A finite clip cannot run longer than its remaining plays.
func (t *Timeline) boundSteps(steps float64) int {
	total := float64(t.totalFrames)
	if t.remainingPlays == -1 {
		if steps > total {
			steps = total + math.Mod(steps-total, total)
		}
		return int(steps)
	}
	limit := total * (math.Max(float64(t.remainingPlays), 0) + 1)
	if steps > limit {
		steps = limit
	}
	return int(steps)
}

func (t *Timeline) commit() {
	t.currentFrame = t.nextFrame
}

func (t *Timeline) enqueue(kind EventKind) {
	t.pending = append(t.pending, Event{Kind: kind, Frame: t.currentFrame})
}

func (t *Timeline) enqueueLabel() {
	if l, ok := t.labels.ByFrame(t.currentFrame); ok {
		t.pending = append(t.pending, Event{Kind: EventFrameLabel, Frame: l.frame, Label: l.name})
	}
}

// constructFrame fetches the texture for the current frame unless it is
// already displayed.
func (t *Timeline) constructFrame() {
	if t.displayed == t.currentFrame {
		return
	}
	region, ok := t.source.TextureForFrame(t.currentFrame)
	t.texture = region
	t.hasTexture = ok
	t.displayed = t.currentFrame
	if t.onFrame != nil {
		t.onFrame(region, ok)
	}
}

// flushPendingEvents dispatches the queued events. Loop and complete events
// collapse to at most one each and go out last, loop before complete; other
// kinds keep their queue order. The queue is swapped out first so listeners
// can re-enter the timeline.
func (t *Timeline) flushPendingEvents() {
	events := t.pending
	t.pending = nil

	var (
		loop, complete     bool
		loopEv, completeEv Event
	)
	for _, e := range events {
		switch e.Kind {
		case EventLoopComplete:
			if !loop {
				loopEv = e
			}
			loop = true
		case EventComplete:
			if !complete {
				completeEv = e
			}
			complete = true
		default:
			t.dispatch(e)
		}
	}
	if loop {
		t.dispatch(loopEv)
	}
	if complete {
		t.dispatch(completeEv)
	}

	if t.pending == nil {
		clear(events)
		t.pending = events[:0]
	}
}

func (t *Timeline) dispatch(e Event) {
	t.listeners.dispatch(e)
	if t.sink != nil {
		t.sink(e)
	}
}

// --- Transport ---

// Play starts or resumes playback. The optional times argument sets the
// play count: >= 1 plays that many times, < 0 loops forever, 0 keeps the
// current count (a stopped clip then plays once). Ticking only starts when
// the clip has more than one frame and is on stage; otherwise the intent is
// remembered until Attach.
func (t *Timeline) Play(times ...int) error {
	if len(times) > 1 {
		return ErrInvalidArgument
	}
	t.playing = true
	if len(times) == 1 {
		t.setPlayTimes(times[0])
	}
	if t.totalFrames > 1 && t.onStage {
		t.startTicking()
	}
	return nil
}

// Stop pauses playback on the current frame. Stopping a clip that is
// ticking clears its remaining plays; a clip that is not ticking (off stage
// or already stopped) keeps them for the next Play.
func (t *Timeline) Stop() {
	t.playing = false
	if !t.stopped {
		t.remainingPlays = 0
	}
	t.stopTicking()
}

// GotoAndPlay seeks to target and plays. See Play for times.
func (t *Timeline) GotoAndPlay(target FrameTarget, times ...int) error {
	if len(times) > 1 {
		return ErrInvalidArgument
	}
	frame, err := t.resolve(target)
	if err != nil {
		return err
	}
	if err := t.Play(times...); err != nil {
		return err
	}
	t.seekTo(frame)
	return nil
}

// GotoAndStop stops playback and seeks to target.
func (t *Timeline) GotoAndStop(target FrameTarget) error {
	frame, err := t.resolve(target)
	if err != nil {
		return err
	}
	t.Stop()
	t.seekTo(frame)
	return nil
}

// PrevFrame steps back one frame and stops.
func (t *Timeline) PrevFrame() error {
	return t.GotoAndStop(Frame(t.currentFrame - 1))
}

// NextFrame steps forward one frame and stops.
func (t *Timeline) NextFrame() error {
	return t.GotoAndStop(Frame(t.currentFrame + 1))
}

// Seek moves to target without changing play state.
func (t *Timeline) Seek(target FrameTarget) error {
	frame, err := t.resolve(target)
	if err != nil {
		return err
	}
	t.seekTo(frame)
	return nil
}

func (t *Timeline) resolve(target FrameTarget) (int, error) {
	if t.totalFrames == 0 {
		return 0, ErrUnboundSource
	}
	return target.resolve(t.labels)
}

func (t *Timeline) seekTo(frame int) {
	if frame < 1 {
		frame = 1
	} else if frame > t.totalFrames {
		frame = t.totalFrames
	}
	if frame == t.nextFrame {
		return
	}
	t.nextFrame = frame
	t.commit()
	t.constructFrame()
	t.flushPendingEvents()
}

func (t *Timeline) setPlayTimes(times int) {
	switch {
	case times < 0:
		t.remainingPlays = -1
	case times >= 1:
		t.remainingPlays = times
	}
}

func (t *Timeline) startTicking() {
	if !t.stopped {
		return
	}
	t.stopped = false
	if t.remainingPlays == 0 {
		t.remainingPlays = 1
	}
	if t.ticker != nil {
		t.ticker.Subscribe(t)
	}
}

func (t *Timeline) stopTicking() {
	if t.stopped {
		return
	}
	t.stopped = true
	if t.ticker != nil {
		t.ticker.Unsubscribe(t)
	}
}

// --- Stage bridge ---

// Attach tells the timeline its display node is on a live stage. Playback
// resumes if the clip was playing when it was detached.
func (t *Timeline) Attach() {
	t.onStage = true
	if t.playing && t.totalFrames > 1 {
		t.startTicking()
	}
}

// Detach stops the tick feed. Play intent and play count are kept so a
// later Attach resumes where the clip left off.
func (t *Timeline) Detach() {
	t.onStage = false
	t.stopTicking()
}

// IsAttached reports whether the timeline is on stage.
func (t *Timeline) IsAttached() bool {
	return t.onStage
}

func (t *Timeline) dispose() {
	t.Detach()
	t.listeners.clear()
	t.onFrame = nil
	t.sink = nil
}

// --- Frame rate ---

// FrameRate returns the frames per second of the bound source, or 0.
func (t *Timeline) FrameRate() float64 {
	if t.source == nil {
		return 0
	}
	return t.source.FrameRate()
}

// SetFrameRate changes the source's frame rate. The current frame and play
// state are kept. Non-positive or infinite rates are ignored.
func (t *Timeline) SetFrameRate(fps float64) {
	if t.source == nil || !(fps > 0) || math.IsInf(fps, 0) {
		return
	}
	if fps == t.source.FrameRate() && fps == t.frameRate {
		return
	}
	t.source.SetFrameRate(fps)
	if t.totalFrames > 0 {
		t.setInterval(fps)
	}
}

// --- Listeners ---

// On registers fn for events of the given kind.
func (t *Timeline) On(kind EventKind, fn func(Event)) CallbackHandle {
	return t.listeners.add(kind, fn)
}

// OnLoopComplete registers fn for loop completion.
func (t *Timeline) OnLoopComplete(fn func(Event)) CallbackHandle {
	return t.On(EventLoopComplete, fn)
}

// OnComplete registers fn for playback completion.
func (t *Timeline) OnComplete(fn func(Event)) CallbackHandle {
	return t.On(EventComplete, fn)
}

// OnFrameLabel registers fn for labelled frames entered during playback.
func (t *Timeline) OnFrameLabel(fn func(Event)) CallbackHandle {
	return t.On(EventFrameLabel, fn)
}

// --- State ---

// CurrentFrame returns the displayed frame, or 0 when nothing is bound.
func (t *Timeline) CurrentFrame() int { return t.currentFrame }

// TotalFrames returns the frame count, or 0 when nothing is bound.
func (t *Timeline) TotalFrames() int { return t.totalFrames }

// IsPlaying reports the play intent, which survives detaching from stage.
func (t *Timeline) IsPlaying() bool { return t.playing }

// IsStopped reports whether the timeline is off the tick feed.
func (t *Timeline) IsStopped() bool { return t.stopped }

// RemainingPlays returns -1 for infinite looping, 0 when not playing.
func (t *Timeline) RemainingPlays() int { return t.remainingPlays }

// Texture returns the region for the displayed frame.
func (t *Timeline) Texture() (TextureRegion, bool) {
	return t.texture, t.hasTexture
}

// Labels returns the bound source's labels.
func (t *Timeline) Labels() FrameLabels { return t.labels }

// LabelByName looks up a label by name.
func (t *Timeline) LabelByName(name string, ignoreCase bool) (FrameLabel, bool) {
	return t.labels.ByName(name, ignoreCase)
}

// LabelByFrame returns the label placed exactly on frame.
func (t *Timeline) LabelByFrame(frame int) (FrameLabel, bool) {
	return t.labels.ByFrame(frame)
}

// LabelForFrame returns the nearest label at or before frame.
func (t *Timeline) LabelForFrame(frame int) (FrameLabel, bool) {
	return t.labels.ForFrame(frame)
}

// CurrentFrameLabel returns the label on the current frame, or "".
func (t *Timeline) CurrentFrameLabel() string {
	l, _ := t.labels.ByFrame(t.currentFrame)
	return l.name
}

// CurrentLabel returns the nearest label at or before the current frame,
// or "" when there is none.
func (t *Timeline) CurrentLabel() string {
	l, _ := t.labels.ForFrame(t.currentFrame)
	return l.name
}
