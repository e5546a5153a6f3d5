package movieclip

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, events from movie clips with a non-zero EntityID are
// forwarded to the ECS after the clip's own listeners ran.
type EntityStore interface {
	EmitEvent(event ClipEvent)
}

// ClipEvent carries a timeline event for the ECS bridge.
type ClipEvent struct {
	EntityID uint32
	NodeID   uint32
	Name     string // node name
	Event    Event
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the frame ticker
// that drives movie clips, atlas pages and render buffers.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	ticker *FrameTicker

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ShowStats draws frame rates and the ticking clip count over the scene.
	ShowStats bool
	// CaptureDir is where Capture writes PNG files. Defaults to "captures".
	CaptureDir string

	updateFunc func() error

	tweens   []*TweenGroup
	watcher  *ClipWatcher
	script   *PlaybackScript
	captures []string

	statsImage *ebiten.Image

	// Render state
	commands []drawCommand
	pages    []*ebiten.Image
	nextPage int // next available page index for LoadAtlas
}

// NewScene creates a new scene with a pre-created root container. The root
// is on stage for the lifetime of the scene.
func NewScene() *Scene {
	s := &Scene{
		ticker:     NewFrameTicker(),
		commands:   make([]drawCommand, 0, defaultCommandCap),
		CaptureDir: "captures",
	}
	s.root = NewContainer("root")
	s.root.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Ticker returns the ticker that feeds elapsed time to playing movie clips.
func (s *Scene) Ticker() *FrameTicker {
	return s.ticker
}

// SetUpdateFunc sets a callback run at the start of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the scene by one ebiten tick.
func (s *Scene) Update() error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.Advance(1000 / float64(ebiten.TPS()))
	return nil
}

// Advance moves the scene forward by deltaMs milliseconds: pending clip
// reloads are applied, the playback script steps, playing clips tick, tweens
// run and world transforms are refreshed.
func (s *Scene) Advance(deltaMs float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.watcher != nil {
		s.watcher.apply()
	}
	if s.script != nil {
		s.script.step(s)
	}
	s.ticker.Tick(deltaMs)
	s.updateTweens(float32(deltaMs / 1000))
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.debug {
		s.debugLogUpdate(time.Since(t0), s.ticker.Len())
	}
}

// Draw traverses the scene tree and draws sprites and movie clips onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform, 1.0, false)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
	if s.ShowStats {
		s.drawStats(screen)
	}
	s.flushCaptures(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, missing
// atlas regions and clip reload failures are logged, and per-frame timing
// stats are written to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// RegisterPage stores an atlas page image at the given index.
func (s *Scene) RegisterPage(index int, img *ebiten.Image) {
	for len(s.pages) <= index {
		s.pages = append(s.pages, nil)
	}
	s.pages[index] = img
}

// LoadAtlas parses TexturePacker JSON, registers atlas pages with the scene,
// and returns the Atlas for region lookups. Pages are registered starting at
// the next available page index.
func (s *Scene) LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	atlas, err := LoadAtlas(jsonData, pages)
	if err != nil {
		return nil, err
	}
	s.AddAtlas(atlas)
	return atlas, nil
}

// AddAtlas registers an atlas's pages with the scene and remaps its region
// page indices to the scene's page table.
func (s *Scene) AddAtlas(atlas *Atlas) {
	startIndex := s.nextPage
	for i, page := range atlas.Pages {
		s.RegisterPage(startIndex+i, page)
	}
	s.nextPage = startIndex + len(atlas.Pages)
	if startIndex > 0 {
		for name, r := range atlas.regions {
			r.Page += uint16(startIndex)
			atlas.regions[name] = r
		}
	}
}

// SetClipWatcher attaches a hot-reload watcher. Reloads are applied at the
// start of each Update on the game goroutine.
func (s *Scene) SetClipWatcher(w *ClipWatcher) {
	s.watcher = w
}

// SetPlaybackScript attaches a playback script stepped once per Update.
func (s *Scene) SetPlaybackScript(p *PlaybackScript) {
	s.script = p
}
