package movieclip

// NewMovieClip creates a movie clip node playing source. The clip shows its
// first frame right away but does not play until Play is called; it only
// ticks while the node is attached to a scene.
func NewMovieClip(name string, source KeyframeSource) *Node {
	n := &Node{Name: name, Type: NodeTypeMovieClip}
	nodeDefaults(n)
	n.Clip = newNodeTimeline(n)
	n.Clip.Bind(source)
	return n
}

// newNodeTimeline builds a timeline whose tick feed is the scene the node is
// attached to and whose frames are mirrored into the node's TextureRegion.
func newNodeTimeline(n *Node) *Timeline {
	t := NewTimeline(stageTicker{node: n})
	t.onFrame = func(region TextureRegion, ok bool) {
		if !ok {
			region = TextureRegion{}
		}
		n.TextureRegion = region
		n.InvalidateContentBounds()
	}
	t.sink = func(e Event) {
		if n.scene == nil || n.scene.store == nil || n.EntityID == 0 {
			return
		}
		n.scene.store.EmitEvent(ClipEvent{
			EntityID: n.EntityID,
			NodeID:   n.ID,
			Name:     n.Name,
			Event:    e,
		})
	}
	return t
}

// SetClipSource rebinds a movie clip node to a new source. Playback state is
// reset. No-op for other node types.
func (n *Node) SetClipSource(source KeyframeSource) {
	if n.Clip == nil {
		return
	}
	n.Clip.Bind(source)
}

// stageTicker forwards subscriptions to the ticker of the scene a node is
// currently attached to.
type stageTicker struct {
	node *Node
}

func (st stageTicker) Subscribe(t Tickable) {
	if s := st.node.scene; s != nil {
		s.ticker.Subscribe(t)
	}
}

func (st stageTicker) Unsubscribe(t Tickable) {
	if s := st.node.scene; s != nil {
		s.ticker.Unsubscribe(t)
	}
}
