package movieclip

// nodeIDCounter is a plain counter (no atomic: the scene graph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene // non-nil while reachable from a scene root

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any
	EntityID uint32

	// Sprite fields (NodeTypeSprite, NodeTypeMovieClip)
	TextureRegion TextureRegion
	BlendMode     BlendMode
	Color         Color

	// Movie clip fields (NodeTypeMovieClip)
	Clip *Timeline

	// Cached local content bounds, recomputed when boundsDirty.
	bounds      Rect
	boundsDirty bool

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
	n.boundsDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders a texture region.
func NewSprite(name string, region TextureRegion) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, TextureRegion: region}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("movieclip: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("movieclip: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.detachChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if n.scene != nil {
		setSubtreeScene(child, n.scene)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("movieclip: child's parent is not this node")
	}
	n.detachChild(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
		setSubtreeScene(child, nil)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildByName returns the first descendant (depth-first) with the given name.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.ChildByName(name); found != nil {
			return found
		}
	}
	return nil
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Stage ---

// Scene returns the scene this node is attached to, or nil when the node is
// not reachable from a scene root.
func (n *Node) Scene() *Scene {
	return n.scene
}

// OnStage reports whether the node is attached to a scene.
func (n *Node) OnStage() bool {
	return n.scene != nil
}

// setSubtreeScene moves a subtree onto or off a scene. Movie clips are told
// about the change after their scene pointer is updated on attach and before
// it is cleared on detach, so the tick feed always belongs to the right scene.
func setSubtreeScene(n *Node, s *Scene) {
	if n.scene == s {
		return
	}
	if n.scene != nil && n.Clip != nil {
		n.Clip.Detach()
	}
	n.scene = s
	if s != nil && n.Clip != nil {
		n.Clip.Attach()
	}
	for _, child := range n.children {
		setSubtreeScene(child, s)
	}
}

// --- Bounds ---

// ContentBounds returns the node's local content rectangle: the displayed
// region's untrimmed box shifted by its trim offset. Containers and nodes
// with nothing to display return an empty Rect.
func (n *Node) ContentBounds() Rect {
	if n.boundsDirty {
		n.bounds = n.measureContentBounds()
		n.boundsDirty = false
	}
	return n.bounds
}

// InvalidateContentBounds forces ContentBounds to be recomputed.
func (n *Node) InvalidateContentBounds() {
	n.boundsDirty = true
}

func (n *Node) measureContentBounds() Rect {
	if n.Type == NodeTypeContainer {
		return Rect{}
	}
	if n.Type == NodeTypeMovieClip {
		if n.Clip == nil {
			return Rect{}
		}
		if _, ok := n.Clip.Texture(); !ok {
			return Rect{}
		}
	}
	r := n.TextureRegion
	w, h := float64(r.OriginalW), float64(r.OriginalH)
	if w == 0 && h == 0 {
		w, h = float64(r.Width), float64(r.Height)
	}
	if w == 0 || h == 0 {
		return Rect{}
	}
	return Rect{X: float64(r.OffsetX), Y: float64(r.OffsetY), Width: w, Height: h}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	if n.Clip != nil {
		n.Clip.dispose()
		n.Clip = nil
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.scene = nil
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detachChild removes child from n.children and takes its subtree off stage
// without clearing child.Parent.
func (n *Node) detachChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			n.childrenSorted = false
			setSubtreeScene(child, nil)
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
