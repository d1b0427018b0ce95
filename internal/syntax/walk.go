package syntax

// Action tells Walk how to continue after visiting a node.
type Action int

const (
	// Continue descends into the children of the node.
	Continue Action = iota
	// SkipChildren moves on to the next sibling.
	SkipChildren
	// Stop ends the traversal.
	Stop
)

// Path is the traversal stack of a Walk. It is only valid during the
// callback that received it.
type Path struct {
	tree  *Tree
	stack []NodeID
}

// Tree returns the tree being walked.
func (p *Path) Tree() *Tree {
	return p.tree
}

// Node returns the visited node.
func (p *Path) Node() NodeID {
	return p.stack[len(p.stack)-1]
}

// Kind returns the kind of the visited node.
func (p *Path) Kind() string {
	return p.tree.Kind(p.Node())
}

// Field returns the field the visited node occupies in its parent.
func (p *Path) Field() string {
	return p.tree.Field(p.Node())
}

// Parent returns the parent of the visited node, or NoNode at the walk root.
func (p *Path) Parent() NodeID {
	if len(p.stack) < 2 {
		return NoNode
	}

	return p.stack[len(p.stack)-2]
}

// Depth returns how far below the walk root the visited node is.
func (p *Path) Depth() int {
	return len(p.stack) - 1
}

// Ancestors returns the ancestors of the visited node up to the walk root,
// nearest first.
func (p *Path) Ancestors() []NodeID {
	out := make([]NodeID, 0, len(p.stack)-1)
	for i := len(p.stack) - 2; i >= 0; i-- {
		out = append(out, p.stack[i])
	}

	return out
}

// Walk visits root and its descendants in document order.
func (t *Tree) Walk(root NodeID, fn func(p *Path) Action) {
	if !root.Valid() {
		return
	}

	p := &Path{tree: t}
	p.walk(root, fn)
}

func (p *Path) walk(id NodeID, fn func(p *Path) Action) bool {
	p.stack = append(p.stack, id)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	switch fn(p) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}

	for _, child := range p.tree.nodes[id].Children {
		if !p.walk(child, fn) {
			return false
		}
	}

	return true
}

// Find returns every node below root, root included, accepted by match.
func (t *Tree) Find(root NodeID, match func(id NodeID) bool) []NodeID {
	var out []NodeID

	t.Walk(root, func(p *Path) Action {
		if match(p.Node()) {
			out = append(out, p.Node())
		}

		return Continue
	})

	return out
}

// FindKind returns every node below root, root included, of one of kinds.
func (t *Tree) FindKind(root NodeID, kinds ...string) []NodeID {
	return t.Find(root, func(id NodeID) bool { return t.Is(id, kinds...) })
}
