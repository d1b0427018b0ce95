// Package syntax holds an immutable, parser independent view of a
// JavaScript or TypeScript syntax tree. Nodes live in an arena and are
// addressed by NodeID; parents, fields and spans are kept for every node so
// that analyses can walk both down and up without keeping pointers.
package syntax

import (
	"fmt"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/textedit"
)

// NodeID addresses a node inside its Tree.
type NodeID int

// NoNode is the absent node.
const NoNode NodeID = -1

// Valid reports whether id addresses a node.
func (id NodeID) Valid() bool {
	return id >= 0
}

// Node is one entry of the arena.
type Node struct {
	Kind     string
	Field    string
	Named    bool
	Start    int
	End      int
	Parent   NodeID
	Children []NodeID
}

// Tree is a parsed snapshot of one source.
type Tree struct {
	lang  m.Language
	src   []byte
	index *textedit.Index
	nodes []Node
}

// NewTree returns an empty tree over src. Nodes are added with Add.
func NewTree(lang m.Language, src []byte) *Tree {
	return &Tree{lang: lang, src: src, index: textedit.NewIndex(src)}
}

// Add appends a node below parent and returns its id. The first node added
// becomes the root.
func (t *Tree) Add(parent NodeID, field, kind string, named bool, start, end int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Kind:   kind,
		Field:  field,
		Named:  named,
		Start:  start,
		End:    end,
		Parent: parent,
	})

	if parent.Valid() {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}

	return id
}

// Language returns the grammar the tree was parsed with.
func (t *Tree) Language() m.Language {
	return t.lang
}

// Source returns the parsed text.
func (t *Tree) Source() []byte {
	return t.src
}

// Index returns the position index of the source.
func (t *Tree) Index() *textedit.Index {
	return t.index
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root node, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}

	return 0
}

// Node returns a copy of the node.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Kind returns the kind of id, or "" for NoNode.
func (t *Tree) Kind(id NodeID) string {
	if !id.Valid() {
		return ""
	}

	return t.nodes[id].Kind
}

// Is reports whether id has one of kinds.
func (t *Tree) Is(id NodeID, kinds ...string) bool {
	if !id.Valid() {
		return false
	}

	for _, kind := range kinds {
		if t.nodes[id].Kind == kind {
			return true
		}
	}

	return false
}

// Parent returns the parent of id.
func (t *Tree) Parent(id NodeID) NodeID {
	if !id.Valid() {
		return NoNode
	}

	return t.nodes[id].Parent
}

// Field returns the field name id occupies in its parent.
func (t *Tree) Field(id NodeID) string {
	if !id.Valid() {
		return ""
	}

	return t.nodes[id].Field
}

// Children returns every child, anonymous tokens included.
func (t *Tree) Children(id NodeID) []NodeID {
	if !id.Valid() {
		return nil
	}

	return t.nodes[id].Children
}

// NamedChildren returns the named children of id, comments excluded.
func (t *Tree) NamedChildren(id NodeID) []NodeID {
	var out []NodeID

	for _, child := range t.Children(id) {
		if t.nodes[child].Named && t.nodes[child].Kind != KindComment {
			out = append(out, child)
		}
	}

	return out
}

// ChildByField returns the first child stored under field.
func (t *Tree) ChildByField(id NodeID, field string) NodeID {
	for _, child := range t.Children(id) {
		if t.nodes[child].Field == field {
			return child
		}
	}

	return NoNode
}

// ChildrenByField returns every child stored under field.
func (t *Tree) ChildrenByField(id NodeID, field string) []NodeID {
	var out []NodeID

	for _, child := range t.Children(id) {
		if t.nodes[child].Field == field {
			out = append(out, child)
		}
	}

	return out
}

// ChildOfKind returns the first child of one of kinds.
func (t *Tree) ChildOfKind(id NodeID, kinds ...string) NodeID {
	for _, child := range t.Children(id) {
		if t.Is(child, kinds...) {
			return child
		}
	}

	return NoNode
}

// Span returns the byte range of id.
func (t *Tree) Span(id NodeID) (int, int) {
	n := t.nodes[id]
	return n.Start, n.End
}

// Text returns the source text of id.
func (t *Tree) Text(id NodeID) string {
	if !id.Valid() {
		return ""
	}

	n := t.nodes[id]

	return string(t.src[n.Start:n.End])
}

// Selection returns the span of id as a selection.
func (t *Tree) Selection(id NodeID) m.Selection {
	n := t.nodes[id]
	return t.index.Selection(n.Start, n.End)
}

// Contains reports whether the span of id contains sel.
func (t *Tree) Contains(id NodeID, sel m.Selection) bool {
	return id.Valid() && sel.IsInside(t.Selection(id))
}

// IsAncestor reports whether ancestor is id or one of its ancestors.
func (t *Tree) IsAncestor(ancestor, id NodeID) bool {
	for cur := id; cur.Valid(); cur = t.nodes[cur].Parent {
		if cur == ancestor {
			return true
		}
	}

	return false
}

// Ancestors returns the ancestors of id, nearest first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID

	for cur := t.Parent(id); cur.Valid(); cur = t.nodes[cur].Parent {
		out = append(out, cur)
	}

	return out
}

// Closest returns the nearest ancestor of id (id excluded) of one of kinds.
func (t *Tree) Closest(id NodeID, kinds ...string) NodeID {
	for cur := t.Parent(id); cur.Valid(); cur = t.nodes[cur].Parent {
		if t.Is(cur, kinds...) {
			return cur
		}
	}

	return NoNode
}

// PrevSibling returns the previous named sibling, comments excluded.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	siblings := t.NamedChildren(t.Parent(id))
	for i, s := range siblings {
		if s == id && i > 0 {
			return siblings[i-1]
		}
	}

	return NoNode
}

// NextSibling returns the next named sibling, comments excluded.
func (t *Tree) NextSibling(id NodeID) NodeID {
	siblings := t.NamedChildren(t.Parent(id))
	for i, s := range siblings {
		if s == id && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}

	return NoNode
}

// Equivalent compares two subtrees structurally: same kinds, same named
// children and same leaf text. Whitespace and comments are ignored.
func (t *Tree) Equivalent(a, b NodeID) bool {
	if t.Kind(a) != t.Kind(b) {
		return false
	}

	ca, cb := t.NamedChildren(a), t.NamedChildren(b)
	if len(ca) != len(cb) {
		return false
	}

	if len(ca) == 0 {
		return t.Text(a) == t.Text(b)
	}

	for i := range ca {
		if !t.Equivalent(ca[i], cb[i]) {
			return false
		}
	}

	return true
}

// FirstError returns the first ERROR or missing node in document order.
func (t *Tree) FirstError() NodeID {
	for id := range t.nodes {
		if t.nodes[id].Kind == KindError || t.nodes[id].Kind == KindMissing {
			return NodeID(id)
		}
	}

	return NoNode
}

func (t *Tree) String() string {
	return fmt.Sprintf("%s tree with %d nodes", t.lang, len(t.nodes))
}
