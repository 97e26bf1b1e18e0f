package heap

import (
	"github.com/outofforest/scapegoat/types"
)

// Cursor is a position in the implicit layout together with a rule deciding
// which positions belong to the walked tree.
type Cursor[C any] interface {
	At() types.Index
	Valid() bool
	Left() C
	Right() C
	Parent() C
}

// Raw is a cursor treating every position of the subtree rooted at Root
// below capacity as a node. It is used to walk relocation slots during
// rebuilds. Positions are tracked in subtree-local coordinates so the walk
// never escapes the subtree.
type Raw struct {
	Root  types.Index
	Local types.Index
	Cap   types.Index
}

// NewRaw creates a raw cursor positioned at the subtree root.
func NewRaw(root, cap types.Index) Raw {
	return Raw{Root: root, Cap: cap}
}

// At returns the position of the cursor in buffer coordinates.
func (c Raw) At() types.Index {
	return c.Local + c.Root<<Depth(c.Local)
}

// Valid returns true if the position belongs to the walked tree.
func (c Raw) Valid() bool {
	return c.At() < c.Cap
}

// Left moves to the left child.
func (c Raw) Left() Raw {
	return Raw{Root: c.Root, Local: Left(c.Local), Cap: c.Cap}
}

// Right moves to the right child.
func (c Raw) Right() Raw {
	return Raw{Root: c.Root, Local: Right(c.Local), Cap: c.Cap}
}

// Parent moves to the parent.
func (c Raw) Parent() Raw {
	return Raw{Root: c.Root, Local: Parent(c.Local), Cap: c.Cap}
}

// Perfect is a cursor treating the first Weight positions of the subtree
// rooted at Root as a complete tree. Visiting them in in-order and writing
// keys in ascending order produces a perfectly balanced subtree. Positions
// are tracked in subtree-local coordinates so validity is a plain bound
// check.
type Perfect struct {
	Root   types.Index
	Local  types.Index
	Weight types.Index
}

// NewPerfect creates a perfect cursor positioned at the subtree root.
func NewPerfect(root, weight types.Index) Perfect {
	return Perfect{Root: root, Weight: weight}
}

// At returns the position of the cursor in buffer coordinates.
func (c Perfect) At() types.Index {
	return c.Local + c.Root<<Depth(c.Local)
}

// Valid returns true if the position belongs to the walked tree.
func (c Perfect) Valid() bool {
	return c.Local < c.Weight
}

// Left moves to the left child.
func (c Perfect) Left() Perfect {
	return Perfect{Root: c.Root, Local: Left(c.Local), Weight: c.Weight}
}

// Right moves to the right child.
func (c Perfect) Right() Perfect {
	return Perfect{Root: c.Root, Local: Right(c.Local), Weight: c.Weight}
}

// Parent moves to the parent.
func (c Perfect) Parent() Perfect {
	return Perfect{Root: c.Root, Local: Parent(c.Local), Weight: c.Weight}
}

// Smallest returns the leftmost node of the subtree the cursor points to.
func Smallest[C Cursor[C]](c C) (C, bool) {
	if !c.Valid() {
		return c, false
	}
	for {
		l := c.Left()
		if !l.Valid() {
			return c, true
		}
		c = l
	}
}

// Largest returns the rightmost node of the subtree the cursor points to.
func Largest[C Cursor[C]](c C) (C, bool) {
	if !c.Valid() {
		return c, false
	}
	for {
		r := c.Right()
		if !r.Valid() {
			return c, true
		}
		c = r
	}
}

// Succ returns the next node in in-order.
func Succ[C Cursor[C]](c C) (C, bool) {
	if r := c.Right(); r.Valid() {
		return Smallest(r)
	}
	for {
		p := c.Parent()
		if !p.Valid() {
			return p, false
		}
		if c.At() == Left(p.At()) {
			return p, true
		}
		c = p
	}
}

// Pred returns the previous node in in-order.
func Pred[C Cursor[C]](c C) (C, bool) {
	if l := c.Left(); l.Valid() {
		return Largest(l)
	}
	for {
		p := c.Parent()
		if !p.Valid() {
			return p, false
		}
		if c.At() == Right(p.At()) {
			return p, true
		}
		c = p
	}
}
