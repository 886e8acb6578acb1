package trellis

import (
	"testing"
)

func TestAddChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewMesh("child", unitBox())

	parent.AddChild(child)
	if parent.NumChildren() != 1 {
		t.Fatalf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) mismatch")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGroup("child")

	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Error("child should be removed from its old parent")
	}
	if b.NumChildren() != 1 || child.Parent != b {
		t.Error("child not attached to new parent")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewGroup("parent").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	child.AddChild(parent)
}

func TestAddChildSelfPanics(t *testing.T) {
	n := NewGroup("n")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for self-parenting")
		}
	}()
	n.AddChild(n)
}

func TestAddChildAt(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	parent.AddChild(a)
	parent.AddChild(c)
	parent.AddChildAt(b, 1)

	want := []*Node{a, b, c}
	for i, n := range want {
		if parent.ChildAt(i) != n {
			t.Errorf("ChildAt(%d) = %s, want %s", i, parent.ChildAt(i).Name, n.Name)
		}
	}
}

func TestAddChildAtOutOfRangePanics(t *testing.T) {
	parent := NewGroup("parent")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for index out of range")
		}
	}()
	parent.AddChildAt(NewGroup("x"), 5)
}

func TestRemoveChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	parent.RemoveChild(child)
	if parent.NumChildren() != 0 {
		t.Error("child not removed")
	}
	if child.Parent != nil {
		t.Error("child.Parent not cleared")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGroup("child")
	a.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong parent")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	parent.AddChild(a)
	parent.AddChild(b)

	got := parent.RemoveChildAt(0)
	if got != a {
		t.Error("RemoveChildAt returned wrong node")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Error("remaining children wrong")
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	child.RemoveFromParent()
	if parent.NumChildren() != 0 || child.Parent != nil {
		t.Error("RemoveFromParent did not detach")
	}

	// No parent: no-op, no panic.
	child.RemoveFromParent()
}

func TestRemoveChildren(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Error("children not removed")
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("child parents not cleared")
	}
	if a.IsDisposed() || b.IsDisposed() {
		t.Error("RemoveChildren must not dispose children")
	}
}

func TestDispose(t *testing.T) {
	parent := NewGroup("parent")
	child := NewMesh("child", unitBox())
	grandchild := NewGroup("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()
	if parent.NumChildren() != 0 {
		t.Error("disposed node not removed from parent")
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("disposal should recurse")
	}
	if child.ID != 0 {
		t.Error("disposed node keeps its ID")
	}

	// Second dispose is a no-op.
	child.Dispose()
}

func TestDisposeDetachesHandler(t *testing.T) {
	node := NewMesh("button", unitBox())
	h := NewHandler(node, VariantButton)
	node.Dispose()

	if node.Handler() != nil {
		t.Error("handler reference should be cleared on dispose")
	}
	if h.Node() != nil {
		t.Error("handler should forget its node on detach")
	}
}

func TestDebugAddChildDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	parent := NewGroup("parent")
	child := NewGroup("child")
	child.Dispose()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for disposed child in debug mode")
		}
	}()
	parent.AddChild(child)
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	if a.ID == b.ID {
		t.Error("node IDs must be unique")
	}
	if a.ID == 0 || b.ID == 0 {
		t.Error("live nodes must have nonzero IDs")
	}
}
