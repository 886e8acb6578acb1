package trellis

import (
	"testing"
)

func newRadioSet(n int) (*SelectionGroup, []*Handler) {
	g := NewSelectionGroup()
	members := make([]*Handler, n)
	for i := range members {
		members[i] = NewHandler(NewMesh("radio", unitBox()), VariantRadio)
		g.Add(members[i])
	}
	return g, members
}

func TestGroupSelectExclusive(t *testing.T) {
	g, members := newRadioSet(3)
	a, b := members[0], members[1]

	g.Select(a)
	if g.Selected() != a || !a.Selected() || !a.Frozen() {
		t.Fatal("a should be selected and frozen")
	}

	g.Select(b)
	if g.Selected() != b {
		t.Error("selection did not move to b")
	}
	if a.Selected() || a.Frozen() {
		t.Error("a should be deselected and unfrozen")
	}
	if !b.Selected() || !b.Frozen() {
		t.Error("b should be selected and frozen")
	}

	selectedCount := 0
	for _, m := range members {
		if m.Selected() {
			selectedCount++
		}
	}
	if selectedCount != 1 {
		t.Errorf("selected members = %d, want 1", selectedCount)
	}
}

func TestGroupRepeatSelectNoOp(t *testing.T) {
	g, members := newRadioSet(2)

	groupEvents := 0
	g.OnSelect(func(Event) { groupEvents++ })

	g.Select(members[0])
	g.Select(members[0])
	if groupEvents != 1 {
		t.Errorf("group events = %d, want 1 (repeat select is a no-op)", groupEvents)
	}
}

func TestGroupClickDrivesSelection(t *testing.T) {
	g, members := newRadioSet(2)
	a, b := members[0], members[1]

	var lastSelected *Handler
	g.OnSelect(func(ev Event) { lastSelected = ev.Target })

	// Click a.
	a.pointerDown(0)
	a.pointerUp(0)
	if g.Selected() != a || lastSelected != a {
		t.Fatal("clicking a should select it in the group")
	}

	// The selected member is locked: clicking it again cannot toggle off.
	a.pointerDown(0)
	a.pointerUp(0)
	if !a.Selected() || g.Selected() != a {
		t.Error("locked selected member must not toggle off")
	}

	// Click b: exclusivity transfers.
	b.pointerDown(3)
	b.pointerUp(3)
	if g.Selected() != b || a.Selected() {
		t.Error("clicking b should move the selection")
	}
	if lastSelected != b {
		t.Error("group event target should be b")
	}
}

func TestGroupSelectNonMemberIgnored(t *testing.T) {
	g, members := newRadioSet(2)
	stranger := NewHandler(NewMesh("stranger", unitBox()), VariantRadio)

	g.Select(members[0])
	g.Select(stranger) // warned and ignored

	if g.Selected() != members[0] {
		t.Error("selecting a non-member must not change the selection")
	}
	if stranger.Selected() {
		t.Error("non-member must not be selected")
	}
}

func TestGroupAddDuplicateNoOp(t *testing.T) {
	g, members := newRadioSet(1)
	g.Add(members[0])
	if len(g.Members()) != 1 {
		t.Errorf("members = %d, want 1", len(g.Members()))
	}
}

func TestGroupRemove(t *testing.T) {
	g, members := newRadioSet(2)
	a, b := members[0], members[1]

	g.Select(a)
	g.Remove(a)
	if g.Selected() != nil {
		t.Error("removing the selected member clears the group selection")
	}
	if !a.Selected() || !a.Frozen() {
		t.Error("the removed member keeps its own flags")
	}

	// A removed member's clicks no longer drive the group.
	a.Unfreeze()
	a.ForceSelected(false)
	a.pointerDown(0)
	a.pointerUp(0)
	if g.Selected() != nil {
		t.Error("removed member still drives the group")
	}

	// Remaining members still work.
	b.pointerDown(0)
	b.pointerUp(0)
	if g.Selected() != b {
		t.Error("remaining member selection broken")
	}
}

func TestGroupCheckboxMembers(t *testing.T) {
	// A group can manage checkbox variants too: exclusivity comes from the
	// group, not the variant.
	g := NewSelectionGroup()
	a := NewHandler(NewMesh("a", unitBox()), VariantCheckBox)
	b := NewHandler(NewMesh("b", unitBox()), VariantCheckBox)
	g.Add(a)
	g.Add(b)

	a.pointerDown(0)
	a.pointerUp(0)
	b.pointerDown(0)
	b.pointerUp(0)

	if a.Selected() || !b.Selected() || g.Selected() != b {
		t.Errorf("checkbox group state: a=%v b=%v", a.Selected(), b.Selected())
	}
}

func TestGroupDeselectEventDoesNotDrive(t *testing.T) {
	// Only Selected=true events move the group; a member's deselect event
	// (checkbox toggling off outside the lock) is ignored.
	g := NewSelectionGroup()
	a := NewHandler(NewMesh("a", unitBox()), VariantCheckBox)
	g.Add(a)

	a.pointerDown(0)
	a.pointerUp(0)
	if g.Selected() != a {
		t.Fatal("first click selects")
	}

	// The checkbox member is now frozen by the group, so a click cannot
	// toggle it; deselect programmatically and confirm the group ignores it.
	a.Unfreeze()
	a.pointerDown(0)
	a.pointerUp(0)
	if a.Selected() {
		t.Fatal("unfrozen checkbox should toggle off")
	}
	if g.Selected() != a {
		t.Error("deselect events must not change the group's selected member")
	}
}
