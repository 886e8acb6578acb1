package trellis

// SelectionGroup enforces radio-button semantics over a set of checkbox or
// radio handlers: at most one member is selected, and the selected member
// is frozen so pointer input cannot toggle it off. The group is built
// entirely on the handlers' public select events.
type SelectionGroup struct {
	members  []*Handler
	handles  []CallbackHandle
	selected *Handler
	subs     handlerRegistry
}

// NewSelectionGroup creates an empty group.
func NewSelectionGroup() *SelectionGroup {
	return &SelectionGroup{}
}

// Add registers a handler as a group member and subscribes to its select
// event. Adding the same handler twice is a no-op.
func (g *SelectionGroup) Add(h *Handler) {
	for _, m := range g.members {
		if m == h {
			return
		}
	}
	g.members = append(g.members, h)
	g.handles = append(g.handles, h.OnSelect(func(ev Event) {
		if ev.Selected {
			g.applySelection(ev.Target, ev.PointerID)
		}
	}))
}

// Remove unregisters a handler from the group. The member keeps its
// current selected/frozen flags; the group merely stops managing it.
func (g *SelectionGroup) Remove(h *Handler) {
	for i, m := range g.members {
		if m == h {
			g.handles[i].Remove()
			g.members = append(g.members[:i], g.members[i+1:]...)
			g.handles = append(g.handles[:i], g.handles[i+1:]...)
			if g.selected == h {
				g.selected = nil
			}
			return
		}
	}
}

// Members returns the member list. The returned slice MUST NOT be mutated.
func (g *SelectionGroup) Members() []*Handler {
	return g.members
}

// Selected returns the currently selected member, or nil.
func (g *SelectionGroup) Selected() *Handler {
	return g.selected
}

// Select programmatically selects a member. Selecting a handler not
// registered in the group logs a warning and is ignored.
func (g *SelectionGroup) Select(h *Handler) {
	for _, m := range g.members {
		if m == h {
			g.applySelection(h, 0)
			return
		}
	}
	warnf("selecting a handler that is not a member of this group (node %q)", handlerNodeName(h))
}

// OnSelect registers a callback for the group's own select event, emitted
// whenever the selected member changes. The event's Target is the newly
// selected member.
func (g *SelectionGroup) OnSelect(fn func(Event)) CallbackHandle {
	return g.subs.add(EventSelect, fn)
}

// applySelection makes m the single selected-and-frozen member. A repeat
// selection of the already selected-and-frozen member is a no-op: no
// duplicate group event fires.
func (g *SelectionGroup) applySelection(m *Handler, pointerID int) {
	if g.selected == m && m.Selected() && m.Frozen() {
		return
	}
	for _, other := range g.members {
		if other == m {
			continue
		}
		other.ForceSelected(false)
		other.Unfreeze()
	}
	m.ForceSelected(true)
	m.Freeze()
	g.selected = m

	ev := Event{Type: EventSelect, Target: m, PointerID: pointerID, Selected: true}
	for _, sub := range g.subs.sel {
		sub.fn(ev)
	}
}

func handlerNodeName(h *Handler) string {
	if h == nil || h.node == nil {
		return "<detached>"
	}
	return h.node.Name
}
