package trellis

// --- Callback registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	down   []eventHandler
	up     []eventHandler
	over   []eventHandler
	out    []eventHandler
	click  []eventHandler
	sel    []eventHandler
	nextID uint32
}

func (r *handlerRegistry) slot(event EventType) *[]eventHandler {
	switch event {
	case EventDown:
		return &r.down
	case EventUp:
		return &r.up
	case EventOver:
		return &r.over
	case EventOut:
		return &r.out
	case EventClick:
		return &r.click
	case EventSelect:
		return &r.sel
	}
	return nil
}

func (r *handlerRegistry) add(event EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	slot := r.slot(event)
	*slot = append(*slot, eventHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	slot := h.reg.slot(h.event)
	if slot == nil {
		return
	}
	s := *slot
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			*slot = s[:len(s)-1]
			return
		}
	}
}

// --- Handler ---

// Handler pairs a scene node with the interaction state machine reacting to
// routed pointer events. One Handler type covers button, checkbox, and
// radio behavior via its Variant; the variant changes only the click hook
// and the activity check, not the event plumbing.
type Handler struct {
	node    *Node
	variant Variant

	// Scannable controls whether the router's ancestor walk delivers
	// events to this handler. A non-scannable handler is transparent:
	// treated as if no handler were attached at all.
	Scannable bool

	enabled  bool
	frozen   bool
	selected bool
	state    InteractionState

	press map[int]struct{}
	hover map[int]struct{}

	provider MaterialProvider
	store    EntityStore
	subs     handlerRegistry
}

// NewHandler creates a handler of the given variant and attaches it to
// node. A nil node is a non-fatal warning: the handler works but can never
// be reached by a router until a node owns it.
func NewHandler(node *Node, variant Variant) *Handler {
	h := &Handler{
		node:      node,
		variant:   variant,
		Scannable: true,
		enabled:   true,
		state:     StateNormal,
		press:     make(map[int]struct{}),
		hover:     make(map[int]struct{}),
	}
	if node == nil {
		warnf("handler created without a node; it will not receive routed events")
	} else {
		node.handler = h
	}
	return h
}

// Node returns the scene node this handler is attached to, or nil.
func (h *Handler) Node() *Node {
	return h.node
}

// Variant returns the handler's click behavior variant.
func (h *Handler) Variant() Variant {
	return h.variant
}

// State returns the current interaction state.
func (h *Handler) State() InteractionState {
	return h.state
}

// IsOver reports whether any pointer is currently hovering the handler.
func (h *Handler) IsOver() bool {
	return len(h.hover) > 0
}

// IsPress reports whether any pointer currently presses the handler.
func (h *Handler) IsPress() bool {
	return len(h.press) > 0
}

// Enabled reports whether the handler accepts pointer interaction.
func (h *Handler) Enabled() bool {
	return h.enabled
}

// Frozen reports whether the handler is frozen (input suspended without
// entering the disable state).
func (h *Handler) Frozen() bool {
	return h.frozen
}

// Selected reports the selection flag (checkbox and radio variants).
func (h *Handler) Selected() bool {
	return h.selected
}

// SetMaterialProvider sets the visual collaborator and refreshes the node's
// material immediately.
func (h *Handler) SetMaterialProvider(p MaterialProvider) {
	h.provider = p
	h.refreshMaterial()
}

// SetEntityStore sets the optional ECS bridge. Every emitted event is
// forwarded after the handler's own subscribers have run.
func (h *Handler) SetEntityStore(store EntityStore) {
	h.store = store
}

// --- Event subscription ---

// OnDown registers a callback for EventDown.
func (h *Handler) OnDown(fn func(Event)) CallbackHandle { return h.subs.add(EventDown, fn) }

// OnUp registers a callback for EventUp.
func (h *Handler) OnUp(fn func(Event)) CallbackHandle { return h.subs.add(EventUp, fn) }

// OnOver registers a callback for EventOver.
func (h *Handler) OnOver(fn func(Event)) CallbackHandle { return h.subs.add(EventOver, fn) }

// OnOut registers a callback for EventOut.
func (h *Handler) OnOut(fn func(Event)) CallbackHandle { return h.subs.add(EventOut, fn) }

// OnClick registers a callback for EventClick.
func (h *Handler) OnClick(fn func(Event)) CallbackHandle { return h.subs.add(EventClick, fn) }

// OnSelect registers a callback for EventSelect.
func (h *Handler) OnSelect(fn func(Event)) CallbackHandle { return h.subs.add(EventSelect, fn) }

// --- Activity ---

// active reports whether routed events may change state or emit.
// Hover bookkeeping bypasses this so the visual state is correct
// immediately upon re-enable.
func (h *Handler) active() bool {
	return h.enabled && !h.frozen
}

// locked reports whether the handler ignores pointer input entirely.
// Only the radio variant locks: a selected-and-frozen radio member cannot
// be toggled off by the user, and does not even track hover.
func (h *Handler) locked() bool {
	return h.variant == VariantRadio && h.selected && h.frozen
}

// --- Routed event entry points (called by EventRouter) ---

// pointerOver adds p to the hover set. The set mutates even while
// inactive; state recomputation and emission happen only when active.
func (h *Handler) pointerOver(p int) {
	if h.locked() {
		return
	}
	h.hover[p] = struct{}{}
	if !h.active() {
		return
	}
	h.applyState(h.computeState())
	h.emit(Event{Type: EventOver, Target: h, PointerID: p})
}

// pointerOut removes p from the hover set and, so a release outside the
// handler can never click, from the press set as well.
func (h *Handler) pointerOut(p int) {
	if h.locked() {
		return
	}
	delete(h.hover, p)
	delete(h.press, p)
	if !h.active() {
		return
	}
	h.applyState(h.computeState())
	h.emit(Event{Type: EventOut, Target: h, PointerID: p})
}

func (h *Handler) pointerDown(p int) {
	if h.locked() || !h.active() {
		return
	}
	h.press[p] = struct{}{}
	h.applyState(StateDown)
	h.emit(Event{Type: EventDown, Target: h, PointerID: p})
}

// pointerUp completes a press. The pointer is removed from the press set
// unconditionally, even while inactive, so no stale press survives a
// disable/enable cycle. If p had performed the down, the entire press set
// is cleared (other pointers still pressing will not produce their own
// click), then up, the variant click hook, and click are delivered in
// that order.
func (h *Handler) pointerUp(p int) {
	if h.locked() {
		return
	}
	_, wasPressed := h.press[p]
	delete(h.press, p)
	if !h.active() || !wasPressed {
		return
	}

	clear(h.press)
	h.applyState(h.computeState())
	h.emit(Event{Type: EventUp, Target: h, PointerID: p})
	h.clickHook(p)
	h.emit(Event{Type: EventClick, Target: h, PointerID: p})
}

// clickHook runs variant-specific behavior between up and click.
func (h *Handler) clickHook(p int) {
	switch h.variant {
	case VariantCheckBox, VariantRadio:
		h.selected = !h.selected
		h.refreshMaterial()
		h.emit(Event{Type: EventSelect, Target: h, PointerID: p, Selected: h.selected})
	}
}

// --- Explicit state control ---

// Enable re-activates the handler and recomputes state from whatever
// hover/press membership already exists. No events are emitted; a fresh
// move is required before over fires again.
func (h *Handler) Enable() {
	h.enabled = true
	h.applyState(h.computeState())
}

// Disable clears both pointer sets and forces the disable state.
// No out events fire.
func (h *Handler) Disable() {
	h.enabled = false
	clear(h.press)
	clear(h.hover)
	h.applyState(StateDisable)
}

// SetEnabled switches between Enable and Disable.
func (h *Handler) SetEnabled(enabled bool) {
	if enabled {
		h.Enable()
	} else {
		h.Disable()
	}
}

// Freeze suspends interaction without changing the visual state. Both
// pointer sets are cleared without emitting.
func (h *Handler) Freeze() {
	h.frozen = true
	clear(h.press)
	clear(h.hover)
}

// Unfreeze resumes interaction. Hover and press membership are not
// resynthesized; a new pointer event is required.
func (h *Handler) Unfreeze() {
	h.frozen = false
}

// SetSelected assigns the selection flag programmatically. Gated by
// enabled && !frozen; updates the visual state but never emits EventSelect.
func (h *Handler) SetSelected(selected bool) {
	if !h.active() {
		return
	}
	h.selected = selected
	h.refreshMaterial()
}

// ForceSelected assigns the selection flag bypassing the enabled/frozen
// gate. Used by SelectionGroup and for external force-sets on frozen radio
// members. Never emits.
func (h *Handler) ForceSelected(selected bool) {
	h.selected = selected
	h.refreshMaterial()
}

// --- Internals ---

// computeState derives the state from set membership.
// Priority: disable > down > over > normal.
func (h *Handler) computeState() InteractionState {
	switch {
	case !h.enabled:
		return StateDisable
	case len(h.press) > 0:
		return StateDown
	case len(h.hover) > 0:
		return StateOver
	default:
		return StateNormal
	}
}

func (h *Handler) applyState(state InteractionState) {
	h.state = state
	h.refreshMaterial()
}

func (h *Handler) refreshMaterial() {
	if h.provider == nil || h.node == nil || h.node.disposed {
		return
	}
	h.node.Material = h.provider.Material(h.state, h.enabled, h.selected)
}

// emit delivers the event to subscribers in registration order, then to the
// ECS bridge. Set mutations always precede this call, so a panicking
// subscriber cannot leave the handler inconsistent.
func (h *Handler) emit(ev Event) {
	slot := h.subs.slot(ev.Type)
	if slot != nil {
		for _, sub := range *slot {
			sub.fn(ev)
		}
	}
	if h.store != nil {
		h.store.EmitEvent(ev)
	}
}

// detach is called when the owning node is disposed.
func (h *Handler) detach() {
	h.node = nil
	clear(h.press)
	clear(h.hover)
}
