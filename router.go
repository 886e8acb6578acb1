package trellis

// defaultThrottleInterval is the move-throttling window in milliseconds.
const defaultThrottleInterval = 33.0

// EventRouter turns raw pointer events into handler callbacks: it maps
// device coordinates to NDC, casts a camera ray against its target set,
// walks intersected ancestor chains for scannable handlers, and maintains
// per-pointer hover registries and move throttling.
//
// Routers are instance-scoped: a scene can carry several independent
// routers (one per camera viewport, for example), each with its own
// per-pointer state.
type EventRouter struct {
	scene  *Scene
	camera *Camera

	// Viewport optionally restricts coordinate mapping to a sub-rectangle
	// of the canvas (split-screen). Nil means the full canvas.
	Viewport *Rect
	// Recursive controls whether hit testing descends into target
	// subtrees. Default true.
	Recursive bool

	canvasW, canvasH float64
	targets          []*Node // nil: scene root's immediate children, live

	throttleInterval float64
	accum            float64
	throttled        map[int]bool

	// hovered is the hit registry: pointer → ordered handler chain as of
	// the last processed move.
	hovered map[int][]*Handler

	hitBuf   []Intersection
	chainBuf []*Handler

	disposed       bool
	warnedNoCamera bool
}

// newEventRouter creates a router with default configuration.
func newEventRouter(scene *Scene, camera *Camera) *EventRouter {
	return &EventRouter{
		scene:            scene,
		camera:           camera,
		Recursive:        true,
		throttleInterval: defaultThrottleInterval,
		throttled:        make(map[int]bool),
		hovered:          make(map[int][]*Handler),
	}
}

// SetCanvasSize tells the router the device size of the canvas it maps
// pointer coordinates against. Call whenever the host window resizes.
func (r *EventRouter) SetCanvasSize(w, h float64) {
	r.canvasW = w
	r.canvasH = h
}

// SetThrottleInterval sets the move-throttling window in milliseconds.
// Zero disables throttling entirely.
func (r *EventRouter) SetThrottleInterval(ms float64) {
	if ms < 0 || !isFinite(ms) {
		ms = defaultThrottleInterval
	}
	r.throttleInterval = ms
}

// SetTargets replaces the hit-testing target set. A nil slice restores the
// default: the scene root's immediate children, evaluated at dispatch time.
func (r *EventRouter) SetTargets(targets []*Node) {
	r.targets = targets
}

// Camera returns the camera this router casts rays through.
func (r *EventRouter) Camera() *Camera {
	return r.camera
}

// currentTargets resolves the live target set.
func (r *EventRouter) currentTargets() []*Node {
	if r.targets != nil {
		return r.targets
	}
	if r.scene != nil {
		return r.scene.Root().Children()
	}
	return nil
}

// Tick advances the shared throttling clock by deltaMs milliseconds.
// A non-finite delta resets the throttle state; a negative delta leaves
// the accumulator unchanged. With throttling disabled the accumulator is
// forced to zero so it can never overflow.
func (r *EventRouter) Tick(deltaMs float64) {
	if r.disposed {
		return
	}
	if !isFinite(deltaMs) {
		r.accum = 0
		clear(r.throttled)
		return
	}
	if r.throttleInterval == 0 {
		r.accum = 0
		return
	}
	if deltaMs > 0 {
		r.accum += deltaMs
	}
	if r.accum >= r.throttleInterval {
		r.accum = 0
		clear(r.throttled)
	}
}

// Dispatch feeds one raw pointer event through the router.
// x and y are device coordinates; they are ignored for PhaseCancel and
// PhaseLeave, which only clean up the pointer's bookkeeping.
func (r *EventRouter) Dispatch(phase PointerPhase, pointerID int, x, y float64) {
	if r.disposed {
		return
	}

	switch phase {
	case PhaseCancel, PhaseLeave:
		r.clearPointer(pointerID)
		return
	}

	if r.camera == nil {
		if !r.warnedNoCamera {
			r.warnedNoCamera = true
			warnf("event router has no camera; pointer events are dropped")
		}
		return
	}

	ndc := MapToNDC(r.canvasW, r.canvasH, r.Viewport, x, y)

	switch phase {
	case PhaseMove:
		r.processMove(pointerID, ndc)
	case PhaseDown:
		r.processPress(pointerID, ndc, true)
	case PhaseUp:
		r.processPress(pointerID, ndc, false)
	}
}

// Dispose detaches the router from its scene. Any Dispatch or Tick after
// disposal is a no-op, never an error.
func (r *EventRouter) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	clear(r.hovered)
	clear(r.throttled)
	if r.scene != nil {
		r.scene.removeRouter(r)
	}
}

// --- Move processing ---

// processMove hit-tests an un-throttled move and diffs the pointer's hover
// chain: stale members receive out, new members receive over. The hit
// registry is updated before any callback runs so a panicking subscriber
// cannot leave it inconsistent.
func (r *EventRouter) processMove(pointerID int, ndc Vec2) {
	if r.throttleInterval > 0 {
		if r.throttled[pointerID] {
			return
		}
		r.throttled[pointerID] = true
	}

	r.hitBuf = intersectTargets(r.camera, ndc, r.currentTargets(), r.Recursive, r.hitBuf)

	// Union the chains of every intersection, nearest-first: stacked
	// objects all receive hover.
	newChain := r.chainBuf[:0]
	for i := range r.hitBuf {
		newChain = appendChain(newChain, r.hitBuf[i].Node)
	}
	r.chainBuf = newChain

	oldChain := r.hovered[pointerID]
	if len(newChain) == 0 {
		delete(r.hovered, pointerID)
	} else {
		stored := make([]*Handler, len(newChain))
		copy(stored, newChain)
		r.hovered[pointerID] = stored
	}

	for _, h := range oldChain {
		if !containsHandler(newChain, h) {
			h.pointerOut(pointerID)
		}
	}
	for _, h := range newChain {
		if !containsHandler(oldChain, h) {
			h.pointerOver(pointerID)
		}
	}
}

// --- Press processing ---

// processPress routes a down or up to the first intersection (nearest
// first) whose ancestor chain yields any scannable handler. Intersections
// with transparent chains are skipped and the ray continues.
func (r *EventRouter) processPress(pointerID int, ndc Vec2, down bool) {
	r.hitBuf = intersectTargets(r.camera, ndc, r.currentTargets(), r.Recursive, r.hitBuf)

	for i := range r.hitBuf {
		chain := appendChain(r.chainBuf[:0], r.hitBuf[i].Node)
		r.chainBuf = chain
		if len(chain) == 0 {
			continue
		}
		for _, h := range chain {
			if down {
				h.pointerDown(pointerID)
			} else {
				h.pointerUp(pointerID)
			}
		}
		return
	}
}

// --- Cleanup ---

// clearPointer drops the pointer's entire hover chain: each member
// receives out, which also removes the pointer from its press set so a
// canceled press can never produce a click. Safe to call repeatedly; a
// second cancel or leave finds no chain and emits nothing.
func (r *EventRouter) clearPointer(pointerID int) {
	chain := r.hovered[pointerID]
	if chain == nil {
		return
	}
	delete(r.hovered, pointerID)
	for _, h := range chain {
		h.pointerOut(pointerID)
	}
}

// --- Chain helpers ---

// appendChain walks the node's ancestor chain, appending every scannable
// handler not already present in buf. Non-scannable handlers are
// transparent (as if absent); disposed or detached nodes are skipped.
func appendChain(buf []*Handler, node *Node) []*Handler {
	for n := node; n != nil; n = n.Parent {
		if n.disposed {
			continue
		}
		h := n.handler
		if h == nil || !h.Scannable || h.node == nil {
			continue
		}
		if !containsHandler(buf, h) {
			buf = append(buf, h)
		}
	}
	return buf
}

func containsHandler(chain []*Handler, h *Handler) bool {
	for _, c := range chain {
		if c == h {
			return true
		}
	}
	return false
}
