package trellis

// syntheticPointerEvent represents a single injected pointer event.
// Device coordinates are used (matching what an observer sees on screen)
// and flow through the primary router identical to real input.
type syntheticPointerEvent struct {
	phase     PointerPhase
	pointerID int
	x, y      float64
}

// InjectDown queues a pointer press at the given device coordinates for
// pointer 0. The event is consumed on the next Update call.
func (s *Scene) InjectDown(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: PhaseDown, x: x, y: y})
}

// InjectMove queues a pointer move at the given device coordinates for
// pointer 0.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: PhaseMove, x: x, y: y})
}

// InjectUp queues a pointer release at the given device coordinates for
// pointer 0.
func (s *Scene) InjectUp(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: PhaseUp, x: x, y: y})
}

// InjectCancel queues a pointer cancel for pointer 0, clearing its hover
// and press bookkeeping without a matching release.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: PhaseCancel})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same device coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectDown(x, y)
	s.InjectUp(x, y)
}

// InjectSweep queues a hover sweep: linearly interpolated moves from
// (fromX, fromY) to (toX, toY) over the given number of frames (minimum 2).
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the scene's primary router. Returns true if an event was
// consumed (real input polling should be skipped this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if len(s.routers) == 0 {
		return true
	}
	s.routers[0].Dispatch(evt.phase, evt.pointerID, evt.x, evt.y)
	return true
}
