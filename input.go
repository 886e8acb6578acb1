package trellis

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxPointers bounds concurrent pointer slots: slot 0 is the mouse,
// slots 1-9 are touches.
const maxPointers = 10

// InputDriver polls Ebitengine mouse and touch state each frame and feeds
// edge-detected pointer events into an EventRouter. It is the only part of
// trellis that talks to platform input APIs; everything downstream sees
// Dispatch calls.
type InputDriver struct {
	router *EventRouter

	mouseDown     bool
	mouseX        float64
	mouseY        float64
	mouseSeen     bool
	touchMap      [maxPointers]ebiten.TouchID
	touchUsed     [maxPointers]bool
	touchLastX    [maxPointers]float64
	touchLastY    [maxPointers]float64
	prevTouchIDs  []ebiten.TouchID
}

// NewInputDriver creates a driver dispatching into the given router.
// A nil router is a non-fatal warning: polling becomes a no-op.
func NewInputDriver(router *EventRouter) *InputDriver {
	if router == nil {
		warnf("input driver created without a router; pointer input is ignored")
	}
	return &InputDriver{router: router}
}

// Update polls the current input state and dispatches any edges.
// Call once per frame; Scene.Update does this when the driver is attached.
func (d *InputDriver) Update() {
	if d.router == nil {
		return
	}

	w, h := ebiten.WindowSize()
	d.router.SetCanvasSize(float64(w), float64(h))

	d.pollMouse()
	d.pollTouches()
}

// Reset cancels every active pointer, clearing hover and press bookkeeping
// downstream. Call when the application loses focus.
func (d *InputDriver) Reset() {
	if d.router == nil {
		return
	}
	if d.mouseDown || d.mouseSeen {
		d.router.Dispatch(PhaseCancel, 0, 0, 0)
		d.mouseDown = false
		d.mouseSeen = false
	}
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] {
			d.router.Dispatch(PhaseCancel, i, 0, 0)
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// pollMouse handles pointer 0. Moves are dispatched before press edges so
// hover bookkeeping is current when down arrives, matching platform event
// order.
func (d *InputDriver) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if !d.mouseSeen || x != d.mouseX || y != d.mouseY {
		d.router.Dispatch(PhaseMove, 0, x, y)
		d.mouseX, d.mouseY = x, y
		d.mouseSeen = true
	}

	if pressed && !d.mouseDown {
		d.router.Dispatch(PhaseDown, 0, x, y)
		d.mouseDown = true
	} else if !pressed && d.mouseDown {
		d.router.Dispatch(PhaseUp, 0, x, y)
		d.mouseDown = false
	}
}

// pollTouches handles pointers 1-9. Each platform touch ID is pinned to a
// stable slot for its lifetime; a touch that vanishes from the platform
// list releases at its last known position.
func (d *InputDriver) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(d.prevTouchIDs[:0])
	d.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot, fresh := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		if fresh {
			d.router.Dispatch(PhaseMove, slot, x, y)
			d.router.Dispatch(PhaseDown, slot, x, y)
		} else if x != d.touchLastX[slot] || y != d.touchLastY[slot] {
			d.router.Dispatch(PhaseMove, slot, x, y)
		}
		d.touchLastX[slot] = x
		d.touchLastY[slot] = y
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && !activeSlots[i] {
			d.router.Dispatch(PhaseUp, i, d.touchLastX[i], d.touchLastY[i])
			d.router.Dispatch(PhaseLeave, i, 0, 0)
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one (fresh=true).
// Returns -1 if all slots are in use.
func (d *InputDriver) touchSlot(tid ebiten.TouchID) (slot int, fresh bool) {
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}
