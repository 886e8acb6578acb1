package trellis

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestTouchSlotStableMapping(t *testing.T) {
	d := NewInputDriver(nil)

	slotA, fresh := d.touchSlot(ebiten.TouchID(100))
	if !fresh || slotA != 1 {
		t.Fatalf("first touch: slot=%d fresh=%v, want 1 true", slotA, fresh)
	}

	slotB, fresh := d.touchSlot(ebiten.TouchID(200))
	if !fresh || slotB != 2 {
		t.Fatalf("second touch: slot=%d fresh=%v, want 2 true", slotB, fresh)
	}

	// A known ID keeps its slot.
	slot, fresh := d.touchSlot(ebiten.TouchID(100))
	if fresh || slot != slotA {
		t.Errorf("repeat lookup: slot=%d fresh=%v, want %d false", slot, fresh, slotA)
	}

	// Releasing a slot allows reuse by a new ID.
	d.touchUsed[slotA] = false
	d.touchMap[slotA] = 0
	slot, fresh = d.touchSlot(ebiten.TouchID(300))
	if !fresh || slot != slotA {
		t.Errorf("reused slot=%d fresh=%v, want %d true", slot, fresh, slotA)
	}
}

func TestTouchSlotExhaustion(t *testing.T) {
	d := NewInputDriver(nil)

	// Slots 1-9: the tenth concurrent touch is refused.
	for i := 0; i < maxPointers-1; i++ {
		if slot, _ := d.touchSlot(ebiten.TouchID(i)); slot < 0 {
			t.Fatalf("touch %d refused too early", i)
		}
	}
	if slot, _ := d.touchSlot(ebiten.TouchID(99)); slot != -1 {
		t.Errorf("overflow touch got slot %d, want -1", slot)
	}
}

func TestInputDriverReset(t *testing.T) {
	rig := newTestRig()
	driver := NewInputDriver(rig.router)

	// Simulate an active mouse press over the button.
	rig.router.Dispatch(PhaseMove, 0, hitX, hitY)
	rig.router.Dispatch(PhaseDown, 0, hitX, hitY)
	driver.mouseSeen = true
	driver.mouseDown = true

	driver.Reset()
	if rig.button.IsOver() || rig.button.IsPress() {
		t.Error("reset should cancel the mouse pointer downstream")
	}
	if driver.mouseDown {
		t.Error("reset should clear the driver's press edge state")
	}

	// A release after reset must not click.
	rig.router.Dispatch(PhaseUp, 0, hitX, hitY)
	if rig.log.count(EventClick) != 0 {
		t.Error("canceled press clicked after reset")
	}
}

func TestInputDriverNilRouter(t *testing.T) {
	d := NewInputDriver(nil)
	d.Update() // no-op without a router, no panic
	d.Reset()
}
