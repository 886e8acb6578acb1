package trellis

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for device points and normalized device
// coordinates throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in device coordinates. The origin is at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes hit-testing behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup     NodeType = iota // container node with no geometry of its own
	NodeTypeMesh                      // solid geometry bounded by a local AABB
	NodeTypeBillboard                 // camera-facing quad bounded by a thin AABB
)

// PointerPhase identifies a raw pointer event fed into an EventRouter.
type PointerPhase uint8

const (
	PhaseDown   PointerPhase = iota // pointer pressed
	PhaseUp                         // pointer released
	PhaseMove                       // pointer moved (pressed or hovering)
	PhaseCancel                     // platform canceled the pointer stream
	PhaseLeave                      // pointer left the canvas
)

// EventType identifies a semantic interaction event emitted by a Handler.
type EventType uint8

const (
	EventDown   EventType = iota // pointer pressed over the handler
	EventUp                      // pointer released over the handler
	EventOver                    // pointer entered the handler
	EventOut                     // pointer left the handler
	EventClick                   // press then release by the same pointer
	EventSelect                  // selection flag changed via a pointer click
)

// InteractionState is a handler's current visual/interaction mode.
// Priority when recomputing: StateDisable > StateDown > StateOver > StateNormal.
type InteractionState uint8

const (
	StateNormal  InteractionState = iota // idle
	StateOver                            // at least one pointer hovering
	StateDown                            // at least one pointer pressed
	StateDisable                         // handler disabled, overrides press/hover
)

// String returns the state name for debug output.
func (s InteractionState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateOver:
		return "over"
	case StateDown:
		return "down"
	case StateDisable:
		return "disable"
	default:
		return "unknown"
	}
}

// Variant selects a Handler's click behavior. A single Handler type covers
// all three; the variant only changes the click hook and the activity check.
type Variant uint8

const (
	VariantButton   Variant = iota // momentary: click emits EventClick only
	VariantCheckBox                // click toggles Selected and emits EventSelect
	VariantRadio                   // checkbox that ignores input while selected+frozen
)

// Event carries a semantic interaction event to subscribers.
// Selected is only meaningful for EventSelect.
type Event struct {
	Type      EventType
	Target    *Handler
	PointerID int
	Selected  bool
}

// EntityStore is the interface for optional ECS integration. When set on a
// Handler, every emitted Event is forwarded after the handler's own
// subscribers have run.
type EntityStore interface {
	EmitEvent(event Event)
}
