// Package trellis adds pointer interaction to a retained-mode 3D scene
// graph: clickable meshes, billboard sprites, and groups with hover, press,
// click, toggle, and radio-group selection. It renders nothing itself; the
// host renderer reads node materials and draws however it likes.
//
// # Quick start
//
// Build a scene, attach a handler to a node, and wire a router to a
// camera:
//
//	scene := trellis.NewScene()
//	cam := scene.NewCamera(trellis.Rect{Width: 640, Height: 480})
//	cam.Position = mgl64.Vec3{0, 0, 10}
//	cam.LookAt(0, 0, 0)
//
//	box := trellis.NewMesh("button", trellis.AABB{
//		Min: mgl64.Vec3{-1, -1, -1},
//		Max: mgl64.Vec3{1, 1, 1},
//	})
//	scene.Root().AddChild(box)
//
//	h := trellis.NewHandler(box, trellis.VariantButton)
//	h.OnClick(func(ev trellis.Event) { /* ... */ })
//
//	router := scene.NewEventRouter(cam)
//	router.SetCanvasSize(640, 480)
//
// Feed the router from your platform loop: call [Scene.Update] with the
// frame delta and dispatch pointer events through [EventRouter.Dispatch],
// or attach [NewInputDriver] to poll Ebitengine input automatically.
//
// # Handlers
//
// Every interactive object carries a [Handler] created with one of three
// variants: [VariantButton] (momentary), [VariantCheckBox] (click toggles
// Selected and emits a select event), and [VariantRadio] (a checkbox that
// ignores input while selected and frozen). [SelectionGroup] aggregates
// checkbox/radio handlers into a mutually exclusive set.
//
// Handlers delegate their appearance to a [MaterialProvider];
// [StateMaterialSet] is the standard implementation mapping
// (state, enabled, selected) to a [Material].
//
// # Routing
//
// An [EventRouter] maps device coordinates to normalized device
// coordinates, casts a ray through its camera, and walks each intersected
// node's ancestor chain delivering events to every scannable handler.
// Moves are throttled (33 ms by default); hover is tracked per pointer so
// multi-touch works: each touch has its own over/out bookkeeping, and a
// completed click suppresses other pointers' pending presses on the same
// handler.
package trellis
