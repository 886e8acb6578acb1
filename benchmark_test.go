package trellis

import (
	"testing"
)

// setupBenchScene creates a scene with n interactive cube meshes laid out on
// a grid facing the camera, plus a router mapped to a 1280x720 canvas.
func setupBenchScene(n int) (*Scene, *EventRouter) {
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 1280, Height: 720})
	cam.LookAt(0, 0, 0)

	root := s.Root()
	for i := 0; i < n; i++ {
		m := NewMesh("m", unitBox())
		m.SetPosition(float64(i%100)*3, float64(i/100)*3, 0)
		NewHandler(m, VariantButton)
		root.AddChild(m)
	}

	r := s.NewEventRouter(cam)
	r.SetCanvasSize(1280, 720)
	r.SetThrottleInterval(0)
	s.Update(0.016)
	return s, r
}

// --- Hit-testing benchmarks ---

func BenchmarkIntersectTargets_1000Meshes(b *testing.B) {
	s, r := setupBenchScene(1000)
	cam := r.Camera()
	targets := s.Root().Children()

	var buf []Intersection
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = intersectTargets(cam, Vec2{0, 0}, targets, true, buf)
	}
}

func BenchmarkDispatchMove_1000Meshes(b *testing.B) {
	_, r := setupBenchScene(1000)

	// Warm up: first dispatch grows the hit and chain buffers.
	r.Dispatch(PhaseMove, 0, 640, 360)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Alternate on and off target so the hover diff always has work.
		if i%2 == 0 {
			r.Dispatch(PhaseMove, 0, 640, 360)
		} else {
			r.Dispatch(PhaseMove, 0, 0, 0)
		}
	}
}

func BenchmarkDispatchClick(b *testing.B) {
	_, r := setupBenchScene(100)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Dispatch(PhaseDown, 0, 640, 360)
		r.Dispatch(PhaseUp, 0, 640, 360)
	}
}

// --- Transform benchmarks ---

func BenchmarkUpdateWorldTransform_10000Static(b *testing.B) {
	s, _ := setupBenchScene(10000)
	root := s.Root()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		updateWorldTransform(root, identityMat4, false)
	}
}

func BenchmarkUpdateWorldTransform_10000Dirty(b *testing.B) {
	s, _ := setupBenchScene(10000)
	root := s.Root()
	children := root.Children()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, child := range children {
			child.transformDirty = true
		}
		updateWorldTransform(root, identityMat4, false)
	}
}
