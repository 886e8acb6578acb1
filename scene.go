package trellis

// Scene is the top-level object that owns the node tree, cameras, and event
// routers. It does not render anything: the host renderer traverses the
// tree itself and reads whatever node fields it cares about.
type Scene struct {
	root    *Node
	cameras []*Camera
	routers []*EventRouter
	driver  *InputDriver
	debug   bool

	injectQueue  []syntheticPointerEvent
	scriptRunner *ScriptRunner
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	return &Scene{root: NewGroup("root")}
}

// Root returns the scene's root group node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms, advances camera animation, ticks the
// routers' throttling clocks, and polls pointer input. dt is the elapsed
// time in seconds since the previous update, supplied by the host ticker.
func (s *Scene) Update(dt float64) {
	// Refresh world transforms first so camera follow targets and hit
	// testing have accurate positions this frame.
	updateWorldTransform(s.root, identityMat4, false)

	for _, cam := range s.cameras {
		cam.update(float32(dt))
	}
	for _, r := range s.routers {
		r.Tick(dt * 1000)
	}

	if s.scriptRunner != nil {
		s.scriptRunner.step(s)
	}
	if s.processInjectedInput() {
		return
	}
	if s.driver != nil {
		s.driver.Update()
	}
}

// NewCamera creates a camera with the given viewport and adds it to the
// scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be
// mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// NewEventRouter creates an event router casting rays through the given
// camera, registers it with the scene (so Update drives its throttling
// clock), and returns it.
func (s *Scene) NewEventRouter(camera *Camera) *EventRouter {
	r := newEventRouter(s, camera)
	s.routers = append(s.routers, r)
	return r
}

// Routers returns the scene's router list. The returned slice MUST NOT be
// mutated.
func (s *Scene) Routers() []*EventRouter {
	return s.routers
}

func (s *Scene) removeRouter(r *EventRouter) {
	for i, existing := range s.routers {
		if existing == r {
			s.routers = append(s.routers[:i], s.routers[i+1:]...)
			return
		}
	}
}

// SetInputDriver attaches an ebiten input driver polled from Update.
func (s *Scene) SetInputDriver(driver *InputDriver) {
	s.driver = driver
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and deep-tree warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
