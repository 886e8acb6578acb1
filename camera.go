package trellis

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Projection selects how a camera maps the scene onto its viewport.
type Projection uint8

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

// dollyAnim holds active dolly tweens for the camera position.
type dollyAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
	done   bool
}

// Camera describes the view into the scene: position, look-at target,
// projection, and the screen-space viewport it renders into.
type Camera struct {
	// Position is the camera's world-space location.
	Position mgl64.Vec3
	// Target is the world-space point the camera looks at.
	Target mgl64.Vec3
	// Up is the camera's up vector.
	Up mgl64.Vec3

	// Projection selects perspective or orthographic mapping.
	Projection Projection
	// FOV is the vertical field of view in radians (perspective only).
	FOV float64
	// OrthoHeight is the world-space height of the visible volume
	// (orthographic only). Width follows from the viewport aspect.
	OrthoHeight float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	followTarget *Node
	followOffset mgl64.Vec3
	followLerp   float64
	lookTarget   *Node

	viewProj    mgl64.Mat4
	invViewProj mgl64.Mat4
	invValid    bool
	cacheKey    cameraKey
	cached      bool

	dolly *dollyAnim
}

// cameraKey captures every input of the view-projection matrix so the cache
// can be invalidated by comparison instead of manual dirty flags.
type cameraKey struct {
	position, target, up mgl64.Vec3
	projection           Projection
	fov, orthoHeight     float64
	near, far            float64
	viewport             Rect
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Position:    mgl64.Vec3{0, 0, 10},
		Up:          mgl64.Vec3{0, 1, 0},
		Projection:  ProjectionPerspective,
		FOV:         math.Pi / 3,
		OrthoHeight: 10,
		Near:        0.1,
		Far:         1000,
		Viewport:    viewport,
	}
}

// LookAt points the camera at a world-space position.
func (c *Camera) LookAt(x, y, z float64) {
	c.Target = mgl64.Vec3{x, y, z}
	c.lookTarget = nil
}

// LookAtNode makes the camera track a node's world position as its look-at
// target. Tracking stops if the node is disposed or LookAt is called.
func (c *Camera) LookAtNode(node *Node) {
	c.lookTarget = node
}

// Follow makes the camera position track a target node with the given
// offset and lerp factor. A lerp of 1.0 snaps immediately; lower values
// give smoother following.
func (c *Camera) Follow(node *Node, offset mgl64.Vec3, lerp float64) {
	c.followTarget = node
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current follow target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// DollyTo animates the camera position to the given world-space point over
// duration seconds.
func (c *Camera) DollyTo(x, y, z float64, duration float32, easeFn ease.TweenFunc) {
	c.dolly = &dollyAnim{
		tweenX: gween.New(float32(c.Position.X()), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y()), float32(y), duration, easeFn),
		tweenZ: gween.New(float32(c.Position.Z()), float32(z), duration, easeFn),
	}
}

// update advances follow, look tracking, and dolly animation.
// Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		goal := c.followTarget.WorldPosition().Add(c.followOffset)
		c.Position = c.Position.Add(goal.Sub(c.Position).Mul(c.followLerp))
	}

	if c.lookTarget != nil {
		if c.lookTarget.IsDisposed() {
			c.lookTarget = nil
		} else {
			c.Target = c.lookTarget.WorldPosition()
		}
	}

	if c.dolly != nil && !c.dolly.done {
		x, doneX := c.dolly.tweenX.Update(dt)
		y, doneY := c.dolly.tweenY.Update(dt)
		z, doneZ := c.dolly.tweenZ.Update(dt)
		c.Position = mgl64.Vec3{float64(x), float64(y), float64(z)}
		if doneX && doneY && doneZ {
			c.dolly = nil
		}
	}
}

// aspect returns the viewport aspect ratio, defaulting to 1 for a
// degenerate viewport so the projection matrix stays finite.
func (c *Camera) aspect() float64 {
	if c.Viewport.Width > 0 && c.Viewport.Height > 0 {
		return c.Viewport.Width / c.Viewport.Height
	}
	return 1
}

// computeMatrices refreshes the cached view-projection and its inverse when
// any camera input changed since the last call.
func (c *Camera) computeMatrices() {
	key := cameraKey{
		position: c.Position, target: c.Target, up: c.Up,
		projection: c.Projection, fov: c.FOV, orthoHeight: c.OrthoHeight,
		near: c.Near, far: c.Far, viewport: c.Viewport,
	}
	if c.cached && key == c.cacheKey {
		return
	}
	c.cacheKey = key
	c.cached = true

	var proj mgl64.Mat4
	if c.Projection == ProjectionOrthographic {
		halfH := c.OrthoHeight / 2
		halfW := halfH * c.aspect()
		proj = mgl64.Ortho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
	} else {
		proj = mgl64.Perspective(c.FOV, c.aspect(), c.Near, c.Far)
	}
	view := mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.viewProj = proj.Mul4(view)

	det := c.viewProj.Det()
	if det > -1e-12 && det < 1e-12 || math.IsNaN(det) {
		c.invValid = false
		return
	}
	c.invViewProj = c.viewProj.Inv()
	c.invValid = true
}

// RayFromNDC builds the world-space ray passing through the given
// normalized device coordinate by unprojecting points on the near and far
// clip planes. Returns false if the camera matrices are degenerate or the
// unprojection produced non-finite values.
func (c *Camera) RayFromNDC(ndc Vec2) (Ray, bool) {
	c.computeMatrices()
	if !c.invValid {
		return Ray{}, false
	}

	near, okNear := unproject(c.invViewProj, ndc, -1)
	far, okFar := unproject(c.invViewProj, ndc, 1)
	if !okNear || !okFar {
		return Ray{}, false
	}

	dir := far.Sub(near)
	length := dir.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Mul(1 / length)}, true
}

// Project maps a world-space point to normalized device coordinates, the
// forward counterpart of RayFromNDC. Host renderers use it to place visuals
// for nodes. Returns false when the point is behind the camera or the view
// is degenerate.
func (c *Camera) Project(world mgl64.Vec3) (Vec2, bool) {
	c.computeMatrices()
	v := c.viewProj.Mul4x1(mgl64.Vec4{world.X(), world.Y(), world.Z(), 1})
	if v.W() <= 0 {
		return Vec2{}, false
	}
	ndc := Vec2{X: v.X() / v.W(), Y: v.Y() / v.W()}
	if !isFinite(ndc.X) || !isFinite(ndc.Y) {
		return Vec2{}, false
	}
	return ndc, true
}

// unproject maps an NDC coordinate at the given clip-space depth back to
// world space through the inverse view-projection matrix.
func unproject(inv mgl64.Mat4, ndc Vec2, depth float64) (mgl64.Vec3, bool) {
	v := inv.Mul4x1(mgl64.Vec4{ndc.X, ndc.Y, depth, 1})
	if v.W() == 0 {
		return mgl64.Vec3{}, false
	}
	p := mgl64.Vec3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
	if !isFinite(p.X()) || !isFinite(p.Y()) || !isFinite(p.Z()) {
		return mgl64.Vec3{}, false
	}
	return p, true
}
