package trellis

import (
	"github.com/go-gl/mathgl/mgl64"
)

// identityMat4 is the identity transform.
var identityMat4 = mgl64.Ident4()

// computeLocalTransform composes the node's local matrix from its transform
// properties.
//
// Composition order: Translate * Rotate * Scale.
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Mat4()
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// transformPoint applies a 4x4 transform to a point (w = 1).
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{p.X(), p.Y(), p.Z(), 1})
	return mgl64.Vec3{v.X(), v.Y(), v.Z()}
}

// transformDirection applies a 4x4 transform to a direction (w = 0).
// The result is not normalized.
func transformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{d.X(), d.Y(), d.Z(), 0})
	return mgl64.Vec3{v.X(), v.Y(), v.Z()}
}

// updateWorldTransform recomputes a node's world matrix from its parent's.
// parentRecomputed forces recomputation even when the node itself is clean,
// since the parent's matrix changed under it.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldMatrix = parentTransform.Mul4(local)
		n.invWorldDirty = true
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// WorldMatrix returns the node's world transform as of the last
// updateWorldTransform traversal.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// invWorldMatrix returns the cached inverse world matrix, recomputing it on
// demand. A singular matrix (zero scale) yields the identity, which makes
// dependent hit volumes miss rather than blow up.
func (n *Node) invWorldMatrix() mgl64.Mat4 {
	if n.invWorldDirty {
		det := n.worldMatrix.Det()
		if det > -1e-12 && det < 1e-12 {
			n.invWorld = identityMat4
		} else {
			n.invWorld = n.worldMatrix.Inv()
		}
		n.invWorldDirty = false
	}
	return n.invWorld
}

// WorldToLocal converts a world-space point into this node's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.invWorldMatrix(), p)
}

// LocalToWorld converts a local-space point into world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.worldMatrix, p)
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return mgl64.Vec3{n.worldMatrix[12], n.worldMatrix[13], n.worldMatrix[14]}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// SetEuler sets the node's rotation from XYZ Euler angles in radians.
func (n *Node) SetEuler(x, y, z float64) {
	n.Rotation = mgl64.AnglesToQuat(x, y, z, mgl64.XYZ)
	n.transformDirty = true
}

// MarkDirty flags the node for world matrix recomputation on the next
// update. Call after mutating Position/Rotation/Scale fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}
