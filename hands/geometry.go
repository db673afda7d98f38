package hands

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a position and an orientation expressed in some space.
// Which space it belongs to is decided by whoever produced it.
type Pose struct {
	Position r3.Vec
	Rotation quat.Number
}

// IdentityRotation is the unit quaternion with no rotation
var IdentityRotation = quat.Number{Real: 1}

// IdentityPose returns pose at origin without rotation
func IdentityPose() Pose {
	return Pose{
		Position: r3.Vec{},
		Rotation: IdentityRotation,
	}
}

// NewPose creates new pose
func NewPose(position r3.Vec, rotation quat.Number) Pose {
	return Pose{
		Position: position,
		Rotation: rotation,
	}
}

// NewRotation returns unit quaternion rotating by angle (radians) around axis
func NewRotation(angle float64, axis r3.Vec) quat.Number {
	return quat.Number(r3.NewRotation(angle, axis))
}

// Rotate applies unit quaternion q to vector v
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// Multiply composes two poses: child expressed in the receiver's space is re-expressed in the receiver's parent space.
func (p Pose) Multiply(child Pose) Pose {
	return Pose{
		Position: r3.Add(p.Position, Rotate(p.Rotation, child.Position)),
		Rotation: quat.Mul(p.Rotation, child.Rotation),
	}
}

// Inverse returns pose which undoes the receiver, so p.Multiply(p.Inverse()) is identity
func (p Pose) Inverse() Pose {
	inv := quat.Conj(p.Rotation)
	return Pose{
		Position: r3.Scale(-1, Rotate(inv, p.Position)),
		Rotation: inv,
	}
}

// IsFinite reports whether no component of the pose is NaN or infinite
func (p Pose) IsFinite() bool {
	if !isFiniteVec(p.Position) {
		return false
	}
	return !quat.IsNaN(p.Rotation) && !quat.IsInf(p.Rotation)
}

func isFiniteVec(v r3.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
