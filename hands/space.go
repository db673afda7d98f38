package hands

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReferenceFrame is the tracking-space origin: position and orientation of the camera rig.
// Samplers only read it; the camera rig owns and updates it.
type ReferenceFrame struct {
	Position r3.Vec
	Rotation quat.Number
}

// NewReferenceFrame creates new reference frame
func NewReferenceFrame(position r3.Vec, rotation quat.Number) ReferenceFrame {
	return ReferenceFrame{
		Position: position,
		Rotation: rotation,
	}
}

// Pose returns the frame as a pose in tracking space
func (f ReferenceFrame) Pose() Pose {
	return Pose{
		Position: f.Position,
		Rotation: f.Rotation,
	}
}

// TransformPoint re-expresses a device-local point in tracking space
func (f ReferenceFrame) TransformPoint(p r3.Vec) r3.Vec {
	return r3.Add(f.Position, Rotate(f.Rotation, p))
}

// TransformDirection re-expresses a device-local direction (e.g. normal) in tracking space. Translation is not applied.
func (f ReferenceFrame) TransformDirection(d r3.Vec) r3.Vec {
	return Rotate(f.Rotation, d)
}

// TransformPose re-expresses a device-local pose in tracking space
func (f ReferenceFrame) TransformPose(local Pose) Pose {
	return Pose{
		Position: f.TransformPoint(local.Position),
		Rotation: quat.Mul(f.Rotation, local.Rotation),
	}
}

// Inverse returns the frame mapping tracking space back to device-local space
func (f ReferenceFrame) Inverse() ReferenceFrame {
	inv := f.Pose().Inverse()
	return ReferenceFrame{
		Position: inv.Position,
		Rotation: inv.Rotation,
	}
}

// ToTrackingSpace transforms local pose by the reference frame
func ToTrackingSpace(frame ReferenceFrame, local Pose) Pose {
	return frame.TransformPose(local)
}
