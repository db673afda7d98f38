package replay

import (
	"math"

	"github.com/LdDl/hands-go/hands"
	"gonum.org/v1/gonum/spatial/r3"
)

const degToRad = math.Pi / 180

// Open right hand, palm facing -Z, fingers along +Y. Left hand mirrors X.
var openHandLayout = [hands.DeviceJointCount]r3.Vec{
	hands.DeviceJointWrist: {},
	hands.DeviceJointPalm:  {X: 0, Y: 0.045, Z: 0},

	hands.DeviceJointThumbMetacarpal: {X: 0.025, Y: 0.02, Z: -0.01},
	hands.DeviceJointThumbProximal:   {X: 0.045, Y: 0.045, Z: -0.015},
	hands.DeviceJointThumbDistal:     {X: 0.06, Y: 0.07, Z: -0.02},
	hands.DeviceJointThumbTip:        {X: 0.07, Y: 0.09, Z: -0.02},

	hands.DeviceJointIndexMetacarpal:   {X: 0.02, Y: 0.02},
	hands.DeviceJointIndexProximal:     {X: 0.025, Y: 0.085},
	hands.DeviceJointIndexIntermediate: {X: 0.027, Y: 0.125},
	hands.DeviceJointIndexDistal:       {X: 0.028, Y: 0.15},
	hands.DeviceJointIndexTip:          {X: 0.029, Y: 0.17},

	hands.DeviceJointMiddleMetacarpal:   {X: 0.005, Y: 0.02},
	hands.DeviceJointMiddleProximal:     {X: 0.005, Y: 0.09},
	hands.DeviceJointMiddleIntermediate: {X: 0.005, Y: 0.135},
	hands.DeviceJointMiddleDistal:       {X: 0.005, Y: 0.163},
	hands.DeviceJointMiddleTip:          {X: 0.005, Y: 0.185},

	hands.DeviceJointRingMetacarpal:   {X: -0.01, Y: 0.02},
	hands.DeviceJointRingProximal:     {X: -0.015, Y: 0.085},
	hands.DeviceJointRingIntermediate: {X: -0.017, Y: 0.125},
	hands.DeviceJointRingDistal:       {X: -0.018, Y: 0.151},
	hands.DeviceJointRingTip:          {X: -0.019, Y: 0.172},

	hands.DeviceJointLittleMetacarpal:   {X: -0.022, Y: 0.018},
	hands.DeviceJointLittleProximal:     {X: -0.033, Y: 0.075},
	hands.DeviceJointLittleIntermediate: {X: -0.037, Y: 0.105},
	hands.DeviceJointLittleDistal:       {X: -0.039, Y: 0.124},
	hands.DeviceJointLittleTip:          {X: -0.04, Y: 0.142},
}

var tipJoints = map[hands.DeviceJoint]struct{}{
	hands.DeviceJointThumbTip:  {},
	hands.DeviceJointIndexTip:  {},
	hands.DeviceJointMiddleTip: {},
	hands.DeviceJointRingTip:   {},
	hands.DeviceJointLittleTip: {},
}

// OpenHand returns every device joint of an open hand placed at origin, all tracked
func OpenHand(h hands.Handedness) [hands.DeviceJointCount]hands.JointLocation {
	var joints [hands.DeviceJointCount]hands.JointLocation
	for _, d := range hands.DeviceJoints() {
		position := openHandLayout[d]
		if h == hands.HandednessLeft {
			position.X = -position.X
		}
		radius := 0.01
		if _, ok := tipJoints[d]; ok {
			radius = 0.007
		}
		joints[d] = hands.JointLocation{
			Pose:    hands.NewPose(position, hands.IdentityRotation),
			Radius:  radius,
			Tracked: true,
		}
	}
	return joints
}
