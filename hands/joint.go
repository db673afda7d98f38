package hands

import "fmt"

// Joint is the application's canonical hand joint identifier.
// Values are usable as indices in [0, NumJoints).
type Joint int

// JointUnknown is returned for device joints outside of the known taxonomy.
// It must never be stored in a HandSnapshot.
const JointUnknown Joint = -1

const (
	JointWrist Joint = iota
	JointPalm

	JointThumbMetacarpal
	JointThumbProximal
	JointThumbDistal
	JointThumbTip

	JointIndexMetacarpal
	JointIndexProximal
	JointIndexIntermediate
	JointIndexDistal
	JointIndexTip

	JointMiddleMetacarpal
	JointMiddleProximal
	JointMiddleIntermediate
	JointMiddleDistal
	JointMiddleTip

	JointRingMetacarpal
	JointRingProximal
	JointRingIntermediate
	JointRingDistal
	JointRingTip

	JointLittleMetacarpal
	JointLittleProximal
	JointLittleIntermediate
	JointLittleDistal
	JointLittleTip
)

// NumJoints is number of canonical joints (JointUnknown excluded)
const NumJoints = int(JointLittleTip) + 1

var jointNames = [NumJoints]string{
	"Wrist", "Palm",
	"ThumbMetacarpal", "ThumbProximal", "ThumbDistal", "ThumbTip",
	"IndexMetacarpal", "IndexProximal", "IndexIntermediate", "IndexDistal", "IndexTip",
	"MiddleMetacarpal", "MiddleProximal", "MiddleIntermediate", "MiddleDistal", "MiddleTip",
	"RingMetacarpal", "RingProximal", "RingIntermediate", "RingDistal", "RingTip",
	"LittleMetacarpal", "LittleProximal", "LittleIntermediate", "LittleDistal", "LittleTip",
}

// Valid reports whether joint belongs to the canonical set
func (j Joint) Valid() bool {
	return j >= 0 && int(j) < NumJoints
}

func (j Joint) String() string {
	if !j.Valid() {
		return "Unknown"
	}
	return jointNames[j]
}

// DeviceJoint is the joint identifier used by the hand tracking device.
// Ordering follows the OpenXR hand joint set: palm first, then wrist, then fingers.
type DeviceJoint int

const (
	DeviceJointPalm DeviceJoint = iota
	DeviceJointWrist

	DeviceJointThumbMetacarpal
	DeviceJointThumbProximal
	DeviceJointThumbDistal
	DeviceJointThumbTip

	DeviceJointIndexMetacarpal
	DeviceJointIndexProximal
	DeviceJointIndexIntermediate
	DeviceJointIndexDistal
	DeviceJointIndexTip

	DeviceJointMiddleMetacarpal
	DeviceJointMiddleProximal
	DeviceJointMiddleIntermediate
	DeviceJointMiddleDistal
	DeviceJointMiddleTip

	DeviceJointRingMetacarpal
	DeviceJointRingProximal
	DeviceJointRingIntermediate
	DeviceJointRingDistal
	DeviceJointRingTip

	DeviceJointLittleMetacarpal
	DeviceJointLittleProximal
	DeviceJointLittleIntermediate
	DeviceJointLittleDistal
	DeviceJointLittleTip
)

// DeviceJointCount is number of joints reported by the device per hand
const DeviceJointCount = int(DeviceJointLittleTip) + 1

// deviceToCanonical is indexed by DeviceJoint
var deviceToCanonical = [DeviceJointCount]Joint{
	DeviceJointPalm:  JointPalm,
	DeviceJointWrist: JointWrist,

	DeviceJointThumbMetacarpal: JointThumbMetacarpal,
	DeviceJointThumbProximal:   JointThumbProximal,
	DeviceJointThumbDistal:     JointThumbDistal,
	DeviceJointThumbTip:        JointThumbTip,

	DeviceJointIndexMetacarpal:   JointIndexMetacarpal,
	DeviceJointIndexProximal:     JointIndexProximal,
	DeviceJointIndexIntermediate: JointIndexIntermediate,
	DeviceJointIndexDistal:       JointIndexDistal,
	DeviceJointIndexTip:          JointIndexTip,

	DeviceJointMiddleMetacarpal:   JointMiddleMetacarpal,
	DeviceJointMiddleProximal:     JointMiddleProximal,
	DeviceJointMiddleIntermediate: JointMiddleIntermediate,
	DeviceJointMiddleDistal:       JointMiddleDistal,
	DeviceJointMiddleTip:          JointMiddleTip,

	DeviceJointRingMetacarpal:   JointRingMetacarpal,
	DeviceJointRingProximal:     JointRingProximal,
	DeviceJointRingIntermediate: JointRingIntermediate,
	DeviceJointRingDistal:       JointRingDistal,
	DeviceJointRingTip:          JointRingTip,

	DeviceJointLittleMetacarpal:   JointLittleMetacarpal,
	DeviceJointLittleProximal:     JointLittleProximal,
	DeviceJointLittleIntermediate: JointLittleIntermediate,
	DeviceJointLittleDistal:       JointLittleDistal,
	DeviceJointLittleTip:          JointLittleTip,
}

var deviceJoints = func() []DeviceJoint {
	joints := make([]DeviceJoint, DeviceJointCount)
	for i := range joints {
		joints[i] = DeviceJoint(i)
	}
	return joints
}()

// DeviceJoints returns every joint the device taxonomy knows about, in device order.
// Returned slice is shared: do not modify it.
func DeviceJoints() []DeviceJoint {
	return deviceJoints
}

// Valid reports whether device joint belongs to the known taxonomy
func (d DeviceJoint) Valid() bool {
	return d >= 0 && int(d) < DeviceJointCount
}

func (d DeviceJoint) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DeviceJoint(%d)", int(d))
	}
	return "Device" + CanonicalJoint(d).String()
}

// CanonicalJoint maps device joint to canonical joint. Unknown device joints yield JointUnknown.
func CanonicalJoint(d DeviceJoint) Joint {
	if !d.Valid() {
		return JointUnknown
	}
	return deviceToCanonical[d]
}

// ParseDeviceJoint finds device joint by its canonical name (e.g. "IndexTip")
func ParseDeviceJoint(name string) (DeviceJoint, bool) {
	for _, d := range deviceJoints {
		if CanonicalJoint(d).String() == name {
			return d, true
		}
	}
	return 0, false
}
