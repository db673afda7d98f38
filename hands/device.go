package hands

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handedness is the hand side of a controller
type Handedness uint8

const (
	HandednessNone Handedness = iota
	HandednessLeft
	HandednessRight
)

// Hands lists handedness values the registry polls, in polling order
var Hands = [...]Handedness{HandednessLeft, HandednessRight}

func (h Handedness) String() string {
	switch h {
	case HandednessLeft:
		return "left"
	case HandednessRight:
		return "right"
	default:
		return "none"
	}
}

// TrackingState of a controller
type TrackingState uint8

const (
	NotTracked TrackingState = iota
	Tracked
)

func (s TrackingState) String() string {
	if s == Tracked {
		return "tracked"
	}
	return "not_tracked"
}

// FrameTime is the timing token passed to device queries
type FrameTime uint8

const (
	// FrameTimeOnUpdate predicts for the application update tick
	FrameTimeOnUpdate FrameTime = iota
	// FrameTimeOnBeforeRender predicts for the upcoming render
	FrameTimeOnBeforeRender
)

func (t FrameTime) String() string {
	if t == FrameTimeOnBeforeRender {
		return "on_before_render"
	}
	return "on_update"
}

// HandPoseType selects which hand shape a mesh query returns
type HandPoseType uint8

const (
	// HandPoseTracked is the live hand shape
	HandPoseTracked HandPoseType = iota
	// HandPoseReferenceOpenPalm is the neutral open palm used for UV generation
	HandPoseReferenceOpenPalm
)

// Characteristics are bit flags describing an input device
type Characteristics uint32

const (
	CharacteristicHeadMounted Characteristics = 1 << iota
	CharacteristicCamera
	CharacteristicHeldInHand
	CharacteristicHandTracking
	CharacteristicEyeTracking
	CharacteristicTrackedDevice
	CharacteristicController
	CharacteristicTrackingReference
	CharacteristicLeft
	CharacteristicRight
)

// Has reports whether every flag of c is set
func (ch Characteristics) Has(c Characteristics) bool {
	return ch&c == c
}

// JointLocation is a single joint as reported by the device, in device-local space.
// Tracked is false for joints the device does not (or currently can not) provide.
type JointLocation struct {
	Pose    Pose
	Radius  float64
	Tracked bool
}

// MeshData is a device-filled mesh buffer. Triangle indices have stride 3.
type MeshData struct {
	Vertices  []r3.Vec
	Normals   []r3.Vec
	Triangles []int
}

// Reset empties buffers but keeps their capacity
func (m *MeshData) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.Triangles = m.Triangles[:0]
}

// JointLocator locates hand joints of a single hand
type JointLocator interface {
	// TryLocateHandJoints fills out (indexed by DeviceJoint, len >= DeviceJointCount).
	// Returns false when the hand can not be located for this frame time.
	TryLocateHandJoints(t FrameTime, out []JointLocation) bool
}

// MeshSource provides hand mesh of a single hand
type MeshSource interface {
	// TryGetHandMesh fills out with the mesh of requested hand shape, relative to the mesh pose.
	TryGetHandMesh(t FrameTime, pose HandPoseType, out *MeshData) bool
	// TryLocateHandMesh returns the device-local pose of the hand mesh
	TryLocateHandMesh(t FrameTime) (Pose, bool)
}

// HandDevice is hand tracking capability of a single hand
type HandDevice interface {
	JointLocator
	MeshSource
}

// InputDevice is the input source reported at a hand's logical slot
type InputDevice interface {
	Characteristics() Characteristics
	// TryGetPointerPosition returns device-local spatial pointer position
	TryGetPointerPosition() (r3.Vec, bool)
	// TryGetPointerRotation returns device-local spatial pointer rotation
	TryGetPointerRotation() (quat.Number, bool)
}

// Runtime is the device input boundary
type Runtime interface {
	// DeviceAt returns input device at the logical slot of given hand. False if there is none.
	DeviceAt(h Handedness) (InputDevice, bool)
	// HandDevice returns hand tracking capability for given hand
	HandDevice(h Handedness) HandDevice
}
