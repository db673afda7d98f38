package hands

import (
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	eps = 0.00001
)

// approx compares float fields (r3.Vec, quat.Number, Pose) within eps
var approx = cmpopts.EquateApprox(0, eps)

func poseDiff(want, got Pose) string {
	return cmp.Diff(want, got, approx)
}

func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// staticLocator always finds a rig at frame
func staticLocator(frame ReferenceFrame) RigLocator {
	return RigLocatorFunc(func() (CameraRig, bool) {
		return StaticRig(frame), true
	})
}

// lateLocator finds the rig only when available is set
type lateLocator struct {
	available bool
	frame     ReferenceFrame
	calls     int
}

func (l *lateLocator) LocateRig() (CameraRig, bool) {
	l.calls++
	if !l.available {
		return nil, false
	}
	return StaticRig(l.frame), true
}

// movingRig is a rig the test can move between ticks
type movingRig struct {
	frame ReferenceFrame
}

func (r *movingRig) RigTransform() ReferenceFrame {
	return r.frame
}

func euclideanDistance(p1, p2 r3.Vec) float64 {
	return r3.Norm(r3.Sub(p1, p2))
}

func rotatedFrame() ReferenceFrame {
	return NewReferenceFrame(r3.Vec{X: 1, Y: 2, Z: 3}, NewRotation(math.Pi/2, r3.Vec{Z: 1}))
}

// openHandJoints returns a full set of tracked device joints with distinct poses
func openHandJoints() [DeviceJointCount]JointLocation {
	var joints [DeviceJointCount]JointLocation
	for i := range joints {
		f := float64(i)
		joints[i] = JointLocation{
			Pose: NewPose(
				r3.Vec{X: 0.01 * f, Y: 0.02 * f, Z: 0.3 - 0.005*f},
				NewRotation(0.1*f, r3.Vec{Y: 1}),
			),
			Radius:  0.01,
			Tracked: true,
		}
	}
	return joints
}

// fakeHand is a scripted hand tracking device
type fakeHand struct {
	located bool
	joints  [DeviceJointCount]JointLocation

	neutralAvailable bool
	neutral          MeshData
	meshAvailable    bool
	meshLocated      bool
	live             MeshData
	meshPose         Pose

	locateCalls  int
	neutralCalls int
}

func newFakeHand() *fakeHand {
	return &fakeHand{
		located:  true,
		joints:   openHandJoints(),
		meshPose: IdentityPose(),
	}
}

func (f *fakeHand) TryLocateHandJoints(t FrameTime, out []JointLocation) bool {
	f.locateCalls++
	if !f.located {
		return false
	}
	copy(out, f.joints[:])
	return true
}

func (f *fakeHand) TryGetHandMesh(t FrameTime, pose HandPoseType, out *MeshData) bool {
	src := f.live
	if pose == HandPoseReferenceOpenPalm {
		f.neutralCalls++
		if !f.neutralAvailable {
			return false
		}
		src = f.neutral
	} else if !f.meshAvailable {
		return false
	}
	out.Vertices = append(out.Vertices, src.Vertices...)
	out.Normals = append(out.Normals, src.Normals...)
	out.Triangles = append(out.Triangles, src.Triangles...)
	return true
}

func (f *fakeHand) TryLocateHandMesh(t FrameTime) (Pose, bool) {
	return f.meshPose, f.meshLocated
}

// fakeInput is a scripted input device
type fakeInput struct {
	characteristics Characteristics
	hasPosition     bool
	position        r3.Vec
	hasRotation     bool
	rotation        quat.Number
}

func handTrackingInput(h Handedness) *fakeInput {
	side := CharacteristicLeft
	if h == HandednessRight {
		side = CharacteristicRight
	}
	return &fakeInput{characteristics: CharacteristicHandTracking | CharacteristicTrackedDevice | side}
}

func (d *fakeInput) Characteristics() Characteristics {
	return d.characteristics
}

func (d *fakeInput) TryGetPointerPosition() (r3.Vec, bool) {
	return d.position, d.hasPosition
}

func (d *fakeInput) TryGetPointerRotation() (quat.Number, bool) {
	return d.rotation, d.hasRotation
}

// fakeRuntime exposes devices per hand; a hand without an input device is absent
type fakeRuntime struct {
	inputs map[Handedness]*fakeInput
	hands  map[Handedness]*fakeHand
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		inputs: make(map[Handedness]*fakeInput),
		hands: map[Handedness]*fakeHand{
			HandednessLeft:  newFakeHand(),
			HandednessRight: newFakeHand(),
		},
	}
}

func (r *fakeRuntime) present(h Handedness) {
	r.inputs[h] = handTrackingInput(h)
}

func (r *fakeRuntime) absent(h Handedness) {
	delete(r.inputs, h)
}

func (r *fakeRuntime) DeviceAt(h Handedness) (InputDevice, bool) {
	d, ok := r.inputs[h]
	if !ok {
		return nil, false
	}
	return d, true
}

func (r *fakeRuntime) HandDevice(h Handedness) HandDevice {
	return r.hands[h]
}

type notification struct {
	event      string
	handedness Handedness
	sourceID   uuid.UUID
}

// recordingNotifier keeps every notification in order
type recordingNotifier struct {
	events []notification
}

func (n *recordingNotifier) RaiseSourceDetected(sourceID uuid.UUID, controller *HandController) {
	n.events = append(n.events, notification{event: "detected", handedness: controller.Handedness(), sourceID: sourceID})
}

func (n *recordingNotifier) RaiseSourceLost(sourceID uuid.UUID, controller *HandController) {
	n.events = append(n.events, notification{event: "lost", handedness: controller.Handedness(), sourceID: sourceID})
}
