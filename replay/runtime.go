package replay

import (
	"github.com/LdDl/hands-go/hands"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// handFrame is compiled state of a single hand during a tick
type handFrame struct {
	characteristics hands.Characteristics
	located         bool
	joints          [hands.DeviceJointCount]hands.JointLocation
	meshLocated     bool
	meshPose        hands.Pose
	hasPosition     bool
	position        r3.Vec
	hasRotation     bool
	rotation        quat.Number
}

func (f *handFrame) Characteristics() hands.Characteristics {
	return f.characteristics
}

func (f *handFrame) TryGetPointerPosition() (r3.Vec, bool) {
	return f.position, f.hasPosition
}

func (f *handFrame) TryGetPointerRotation() (quat.Number, bool) {
	return f.rotation, f.hasRotation
}

type frame struct {
	hands [2]*handFrame
}

func handIndex(h hands.Handedness) (int, bool) {
	switch h {
	case hands.HandednessLeft:
		return 0, true
	case hands.HandednessRight:
		return 1, true
	default:
		return 0, false
	}
}

// Option configures Runtime
type Option func(*Runtime)

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runtime plays session ticks. It implements hands.Runtime
type Runtime struct {
	frames  []frame
	neutral *hands.MeshData
	devices [2]*handDevice
	rig     *Rig
	// Index of the current tick, -1 before the first Advance
	tick   int
	logger *zap.Logger
}

// NewRuntime compiles session into a runtime positioned before the first tick
func NewRuntime(session *Session, options ...Option) (*Runtime, error) {
	if session == nil {
		return nil, errors.New("nil session")
	}
	runtime := Runtime{
		frames: make([]frame, len(session.Ticks)),
		tick:   -1,
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(&runtime)
	}
	if session.NeutralMesh != nil {
		neutral := session.NeutralMesh.meshData()
		runtime.neutral = &neutral
	}
	for i, tick := range session.Ticks {
		for _, h := range hands.Hands {
			hand := tick.Hand(h)
			if hand == nil || !hand.Present {
				continue
			}
			compiled, err := compileHand(h, hand)
			if err != nil {
				return nil, errors.Wrapf(err, "tick %d, %s hand", i, h)
			}
			idx, _ := handIndex(h)
			runtime.frames[i].hands[idx] = compiled
		}
	}
	for _, h := range hands.Hands {
		idx, _ := handIndex(h)
		runtime.devices[idx] = &handDevice{runtime: &runtime, handedness: h}
	}
	runtime.rig = &Rig{
		runtime:   &runtime,
		frame:     hands.NewReferenceFrame(session.Rig.Position.Vec(), session.Rig.Rotation.Quat()),
		available: session.Rig.AvailableFromTick,
	}
	return &runtime, nil
}

func compileHand(h hands.Handedness, hand *HandTick) (*handFrame, error) {
	compiled := handFrame{
		located:     hand.Located,
		meshLocated: hand.MeshLocated,
		meshPose:    hands.IdentityPose(),
	}
	if len(hand.Characteristics) == 0 {
		compiled.characteristics = hands.CharacteristicHandTracking | hands.CharacteristicTrackedDevice
		if h == hands.HandednessLeft {
			compiled.characteristics |= hands.CharacteristicLeft
		} else {
			compiled.characteristics |= hands.CharacteristicRight
		}
	} else {
		ch, err := ParseCharacteristics(hand.Characteristics)
		if err != nil {
			return nil, err
		}
		compiled.characteristics = ch
	}
	if hand.MeshPose != nil {
		compiled.meshPose = hand.MeshPose.Pose()
	}
	if hand.Procedural {
		compiled.joints = OpenHand(h)
	}
	for name, joint := range hand.Joints {
		d, ok := hands.ParseDeviceJoint(name)
		if !ok {
			return nil, errors.Errorf("unknown joint '%s'", name)
		}
		compiled.joints[d] = hands.JointLocation{
			Pose:    joint.Pose(),
			Radius:  joint.Radius,
			Tracked: true,
		}
	}
	if hand.Pointer != nil {
		if hand.Pointer.Position != nil {
			compiled.hasPosition = true
			compiled.position = hand.Pointer.Position.Vec()
		}
		if hand.Pointer.Rotation != nil {
			compiled.hasRotation = true
			compiled.rotation = hand.Pointer.Rotation.Quat()
		}
	}
	return &compiled, nil
}

// Advance moves to the next tick. False when the session is over
func (r *Runtime) Advance() bool {
	if r.tick+1 >= len(r.frames) {
		r.tick = len(r.frames)
		return false
	}
	r.tick++
	r.logger.Debug("tick", zap.Int("tick", r.tick))
	return true
}

// Tick returns index of the current tick
func (r *Runtime) Tick() int {
	return r.tick
}

// Len returns number of ticks in the session
func (r *Runtime) Len() int {
	return len(r.frames)
}

// Rig returns camera rig locator driven by this runtime
func (r *Runtime) Rig() *Rig {
	return r.rig
}

func (r *Runtime) current(h hands.Handedness) *handFrame {
	idx, ok := handIndex(h)
	if !ok || r.tick < 0 || r.tick >= len(r.frames) {
		return nil
	}
	return r.frames[r.tick].hands[idx]
}

// DeviceAt implements hands.Runtime
func (r *Runtime) DeviceAt(h hands.Handedness) (hands.InputDevice, bool) {
	hand := r.current(h)
	if hand == nil {
		return nil, false
	}
	return hand, true
}

// HandDevice implements hands.Runtime
func (r *Runtime) HandDevice(h hands.Handedness) hands.HandDevice {
	idx, ok := handIndex(h)
	if !ok {
		return nil
	}
	return r.devices[idx]
}

// handDevice answers hand tracking queries from the current tick
type handDevice struct {
	runtime    *Runtime
	handedness hands.Handedness
}

func (d *handDevice) TryLocateHandJoints(t hands.FrameTime, out []hands.JointLocation) bool {
	hand := d.runtime.current(d.handedness)
	if hand == nil || !hand.located {
		return false
	}
	copy(out, hand.joints[:])
	return true
}

// TryGetHandMesh serves the session's neutral mesh for both hand shapes: replayed hands do not deform
func (d *handDevice) TryGetHandMesh(t hands.FrameTime, pose hands.HandPoseType, out *hands.MeshData) bool {
	neutral := d.runtime.neutral
	if neutral == nil {
		return false
	}
	if pose == hands.HandPoseTracked {
		hand := d.runtime.current(d.handedness)
		if hand == nil || !hand.meshLocated {
			return false
		}
	}
	out.Vertices = append(out.Vertices, neutral.Vertices...)
	out.Normals = append(out.Normals, neutral.Normals...)
	out.Triangles = append(out.Triangles, neutral.Triangles...)
	return true
}

func (d *handDevice) TryLocateHandMesh(t hands.FrameTime) (hands.Pose, bool) {
	hand := d.runtime.current(d.handedness)
	if hand == nil || !hand.meshLocated {
		return hands.Pose{}, false
	}
	return hand.meshPose, true
}

// Rig is a camera rig which appears at a given tick. It implements hands.RigLocator
type Rig struct {
	runtime   *Runtime
	frame     hands.ReferenceFrame
	available int
}

// LocateRig implements hands.RigLocator
func (r *Rig) LocateRig() (hands.CameraRig, bool) {
	if r.runtime.tick < r.available {
		return nil, false
	}
	return hands.StaticRig(r.frame), true
}
