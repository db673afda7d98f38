package replay

import (
	"testing"

	"github.com/LdDl/hands-go/hands"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	eps = 0.00001
)

type event struct {
	name       string
	handedness hands.Handedness
	id         uuid.UUID
}

type recorder struct {
	events []event
}

func (r *recorder) RaiseSourceDetected(sourceID uuid.UUID, controller *hands.HandController) {
	r.events = append(r.events, event{name: "detected", handedness: controller.Handedness(), id: sourceID})
}

func (r *recorder) RaiseSourceLost(sourceID uuid.UUID, controller *hands.HandController) {
	r.events = append(r.events, event{name: "lost", handedness: controller.Handedness(), id: sourceID})
}

func loadRuntime(t *testing.T) *Runtime {
	t.Helper()
	session, err := LoadSession("testdata/session.yaml")
	require.NoError(t, err)
	runtime, err := NewRuntime(session)
	require.NoError(t, err)
	return runtime
}

func TestLoadSession(t *testing.T) {
	session, err := LoadSession("testdata/session.yaml")
	require.NoError(t, err)
	assert.True(t, hands.PlatformAvailable(session.Subsystems))
	assert.Len(t, session.Ticks, 5)
	assert.Equal(t, 1, session.Rig.AvailableFromTick)
	require.NotNil(t, session.NeutralMesh)
	assert.Len(t, session.NeutralMesh.Vertices, 3)

	_, err = LoadSession("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestRuntimeAdvance(t *testing.T) {
	runtime := loadRuntime(t)
	assert.Equal(t, -1, runtime.Tick())
	_, ok := runtime.DeviceAt(hands.HandednessLeft)
	assert.False(t, ok, "nothing is reported before the first tick")

	ticks := 0
	for runtime.Advance() {
		ticks++
	}
	assert.Equal(t, runtime.Len(), ticks)
	assert.False(t, runtime.Advance())
	_, ok = runtime.DeviceAt(hands.HandednessLeft)
	assert.False(t, ok)
}

func TestRuntimeDevices(t *testing.T) {
	runtime := loadRuntime(t)
	require.True(t, runtime.Advance())

	device, ok := runtime.DeviceAt(hands.HandednessLeft)
	require.True(t, ok)
	assert.True(t, device.Characteristics().Has(hands.CharacteristicHandTracking|hands.CharacteristicLeft))
	_, ok = runtime.DeviceAt(hands.HandednessRight)
	assert.False(t, ok)

	joints := make([]hands.JointLocation, hands.DeviceJointCount)
	require.True(t, runtime.HandDevice(hands.HandednessLeft).TryLocateHandJoints(hands.FrameTimeOnUpdate, joints))
	openHand := OpenHand(hands.HandednessLeft)
	assert.Equal(t, openHand[:], joints)
	assert.Nil(t, runtime.HandDevice(hands.HandednessNone))

	_, ok = runtime.Rig().LocateRig()
	assert.False(t, ok, "rig shows up on the second tick")
	require.True(t, runtime.Advance())
	_, ok = runtime.Rig().LocateRig()
	assert.True(t, ok)

	require.True(t, runtime.Advance())
	device, ok = runtime.DeviceAt(hands.HandednessRight)
	require.True(t, ok)
	assert.True(t, device.Characteristics().Has(hands.CharacteristicHeldInHand))
	assert.False(t, runtime.HandDevice(hands.HandednessRight).TryLocateHandJoints(hands.FrameTimeOnUpdate, joints))
}

func TestRuntimeRejectsBadSession(t *testing.T) {
	_, err := NewRuntime(nil)
	assert.Error(t, err)

	session, err := ParseSession([]byte(`
ticks:
  - left:
      present: true
      joints:
        SixthFingerTip:
          position: {x: 1}
`))
	require.NoError(t, err)
	_, err = NewRuntime(session)
	assert.Error(t, err)

	session, err = ParseSession([]byte(`
ticks:
  - right:
      present: true
      characteristics: [telepathic]
`))
	require.NoError(t, err)
	_, err = NewRuntime(session)
	assert.Error(t, err)

	_, err = ParseSession([]byte("ticks: {"))
	assert.Error(t, err)
}

func TestOpenHandMirrors(t *testing.T) {
	left := OpenHand(hands.HandednessLeft)
	right := OpenHand(hands.HandednessRight)
	for _, d := range hands.DeviceJoints() {
		assert.True(t, left[d].Tracked)
		assert.InDelta(t, -right[d].Pose.Position.X, left[d].Pose.Position.X, eps, "joint %s", d)
		assert.InDelta(t, right[d].Pose.Position.Y, left[d].Pose.Position.Y, eps, "joint %s", d)
	}
}

func TestReplayThroughRegistry(t *testing.T) {
	runtime := loadRuntime(t)
	notifier := &recorder{}
	registry := hands.NewControllerRegistry(runtime,
		hands.WithRigLocator(runtime.Rig()),
		hands.WithNotifier(notifier),
		hands.WithJointArray(true),
	)
	approx := cmpopts.EquateApprox(0, eps)

	// Tick 0: hand is there, rig is not
	require.True(t, runtime.Advance())
	registry.Update()
	left, ok := registry.Controller(hands.HandednessLeft)
	require.True(t, ok)
	assert.Equal(t, hands.NotTracked, left.TrackingState())
	assert.Empty(t, left.JointPoses())

	// Tick 1: rig found, joints are in tracking space
	require.True(t, runtime.Advance())
	registry.Update()
	assert.Equal(t, hands.Tracked, left.TrackingState())
	assert.Len(t, left.JointPoses(), hands.NumJoints)
	wrist, ok := left.TryGetJointPose(hands.JointWrist)
	require.True(t, ok)
	if diff := cmp.Diff(r3.Vec{Y: 1.6}, wrist.Position, approx); diff != "" {
		t.Errorf("wrist mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(r3.Vec{X: 0.05, Y: 1.7}, left.PointerPose().Position, approx); diff != "" {
		t.Errorf("pointer mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, left.Mesh().IsEmpty())
	assert.NoError(t, left.Mesh().Validate())

	// Tick 2: left gone, right is a motion controller
	require.True(t, runtime.Advance())
	registry.Update()
	assert.Empty(t, registry.ActiveControllers())

	// Tick 3: left comes back with two joints
	require.True(t, runtime.Advance())
	registry.Update()
	again, ok := registry.Controller(hands.HandednessLeft)
	require.True(t, ok)
	assert.NotEqual(t, left.ID(), again.ID())
	assert.Len(t, again.JointPoses(), 2)

	// Tick 4: both hands
	require.True(t, runtime.Advance())
	registry.Update()
	right, ok := registry.Controller(hands.HandednessRight)
	require.True(t, ok)
	mesh := right.Mesh()
	require.Len(t, mesh.Vertices, 3)
	if diff := cmp.Diff(r3.Vec{Y: 1.6, Z: -0.16}, mesh.Vertices[0], approx); diff != "" {
		t.Errorf("mesh vertex mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, mesh.UVs, 3)

	want := []event{
		{name: "detected", handedness: hands.HandednessLeft, id: left.ID()},
		{name: "lost", handedness: hands.HandednessLeft, id: left.ID()},
		{name: "detected", handedness: hands.HandednessLeft, id: again.ID()},
		{name: "detected", handedness: hands.HandednessRight, id: right.ID()},
	}
	assert.Equal(t, want, notifier.events)

	assert.False(t, runtime.Advance())
	registry.Update()
	assert.Empty(t, registry.ActiveControllers())
}
