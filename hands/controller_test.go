package hands

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestController(t *testing.T, hand *fakeHand, frame ReferenceFrame, jointArray bool) *HandController {
	t.Helper()
	controller, err := NewHandController(ControllerConfig{
		Type:        ControllerTypeHand,
		Handedness:  HandednessLeft,
		Device:      hand,
		Rig:         staticLocator(frame),
		MeshEnabled: true,
		JointArray:  jointArray,
	})
	require.NoError(t, err)
	return controller
}

func TestNewHandController(t *testing.T) {
	controller := newTestController(t, newFakeHand(), rotatedFrame(), false)
	assert.NotEqual(t, uuid.Nil, controller.ID())
	assert.Equal(t, HandednessLeft, controller.Handedness())
	assert.Equal(t, ControllerTypeHand, controller.Type())
	assert.Equal(t, NotTracked, controller.TrackingState())
	assert.Empty(t, controller.JointPoses())
	assert.True(t, controller.Mesh().IsEmpty())
	assert.Equal(t, uint64(0), controller.UpdateCount())

	other := newTestController(t, newFakeHand(), rotatedFrame(), false)
	assert.NotEqual(t, controller.ID(), other.ID(), "every controller gets its own identity")
}

func TestNewHandControllerErrors(t *testing.T) {
	_, err := NewHandController(ControllerConfig{Handedness: HandednessNone, Device: newFakeHand()})
	assert.Error(t, err)
	_, err = NewHandController(ControllerConfig{Handedness: HandednessRight})
	assert.Error(t, err)
}

func TestHandControllerUpdate(t *testing.T) {
	hand := newFakeHand()
	hand.meshAvailable = true
	hand.meshLocated = true
	hand.live = MeshData{Vertices: []r3.Vec{{}, {X: 1}, {Y: 1}}, Normals: []r3.Vec{{Z: 1}, {Z: 1}, {Z: 1}}, Triangles: []int{0, 1, 2}}
	controller := newTestController(t, hand, rotatedFrame(), true)

	controller.Update(handTrackingInput(HandednessLeft))
	assert.Equal(t, Tracked, controller.TrackingState())
	assert.Len(t, controller.JointPoses(), NumJoints)
	assert.False(t, controller.JointsStale())
	assert.Equal(t, uint64(1), controller.JointsUpdatedAt())
	assert.False(t, controller.Mesh().IsEmpty())

	tip, ok := controller.TryGetJointPose(JointIndexTip)
	require.True(t, ok)
	assert.Equal(t, controller.JointPoses()[JointIndexTip], tip)

	// Tracking loss: joints are kept, staleness is visible through sequencing
	hand.located = false
	before := controller.JointPoses()[JointIndexTip]
	controller.Update(handTrackingInput(HandednessLeft))
	assert.Equal(t, NotTracked, controller.TrackingState())
	assert.True(t, controller.JointsStale())
	assert.Equal(t, uint64(2), controller.UpdateCount())
	assert.Equal(t, uint64(1), controller.JointsUpdatedAt())
	assert.Equal(t, before, controller.JointPoses()[JointIndexTip])
}

func TestHandControllerPointerPose(t *testing.T) {
	frame := rotatedFrame()
	controller := newTestController(t, newFakeHand(), frame, false)
	input := handTrackingInput(HandednessLeft)

	// Nothing reported: identity is kept
	controller.Update(input)
	if diff := poseDiff(IdentityPose(), controller.PointerPose()); diff != "" {
		t.Errorf("pointer pose changed without data (-want +got):\n%s", diff)
	}

	input.hasPosition = true
	input.position = r3.Vec{X: 1}
	controller.Update(input)
	want := NewPose(r3.Vec{X: 1, Y: 3, Z: 3}, IdentityRotation)
	if diff := poseDiff(want, controller.PointerPose()); diff != "" {
		t.Errorf("pointer position mismatch (-want +got):\n%s", diff)
	}

	// Only rotation reported: position keeps its previous value
	input.hasPosition = false
	input.position = r3.Vec{X: 50}
	input.hasRotation = true
	input.rotation = NewRotation(math.Pi/2, r3.Vec{Z: 1})
	controller.Update(input)
	want.Rotation = quat.Mul(frame.Rotation, input.rotation)
	if diff := cmp.Diff(want, controller.PointerPose(), approx); diff != "" {
		t.Errorf("pointer rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestHandControllerWithoutMesh(t *testing.T) {
	hand := newFakeHand()
	hand.meshAvailable = true
	hand.meshLocated = true
	controller, err := NewHandController(ControllerConfig{
		Type:       ControllerTypeHand,
		Handedness: HandednessRight,
		Device:     hand,
		Rig:        staticLocator(rotatedFrame()),
	})
	require.NoError(t, err)
	controller.Update(nil)
	assert.True(t, controller.Mesh().IsEmpty())
	assert.Equal(t, 0, hand.neutralCalls)
}

func TestNewHandControllerUnsupportedType(t *testing.T) {
	_, err := NewHandController(ControllerConfig{Type: "WindowsMRController", Handedness: HandednessLeft, Device: newFakeHand()})
	assert.ErrorIs(t, err, ErrUnsupportedController)
}
