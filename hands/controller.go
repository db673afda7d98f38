package hands

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"
)

// ControllerConfig holds everything needed to construct a HandController
type ControllerConfig struct {
	Type       ControllerType
	Handedness Handedness
	Profile    MappingProfile
	Device     HandDevice
	Rig        RigLocator
	FrameTime  FrameTime
	// MeshEnabled turns on hand mesh sampling
	MeshEnabled bool
	// JointArray turns on the fixed-array joint output in addition to the map
	JointArray bool
	Logger     *zap.Logger
}

// HandController is a tracked hand as seen by the rest of the application.
// It pulls from its samplers on every Update and republishes canonical pose state.
type HandController struct {
	id             uuid.UUID
	controllerType ControllerType
	handedness     Handedness
	trackingState  TrackingState
	profile        MappingProfile

	frames       *FrameResolver
	jointSampler *HandJointSampler
	meshSampler  *HandMeshSampler

	jointPoses  HandSnapshot
	jointArray  *JointArray
	mesh        MeshSnapshot
	pointerPose Pose

	// Number of Update calls
	updates uint64
	// Value of updates when joints were written last time. Zero means never
	jointsUpdatedAt uint64
	logger          *zap.Logger
}

// NewHandController creates new instance of HandController with fresh identity and samplers
func NewHandController(cfg ControllerConfig) (*HandController, error) {
	if cfg.Handedness != HandednessLeft && cfg.Handedness != HandednessRight {
		return nil, errors.Errorf("can't create controller for %s hand", cfg.Handedness)
	}
	if cfg.Type != ControllerTypeHand {
		return nil, errors.Wrapf(ErrUnsupportedController, "%q", cfg.Type)
	}
	if cfg.Device == nil {
		return nil, errors.Errorf("no hand device for %s hand", cfg.Handedness)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	logger = logger.With(zap.Stringer("handedness", cfg.Handedness), zap.Stringer("source_id", id))

	frames := NewFrameResolver(cfg.Rig, logger)
	samplerOptions := []SamplerOption{WithFrameTime(cfg.FrameTime), WithSamplerLogger(logger)}
	controller := HandController{
		id:             id,
		controllerType: cfg.Type,
		handedness:     cfg.Handedness,
		trackingState:  NotTracked,
		profile:        cfg.Profile,
		frames:         frames,
		jointSampler:   NewHandJointSampler(cfg.Handedness, cfg.Device, frames, samplerOptions...),
		jointPoses:     NewHandSnapshot(),
		mesh:           EmptyMesh,
		pointerPose:    IdentityPose(),
		logger:         logger,
	}
	if cfg.MeshEnabled {
		controller.meshSampler = NewHandMeshSampler(cfg.Handedness, cfg.Device, frames, samplerOptions...)
	}
	if cfg.JointArray {
		controller.jointArray = &JointArray{}
	}
	return &controller, nil
}

// ID returns controller's input source identifier
func (c *HandController) ID() uuid.UUID {
	return c.id
}

// Type returns controller's type
func (c *HandController) Type() ControllerType {
	return c.controllerType
}

// Handedness returns controller's hand
func (c *HandController) Handedness() Handedness {
	return c.handedness
}

// TrackingState returns whether joints were located on the last update
func (c *HandController) TrackingState() TrackingState {
	return c.trackingState
}

// Profile returns mapping profile the controller was built with
func (c *HandController) Profile() MappingProfile {
	return c.profile
}

// JointPoses returns current joint snapshot. Be careful: this is not copy of snapshot, but reference to it
func (c *HandController) JointPoses() HandSnapshot {
	return c.jointPoses
}

// TryGetJointPose returns tracking-space pose of the joint
func (c *HandController) TryGetJointPose(j Joint) (Pose, bool) {
	if c.jointArray != nil {
		return c.jointArray.Get(j)
	}
	pose, ok := c.jointPoses[j]
	return pose, ok
}

// Mesh returns hand mesh of the last update. EmptyMesh if mesh is disabled or unavailable
func (c *HandController) Mesh() MeshSnapshot {
	return c.mesh
}

// PointerPose returns tracking-space spatial pointer pose
func (c *HandController) PointerPose() Pose {
	return c.pointerPose
}

// UpdateCount returns number of updates the controller went through
func (c *HandController) UpdateCount() uint64 {
	return c.updates
}

// JointsUpdatedAt returns update number of the last successful joint sample, zero if none happened yet
func (c *HandController) JointsUpdatedAt() uint64 {
	return c.jointsUpdatedAt
}

// JointsStale reports whether joint snapshot was not refreshed on the last update
func (c *HandController) JointsStale() bool {
	return c.jointsUpdatedAt != c.updates
}

// Update pulls joint poses, mesh and pointer pose for this tick
func (c *HandController) Update(device InputDevice) {
	c.updates++

	var out JointWriter = c.jointPoses
	if c.jointArray != nil {
		out = MultiJointWriter(c.jointPoses, c.jointArray)
	}
	state := NotTracked
	if c.jointSampler.Sample(out) {
		state = Tracked
		c.jointsUpdatedAt = c.updates
	}
	if state != c.trackingState {
		c.logger.Debug("tracking state changed", zap.Stringer("state", state))
		c.trackingState = state
	}

	if c.meshSampler != nil {
		c.mesh = c.meshSampler.Sample()
	}

	if device != nil {
		c.updateSpatialPointerPose(device)
	}
}

// updateSpatialPointerPose replaces each part of the pointer pose the device reports; the other part keeps its previous value
func (c *HandController) updateSpatialPointerPose(device InputDevice) {
	frame, ok := c.frames.Frame()
	if !ok {
		return
	}
	pose := c.pointerPose
	if position, ok := device.TryGetPointerPosition(); ok {
		pose.Position = frame.TransformPoint(position)
	}
	if rotation, ok := device.TryGetPointerRotation(); ok {
		pose.Rotation = quat.Mul(frame.Rotation, rotation)
	}
	if pose.IsFinite() {
		c.pointerPose = pose
	}
}
