package hands

import (
	"go.uber.org/zap"
)

// SamplerOption configures HandJointSampler and HandMeshSampler
type SamplerOption func(*samplerOptions)

type samplerOptions struct {
	frameTime FrameTime
	logger    *zap.Logger
}

func defaultSamplerOptions() samplerOptions {
	return samplerOptions{
		frameTime: FrameTimeOnUpdate,
		logger:    zap.NewNop(),
	}
}

// WithFrameTime sets timing token used for device queries. Default is FrameTimeOnUpdate
func WithFrameTime(t FrameTime) SamplerOption {
	return func(o *samplerOptions) {
		o.frameTime = t
	}
}

// WithSamplerLogger sets logger for the sampler
func WithSamplerLogger(logger *zap.Logger) SamplerOption {
	return func(o *samplerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// HandJointSampler converts device joint locations of a single hand into tracking-space poses
type HandJointSampler struct {
	handedness Handedness
	locator    JointLocator
	frames     *FrameResolver
	frameTime  FrameTime
	// Reused between frames
	locations []JointLocation
	logger    *zap.Logger
}

// NewHandJointSampler creates new instance of HandJointSampler
func NewHandJointSampler(handedness Handedness, locator JointLocator, frames *FrameResolver, options ...SamplerOption) *HandJointSampler {
	opts := defaultSamplerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &HandJointSampler{
		handedness: handedness,
		locator:    locator,
		frames:     frames,
		frameTime:  opts.frameTime,
		locations:  make([]JointLocation, DeviceJointCount),
		logger:     opts.logger.With(zap.Stringer("handedness", handedness)),
	}
}

// Handedness returns the hand this sampler serves
func (sampler *HandJointSampler) Handedness() Handedness {
	return sampler.handedness
}

// Sample writes this frame's joint poses into out.
// It returns false (and leaves out untouched) when the reference frame is unresolved or the device could not locate the hand.
func (sampler *HandJointSampler) Sample(out JointWriter) bool {
	if sampler.locator == nil || sampler.frames == nil {
		return false
	}
	frame, ok := sampler.frames.Frame()
	if !ok {
		return false
	}
	for i := range sampler.locations {
		sampler.locations[i] = JointLocation{}
	}
	if !sampler.locator.TryLocateHandJoints(sampler.frameTime, sampler.locations) {
		return false
	}
	for _, deviceJoint := range DeviceJoints() {
		location := sampler.locations[deviceJoint]
		if !location.Tracked {
			continue
		}
		joint := CanonicalJoint(deviceJoint)
		if joint == JointUnknown {
			continue
		}
		pose := frame.TransformPose(location.Pose)
		if !pose.IsFinite() {
			sampler.logger.Debug("dropping non-finite joint pose", zap.Stringer("joint", joint))
			continue
		}
		out.PutJoint(joint, pose)
	}
	return true
}
