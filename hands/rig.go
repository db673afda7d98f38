package hands

import (
	"go.uber.org/zap"
)

// CameraRig exposes the live tracking-space transform
type CameraRig interface {
	RigTransform() ReferenceFrame
}

// RigLocator finds the camera rig. It may fail early in application startup.
type RigLocator interface {
	LocateRig() (CameraRig, bool)
}

// RigLocatorFunc is an adapter to use ordinary functions as RigLocator
type RigLocatorFunc func() (CameraRig, bool)

// LocateRig calls f()
func (f RigLocatorFunc) LocateRig() (CameraRig, bool) {
	return f()
}

// StaticRig is a camera rig which never moves
type StaticRig ReferenceFrame

// RigTransform returns the fixed frame
func (r StaticRig) RigTransform() ReferenceFrame {
	return ReferenceFrame(r)
}

// FallbackRigLocator asks primary (usually the camera system) first and fallback (usually the parent of the main camera) second
func FallbackRigLocator(primary, fallback RigLocator) RigLocator {
	return RigLocatorFunc(func() (CameraRig, bool) {
		if primary != nil {
			if rig, ok := primary.LocateRig(); ok {
				return rig, true
			}
		}
		if fallback != nil {
			return fallback.LocateRig()
		}
		return nil, false
	})
}

// FrameResolver holds the located camera rig for a controller.
// While unresolved, every call to Frame retries the lookup; a failing streak is logged once.
type FrameResolver struct {
	locator RigLocator
	rig     CameraRig
	// true after the current miss streak has been logged
	missLogged bool
	logger     *zap.Logger
}

// NewFrameResolver creates new instance of FrameResolver
func NewFrameResolver(locator RigLocator, logger *zap.Logger) *FrameResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameResolver{
		locator: locator,
		logger:  logger,
	}
}

// Frame returns current reference frame. False means conversions must be skipped this tick.
func (r *FrameResolver) Frame() (ReferenceFrame, bool) {
	if r.rig == nil {
		if !r.resolve() {
			return ReferenceFrame{}, false
		}
	}
	return r.rig.RigTransform(), true
}

// Resolved reports whether the camera rig has been found
func (r *FrameResolver) Resolved() bool {
	return r.rig != nil
}

// Reset forgets the located rig so that next Frame call looks it up again
func (r *FrameResolver) Reset() {
	r.rig = nil
}

func (r *FrameResolver) resolve() bool {
	var rig CameraRig
	ok := false
	if r.locator != nil {
		rig, ok = r.locator.LocateRig()
	}
	if !ok || rig == nil {
		if !r.missLogged {
			r.logger.Warn("camera rig is not available, skipping tracking space conversion")
			r.missLogged = true
		}
		return false
	}
	r.rig = rig
	r.missLogged = false
	return true
}
