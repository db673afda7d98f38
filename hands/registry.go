package hands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SourceNotifier receives controller lifecycle notifications
type SourceNotifier interface {
	RaiseSourceDetected(sourceID uuid.UUID, controller *HandController)
	RaiseSourceLost(sourceID uuid.UUID, controller *HandController)
}

// ModelAttacher attaches a visual model to a freshly created controller
type ModelAttacher interface {
	AttachModel(controller *HandController) error
}

// ControllerFactory builds a controller. Returning an error means detection did not happen this tick
type ControllerFactory func(cfg ControllerConfig) (*HandController, error)

// RegistryOption configures ControllerRegistry
type RegistryOption func(*ControllerRegistry)

// WithRigLocator sets the camera rig lookup used by every controller
func WithRigLocator(locator RigLocator) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.rig = locator
	}
}

// WithMappingProfiles sets the mapping profile collaborator. Default is DefaultMappingProfiles()
func WithMappingProfiles(profiles MappingProfileProvider) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.profiles = profiles
	}
}

// WithNotifier sets the lifecycle notification sink
func WithNotifier(notifier SourceNotifier) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.notifier = notifier
	}
}

// WithModelAttacher sets model attacher called for profiles with RenderModel
func WithModelAttacher(attacher ModelAttacher) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.attacher = attacher
	}
}

// WithControllerFactory replaces NewHandController
func WithControllerFactory(factory ControllerFactory) RegistryOption {
	return func(registry *ControllerRegistry) {
		if factory != nil {
			registry.factory = factory
		}
	}
}

// WithRegistryFrameTime sets timing token for device queries of every controller
func WithRegistryFrameTime(t FrameTime) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.frameTime = t
	}
}

// WithMesh turns hand mesh sampling on or off. Default is on
func WithMesh(enabled bool) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.meshEnabled = enabled
	}
}

// WithJointArray turns on fixed-array joint output of controllers
func WithJointArray(enabled bool) RegistryOption {
	return func(registry *ControllerRegistry) {
		registry.jointArray = enabled
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(registry *ControllerRegistry) {
		if logger != nil {
			registry.logger = logger
		}
	}
}

// ControllerRegistry owns at most one HandController per hand.
// Every Update it polls the device for each hand and creates, updates or removes controllers.
type ControllerRegistry struct {
	runtime     Runtime
	profiles    MappingProfileProvider
	rig         RigLocator
	notifier    SourceNotifier
	attacher    ModelAttacher
	factory     ControllerFactory
	frameTime   FrameTime
	meshEnabled bool
	jointArray  bool
	// Main storage
	active map[Handedness]*HandController
	logger *zap.Logger
}

// NewControllerRegistry creates new instance of ControllerRegistry
func NewControllerRegistry(runtime Runtime, options ...RegistryOption) *ControllerRegistry {
	registry := ControllerRegistry{
		runtime:     runtime,
		profiles:    DefaultMappingProfiles(),
		factory:     NewHandController,
		frameTime:   FrameTimeOnUpdate,
		meshEnabled: true,
		active:      make(map[Handedness]*HandController, len(Hands)),
		logger:      zap.NewNop(),
	}
	for _, o := range options {
		o(&registry)
	}
	return &registry
}

// Update runs one tick: each hand is either driven (present) or removed (absent)
func (registry *ControllerRegistry) Update() {
	for _, handedness := range Hands {
		registry.updateHand(handedness)
	}
}

func (registry *ControllerRegistry) updateHand(handedness Handedness) {
	if registry.runtime == nil {
		registry.removeController(handedness)
		return
	}
	device, ok := registry.runtime.DeviceAt(handedness)
	if !ok || device == nil {
		registry.removeController(handedness)
		return
	}
	controllerType, ok := ControllerTypeFor(device.Characteristics())
	if !ok {
		registry.removeController(handedness)
		return
	}
	controller, ok := registry.getOrAddController(handedness, controllerType)
	if !ok {
		registry.removeController(handedness)
		return
	}
	controller.Update(device)
}

// Disable removes every controller without consulting the device
func (registry *ControllerRegistry) Disable() {
	for _, handedness := range Hands {
		registry.removeController(handedness)
	}
	// Should be empty already, but make sure nothing survives
	clear(registry.active)
}

// Controller returns active controller of the hand
func (registry *ControllerRegistry) Controller(handedness Handedness) (*HandController, bool) {
	controller, ok := registry.active[handedness]
	return controller, ok
}

// ActiveControllers returns active controllers, left hand first
func (registry *ControllerRegistry) ActiveControllers() []*HandController {
	controllers := make([]*HandController, 0, len(registry.active))
	for _, handedness := range Hands {
		if controller, ok := registry.active[handedness]; ok {
			controllers = append(controllers, controller)
		}
	}
	return controllers
}

func (registry *ControllerRegistry) getOrAddController(handedness Handedness, controllerType ControllerType) (*HandController, bool) {
	if controller, ok := registry.active[handedness]; ok {
		return controller, true
	}
	controller, err := registry.createController(handedness, controllerType)
	if err != nil {
		registry.logger.Error("failed to create controller",
			zap.String("controller_type", string(controllerType)),
			zap.Stringer("handedness", handedness),
			zap.Error(err),
		)
		return nil, false
	}
	registry.active[handedness] = controller
	registry.raiseSourceDetected(controller)
	return controller, true
}

func (registry *ControllerRegistry) createController(handedness Handedness, controllerType ControllerType) (controller *HandController, err error) {
	defer func() {
		if r := recover(); r != nil {
			controller = nil
			err = errors.Errorf("panic while creating %s: %v", controllerType, r)
		}
	}()
	if registry.profiles == nil {
		return nil, errors.Wrapf(ErrNoMappingProfile, "%s for %s hand", controllerType, handedness)
	}
	profile, err := registry.profiles.MappingProfile(controllerType, handedness)
	if err != nil {
		return nil, errors.Wrap(err, "can't get mapping profile")
	}
	controller, err = registry.factory(ControllerConfig{
		Type:        controllerType,
		Handedness:  handedness,
		Profile:     profile,
		Device:      registry.runtime.HandDevice(handedness),
		Rig:         registry.rig,
		FrameTime:   registry.frameTime,
		MeshEnabled: registry.meshEnabled,
		JointArray:  registry.jointArray,
		Logger:      registry.logger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't create %s", controllerType)
	}
	if controller == nil {
		return nil, errors.Errorf("factory returned no %s", controllerType)
	}
	if profile.RenderModel && registry.attacher != nil {
		if err := registry.attacher.AttachModel(controller); err != nil {
			return nil, errors.Wrap(err, "can't attach controller model")
		}
	}
	return controller, nil
}

func (registry *ControllerRegistry) removeController(handedness Handedness) {
	controller, ok := registry.active[handedness]
	if !ok {
		return
	}
	registry.raiseSourceLost(controller)
	delete(registry.active, handedness)
}

func (registry *ControllerRegistry) raiseSourceDetected(controller *HandController) {
	if registry.notifier == nil {
		return
	}
	defer registry.recoverNotifier("source detected", controller)
	registry.notifier.RaiseSourceDetected(controller.ID(), controller)
}

func (registry *ControllerRegistry) raiseSourceLost(controller *HandController) {
	if registry.notifier == nil {
		return
	}
	defer registry.recoverNotifier("source lost", controller)
	registry.notifier.RaiseSourceLost(controller.ID(), controller)
}

func (registry *ControllerRegistry) recoverNotifier(event string, controller *HandController) {
	if r := recover(); r != nil {
		registry.logger.Error("notifier panicked",
			zap.String("event", event),
			zap.Stringer("source_id", controller.ID()),
			zap.String("panic", fmt.Sprint(r)),
		)
	}
}
