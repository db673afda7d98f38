package hands

import (
	"github.com/pkg/errors"
)

// ControllerType names a controller implementation
type ControllerType string

// ControllerTypeHand is articulated hand controller driven by hand tracking
const ControllerTypeHand ControllerType = "WindowsXRHandController"

// ErrNoMappingProfile is returned when no mapping profile exists for a controller type and hand
var ErrNoMappingProfile = errors.New("no controller mapping profile")

// ErrUnsupportedController is returned when asked to build a controller of unknown type
var ErrUnsupportedController = errors.New("unsupported controller type")

// ControllerDefinition is a controller type bound to a hand
type ControllerDefinition struct {
	Type       ControllerType
	Handedness Handedness
}

// DefaultControllerDefinitions returns controllers supported out of the box: a hand controller per hand
func DefaultControllerDefinitions() []ControllerDefinition {
	return []ControllerDefinition{
		{Type: ControllerTypeHand, Handedness: HandednessLeft},
		{Type: ControllerTypeHand, Handedness: HandednessRight},
	}
}

// MappingProfile is construction input for a controller. Its content is opaque to the registry.
type MappingProfile struct {
	Name           string
	ControllerType ControllerType
	Handedness     Handedness
	// RenderModel asks the model attacher to attach a visual model to the controller
	RenderModel bool
}

// MappingProfileProvider returns mapping profile for controller type and hand
type MappingProfileProvider interface {
	MappingProfile(t ControllerType, h Handedness) (MappingProfile, error)
}

// StaticProfiles is a fixed set of mapping profiles
type StaticProfiles map[ControllerDefinition]MappingProfile

// DefaultMappingProfiles returns a profile for every default controller definition
func DefaultMappingProfiles() StaticProfiles {
	profiles := make(StaticProfiles)
	for _, def := range DefaultControllerDefinitions() {
		profiles[def] = MappingProfile{
			Name:           string(def.Type) + "_" + def.Handedness.String(),
			ControllerType: def.Type,
			Handedness:     def.Handedness,
		}
	}
	return profiles
}

// MappingProfile implements MappingProfileProvider
func (p StaticProfiles) MappingProfile(t ControllerType, h Handedness) (MappingProfile, error) {
	profile, ok := p[ControllerDefinition{Type: t, Handedness: h}]
	if !ok {
		return MappingProfile{}, errors.Wrapf(ErrNoMappingProfile, "%s for %s hand", t, h)
	}
	return profile, nil
}

// ControllerTypeFor picks controller type for device characteristics.
// Only tracked hands are supported: held-in-hand motion controllers produce no type.
func ControllerTypeFor(ch Characteristics) (ControllerType, bool) {
	if ch.Has(CharacteristicHandTracking) {
		return ControllerTypeHand, true
	}
	return "", false
}
