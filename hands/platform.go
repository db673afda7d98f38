package hands

// Subsystem identifiers required for hand tracking
const (
	MeshSubsystemID  = "OpenXR Mesh Extension"
	InputSubsystemID = "OpenXR Input Extension"
)

// Subsystem describes a runtime subsystem reported by the XR runtime
type Subsystem struct {
	ID      string `yaml:"id"`
	Running bool   `yaml:"running"`
}

// PlatformAvailable reports whether both the mesh and the input extension subsystems are running
func PlatformAvailable(subsystems []Subsystem) bool {
	meshFound := false
	inputFound := false
	for _, s := range subsystems {
		if !s.Running {
			continue
		}
		switch s.ID {
		case MeshSubsystemID:
			meshFound = true
		case InputSubsystemID:
			inputFound = true
		}
	}
	return meshFound && inputFound
}
