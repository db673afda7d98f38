// Package replay plays scripted hand tracking sessions through the device boundary of package hands.
//
// A session is a YAML document describing, tick by tick, which hands the runtime reports,
// whether they can be located and where their joints are.
package replay

import (
	"os"

	"github.com/LdDl/hands-go/hands"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Vec3 is YAML form of r3.Vec
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec returns r3.Vec
func (v Vec3) Vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Rotation is YAML form of a rotation: angle in degrees around axis. Zero axis means identity
type Rotation struct {
	Axis    Vec3    `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

// Quat returns unit quaternion
func (r Rotation) Quat() quat.Number {
	axis := r.Axis.Vec()
	if r3.Norm(axis) == 0 || r.Degrees == 0 {
		return hands.IdentityRotation
	}
	return hands.NewRotation(r.Degrees*degToRad, r3.Unit(axis))
}

// PoseConfig is YAML form of hands.Pose
type PoseConfig struct {
	Position Vec3     `yaml:"position"`
	Rotation Rotation `yaml:"rotation"`
}

// Pose returns hands.Pose
func (p PoseConfig) Pose() hands.Pose {
	return hands.NewPose(p.Position.Vec(), p.Rotation.Quat())
}

// RigConfig describes the camera rig
type RigConfig struct {
	PoseConfig `yaml:",inline"`
	// AvailableFromTick is the first tick the rig can be located at
	AvailableFromTick int `yaml:"available_from_tick"`
}

// MeshConfig is YAML form of a mesh
type MeshConfig struct {
	Vertices  []Vec3 `yaml:"vertices"`
	Normals   []Vec3 `yaml:"normals"`
	Triangles []int  `yaml:"triangles"`
}

// JointConfig is a single joint in device-local space
type JointConfig struct {
	PoseConfig `yaml:",inline"`
	Radius     float64 `yaml:"radius"`
}

// PointerConfig is spatial pointer feature values. Missing part means the feature is unavailable
type PointerConfig struct {
	Position *Vec3     `yaml:"position"`
	Rotation *Rotation `yaml:"rotation"`
}

// HandTick is state of a single hand during a tick
type HandTick struct {
	Present bool `yaml:"present"`
	// Characteristics of the input device. Empty means a tracked hand of this side
	Characteristics []string `yaml:"characteristics"`
	Located         bool     `yaml:"located"`
	MeshLocated     bool     `yaml:"mesh_located"`
	// MeshPose is the device-local pose of the hand mesh. Identity if omitted
	MeshPose *PoseConfig `yaml:"mesh_pose"`
	// Joints maps device joint names (e.g. IndexTip) to their poses. Joints not listed are untracked
	Joints map[string]JointConfig `yaml:"joints"`
	// Procedural generates an open hand instead of Joints
	Procedural bool           `yaml:"procedural"`
	Pointer    *PointerConfig `yaml:"pointer"`
}

// Tick is a single frame of a session
type Tick struct {
	Left  *HandTick `yaml:"left"`
	Right *HandTick `yaml:"right"`
}

// Hand returns state of the given hand, nil if the tick does not mention it
func (t Tick) Hand(h hands.Handedness) *HandTick {
	switch h {
	case hands.HandednessLeft:
		return t.Left
	case hands.HandednessRight:
		return t.Right
	default:
		return nil
	}
}

// Session is a scripted sequence of ticks
type Session struct {
	Subsystems  []hands.Subsystem `yaml:"subsystems"`
	Rig         RigConfig         `yaml:"rig"`
	NeutralMesh *MeshConfig       `yaml:"neutral_mesh"`
	Ticks       []Tick            `yaml:"ticks"`
}

// ParseSession decodes session from YAML
func ParseSession(data []byte) (*Session, error) {
	session := Session{}
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "can't parse session")
	}
	return &session, nil
}

// LoadSession reads session from YAML file
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read session '%s'", path)
	}
	session, err := ParseSession(data)
	if err != nil {
		return nil, errors.Wrapf(err, "file '%s'", path)
	}
	return session, nil
}

var characteristicNames = map[string]hands.Characteristics{
	"head_mounted":       hands.CharacteristicHeadMounted,
	"camera":             hands.CharacteristicCamera,
	"held_in_hand":       hands.CharacteristicHeldInHand,
	"hand_tracking":      hands.CharacteristicHandTracking,
	"eye_tracking":       hands.CharacteristicEyeTracking,
	"tracked_device":     hands.CharacteristicTrackedDevice,
	"controller":         hands.CharacteristicController,
	"tracking_reference": hands.CharacteristicTrackingReference,
	"left":               hands.CharacteristicLeft,
	"right":              hands.CharacteristicRight,
}

// ParseCharacteristics combines named characteristics into flags
func ParseCharacteristics(names []string) (hands.Characteristics, error) {
	var ch hands.Characteristics
	for _, name := range names {
		flag, ok := characteristicNames[name]
		if !ok {
			return 0, errors.Errorf("unknown characteristic '%s'", name)
		}
		ch |= flag
	}
	return ch, nil
}

func (m *MeshConfig) meshData() hands.MeshData {
	data := hands.MeshData{
		Vertices:  make([]r3.Vec, len(m.Vertices)),
		Normals:   make([]r3.Vec, len(m.Normals)),
		Triangles: append([]int(nil), m.Triangles...),
	}
	for i, v := range m.Vertices {
		data.Vertices[i] = v.Vec()
	}
	for i, n := range m.Normals {
		data.Normals[i] = n.Vec()
	}
	return data
}
