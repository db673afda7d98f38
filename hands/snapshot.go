package hands

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// JointWriter receives tracking-space joint poses from HandJointSampler
type JointWriter interface {
	PutJoint(j Joint, p Pose)
}

// HandSnapshot maps canonical joints to tracking-space poses.
// Missing key means the joint is not tracked, not that it sits at the origin.
type HandSnapshot map[Joint]Pose

// NewHandSnapshot creates empty snapshot sized for the full joint set
func NewHandSnapshot() HandSnapshot {
	return make(HandSnapshot, NumJoints)
}

// PutJoint overwrites pose of the joint
func (s HandSnapshot) PutJoint(j Joint, p Pose) {
	s[j] = p
}

// JointArray stores joint poses indexed by canonical joint ordinal for O(1) lookup
type JointArray struct {
	poses   [NumJoints]Pose
	present [NumJoints]bool
}

// PutJoint overwrites pose of the joint. Joints outside the canonical set are ignored.
func (a *JointArray) PutJoint(j Joint, p Pose) {
	if !j.Valid() {
		return
	}
	a.poses[j] = p
	a.present[j] = true
}

// Get returns pose of the joint and whether it has ever been written
func (a *JointArray) Get(j Joint) (Pose, bool) {
	if !j.Valid() || !a.present[j] {
		return Pose{}, false
	}
	return a.poses[j], true
}

// Len returns number of joints present
func (a *JointArray) Len() int {
	n := 0
	for _, ok := range a.present {
		if ok {
			n++
		}
	}
	return n
}

// Clear marks every joint as absent
func (a *JointArray) Clear() {
	a.present = [NumJoints]bool{}
}

type multiJointWriter []JointWriter

func (m multiJointWriter) PutJoint(j Joint, p Pose) {
	for _, w := range m {
		w.PutJoint(j, p)
	}
}

// MultiJointWriter duplicates writes to all the provided writers
func MultiJointWriter(writers ...JointWriter) JointWriter {
	all := make(multiJointWriter, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			all = append(all, w)
		}
	}
	return all
}

// MeshSnapshot is a hand mesh in tracking space
type MeshSnapshot struct {
	Vertices  []r3.Vec
	Triangles []int
	Normals   []r3.Vec
	// UVs are shared between frames of the same sampler: do not modify
	UVs []r2.Vec
}

// EmptyMesh means "no mesh available this frame"
var EmptyMesh = MeshSnapshot{}

// IsEmpty reports whether snapshot carries no geometry
func (m MeshSnapshot) IsEmpty() bool {
	return len(m.Vertices) == 0 && len(m.Triangles) == 0
}

// Validate checks topology consistency of the snapshot
func (m MeshSnapshot) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("triangle indices length %d is not a multiple of 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return errors.Errorf("triangle index %d at position %d is out of range [0, %d)", idx, i, len(m.Vertices))
		}
	}
	if len(m.Normals) != len(m.Vertices) {
		return errors.Errorf("normals count %d differs from vertices count %d", len(m.Normals), len(m.Vertices))
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return errors.Errorf("uvs count %d differs from vertices count %d", len(m.UVs), len(m.Vertices))
	}
	return nil
}
