package hands

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// HandMeshSampler fetches hand mesh of a single hand and re-expresses it in tracking space.
// Mesh topology is assumed stable, so UVs are generated once from the neutral pose and reused.
type HandMeshSampler struct {
	handedness Handedness
	source     MeshSource
	frames     *FrameResolver
	frameTime  FrameTime
	// nil until the neutral pose mesh has been fetched
	uvs []r2.Vec
	// true after the current streak of malformed meshes has been logged
	invalidLogged bool
	// Reused between frames
	neutral MeshData
	live    MeshData
	logger  *zap.Logger
}

// NewHandMeshSampler creates new instance of HandMeshSampler
func NewHandMeshSampler(handedness Handedness, source MeshSource, frames *FrameResolver, options ...SamplerOption) *HandMeshSampler {
	opts := defaultSamplerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &HandMeshSampler{
		handedness: handedness,
		source:     source,
		frames:     frames,
		frameTime:  opts.frameTime,
		logger:     opts.logger.With(zap.Stringer("handedness", handedness)),
	}
}

// Handedness returns the hand this sampler serves
func (sampler *HandMeshSampler) Handedness() Handedness {
	return sampler.handedness
}

// UVs returns cached UV set. Nil if the neutral pose mesh has not been fetched yet.
func (sampler *HandMeshSampler) UVs() []r2.Vec {
	return sampler.uvs
}

// Sample returns this frame's mesh in tracking space or EmptyMesh if it is not available
func (sampler *HandMeshSampler) Sample() MeshSnapshot {
	if sampler.source == nil || sampler.frames == nil {
		return EmptyMesh
	}
	if sampler.uvs == nil {
		sampler.neutral.Reset()
		if sampler.source.TryGetHandMesh(sampler.frameTime, HandPoseReferenceOpenPalm, &sampler.neutral) {
			sampler.uvs = sampler.initializeUVs(sampler.neutral.Vertices)
		}
	}

	frame, ok := sampler.frames.Frame()
	if !ok {
		return EmptyMesh
	}
	sampler.live.Reset()
	if !sampler.source.TryGetHandMesh(sampler.frameTime, HandPoseTracked, &sampler.live) {
		return EmptyMesh
	}
	meshPose, ok := sampler.source.TryLocateHandMesh(sampler.frameTime)
	if !ok {
		return EmptyMesh
	}

	world := frame.TransformPose(meshPose)
	vertices := make([]r3.Vec, len(sampler.live.Vertices))
	for i, v := range sampler.live.Vertices {
		vertices[i] = r3.Add(world.Position, Rotate(world.Rotation, v))
	}
	normals := make([]r3.Vec, len(sampler.live.Normals))
	for i, n := range sampler.live.Normals {
		normals[i] = Rotate(world.Rotation, n)
	}
	triangles := make([]int, len(sampler.live.Triangles))
	copy(triangles, sampler.live.Triangles)

	mesh := MeshSnapshot{
		Vertices:  vertices,
		Triangles: triangles,
		Normals:   normals,
		UVs:       sampler.uvs,
	}
	if err := mesh.Validate(); err != nil {
		if !sampler.invalidLogged {
			sampler.logger.Error("device returned malformed hand mesh, dropping it", zap.Error(err))
			sampler.invalidLogged = true
		}
		return EmptyMesh
	}
	sampler.invalidLogged = false
	return mesh
}

// initializeUVs makes planar unwrap of the neutral pose: v spans vertical extent, u is centered x scaled by the same factor
func (sampler *HandMeshSampler) initializeUVs(neutralVertices []r3.Vec) []r2.Vec {
	if len(neutralVertices) == 0 {
		sampler.logger.Error("neutral pose mesh has 0 vertices, hand mesh UVs are left empty")
		return []r2.Vec{}
	}
	minY := neutralVertices[0].Y
	maxY := minY
	for _, p := range neutralVertices[1:] {
		minY = minFloat64(minY, p.Y)
		maxY = maxFloat64(maxY, p.Y)
	}
	span := maxY - minY
	scale := 1.0
	if span > 0 {
		scale = 1.0 / span
	} else {
		sampler.logger.Warn("neutral pose mesh has zero height, using unit UV scale", zap.Int("vertices", len(neutralVertices)))
	}
	uvs := make([]r2.Vec, len(neutralVertices))
	for i, p := range neutralVertices {
		uvs[i] = r2.Vec{
			X: p.X*scale + 0.5,
			Y: (p.Y - minY) * scale,
		}
	}
	return uvs
}
