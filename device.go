package cadview

import "github.com/go-gl/mathgl/mgl64"

// MeshHandle is an opaque reference to a mesh realized by a Device.
type MeshHandle uint32

// Device is the GPU resource layer. It is passed explicitly to every call
// that needs it and is never stored by the core.
type Device interface {
	// CreateMesh uploads mesh data and returns a drawable handle. It fails on
	// malformed or empty vertex data.
	CreateMesh(mesh *MeshData) (MeshHandle, error)
	// DrawMesh draws the mesh with the currently bound shader state.
	DrawMesh(h MeshHandle) error
	// HasNormals reports whether the mesh carries normal data.
	HasNormals(h MeshHandle) bool
	// DestroyMesh releases the mesh. Unknown handles are ignored.
	DestroyMesh(h MeshHandle)
	// SetViewport sets the drawable area in pixels.
	SetViewport(width, height int)
	// Clear clears color and depth.
	Clear(c Color)
}

// Shader is the program used to draw compiled shapes.
type Shader interface {
	Bind()
	// SetMatrices sets the combined projection*model-view matrix and the
	// normal matrix for the following draws.
	SetMatrices(combined mgl64.Mat4, normal mgl64.Mat3)
	// SetMaterial sets the diffuse color; nil means the black fallback.
	SetMaterial(m *Material)
	// SetHasNormals tells the program whether per-vertex normals are bound.
	SetHasNormals(ok bool)
}
