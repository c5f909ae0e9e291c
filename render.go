package cadview

import "time"

// FrameStats holds per-frame counters of the frame composer.
type FrameStats struct {
	Instances  int
	DrawCalls  int
	DrawErrors int
	Elapsed    time.Duration
}

// Renderer composes frames from a compiled scene and an orbit camera.
type Renderer struct {
	ClearColor Color

	debug bool
	last  FrameStats
}

// NewRenderer creates a renderer with the default clear color.
func NewRenderer() *Renderer {
	return &Renderer{ClearColor: DefaultClearColor}
}

// SetDebugMode enables per-frame stats logging at debug level.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// LastFrame returns the stats of the most recent Draw.
func (r *Renderer) LastFrame() FrameStats {
	return r.last
}

// Draw renders one frame of scene into a width x height viewport. Instances
// are drawn in traversal order with no culling or sorting. Draw errors are
// logged and counted, never returned, so one bad mesh does not end the session.
func (r *Renderer) Draw(dev Device, shader Shader, cam *Camera, scene *CompiledScene, width, height int) {
	start := time.Now()
	var stats FrameStats

	dev.SetViewport(width, height)
	dev.Clear(r.ClearColor)
	shader.Bind()

	cam.SetWindowSize(width, height)
	combined := cam.CombinedMatrix()
	modelView := cam.ModelView()

	if scene != nil {
		for i := range scene.Instances {
			inst := &scene.Instances[i]
			stats.Instances++
			shader.SetMatrices(combined.Mul4(inst.Transform), NormalMatrix(modelView.Mul4(inst.Transform)))

			shape := &scene.Shapes[inst.ShapeIndex]
			for _, part := range shape.Parts {
				shader.SetMaterial(part.Material)
				shader.SetHasNormals(dev.HasNormals(part.Mesh))
				stats.DrawCalls++
				if err := dev.DrawMesh(part.Mesh); err != nil {
					stats.DrawErrors++
					logger.Error("draw mesh", "shape", shape.Name, "mesh", part.Mesh, "err", err)
				}
			}
		}
	}

	stats.Elapsed = time.Since(start)
	r.last = stats
	if r.debug {
		r.debugLog(stats)
	}
}
