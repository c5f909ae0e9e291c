package cadview

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the package logger into a buffer for the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, level))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func compileTwoInstances(t *testing.T, dev *recordingDevice) (*CompiledScene, mgl64.Mat4, mgl64.Mat4) {
	t.Helper()
	red := &Material{Name: "red", Diffuse: Color{R: 1, A: 1}}
	s := NewShape("s", Part{Mesh: triangle(true), Material: red}, Part{Mesh: triangle(false)})
	t1 := mgl64.Translate3D(1, 0, 0)
	t2 := mgl64.Translate3D(0, 0, -2).Mul4(mgl64.Scale3D(1, 3, 1))

	root := NewNode("root")
	a := NewNode("a")
	a.SetTransform(t1)
	a.AddShape(s)
	b := NewNode("b")
	b.SetTransform(t2)
	b.AddShape(s)
	root.AddChild(a)
	root.AddChild(b)

	scene, err := Compile(dev, root)
	require.NoError(t, err)
	return scene, t1, t2
}

func TestRenderer_DrawOrderAndMatrices(t *testing.T) {
	dev := newRecordingDevice()
	scene, t1, t2 := compileTwoInstances(t, dev)
	sh := &recordingShader{}
	cam := NewCamera()
	r := NewRenderer()

	r.Draw(dev, sh, cam, scene, 320, 200)

	assert.Equal(t, []string{"viewport", "clear", "draw", "draw", "draw", "draw"}, dev.calls)
	assert.Equal(t, 1, sh.binds)
	w, h := cam.WindowSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	combined := cam.CombinedMatrix()
	mv := cam.ModelView()
	require.Len(t, sh.combined, 2)
	assert.True(t, matNear(combined.Mul4(t1), sh.combined[0], 1e-12))
	assert.True(t, matNear(combined.Mul4(t2), sh.combined[1], 1e-12))
	assert.True(t, mat3Near(NormalMatrix(mv.Mul4(t2)), sh.normals[1], 1e-12))

	h0, h1 := scene.Shapes[0].Parts[0].Mesh, scene.Shapes[0].Parts[1].Mesh
	assert.Equal(t, []MeshHandle{h0, h1, h0, h1}, dev.drawn)
	assert.Equal(t, []bool{true, false, true, false}, sh.hasNormals)
	require.Len(t, sh.materials, 4)
	assert.Equal(t, "red", sh.materials[0].Name)
	assert.Nil(t, sh.materials[1])

	assert.Equal(t, 2, r.LastFrame().Instances)
	assert.Equal(t, 4, r.LastFrame().DrawCalls)
	assert.Equal(t, 0, r.LastFrame().DrawErrors)
}

func TestRenderer_DrawErrorsAreLoggedNotFatal(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)
	dev := newRecordingDevice()
	scene, _, _ := compileTwoInstances(t, dev)
	dev.failDraw[scene.Shapes[0].Parts[0].Mesh] = true

	r := NewRenderer()
	r.Draw(dev, &recordingShader{}, NewCamera(), scene, 100, 100)

	assert.Len(t, dev.drawn, 4, "later parts still drawn")
	assert.Equal(t, 2, r.LastFrame().DrawErrors)
	assert.Contains(t, logs.String(), "draw mesh")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestRenderer_NilSceneClearsOnly(t *testing.T) {
	dev := newRecordingDevice()
	sh := &recordingShader{}
	r := NewRenderer()
	r.Draw(dev, sh, NewCamera(), nil, 10, 10)
	assert.Equal(t, []string{"viewport", "clear"}, dev.calls)
	assert.Equal(t, 1, sh.binds)
	assert.Equal(t, FrameStats{Elapsed: r.LastFrame().Elapsed}, r.LastFrame())
}

func TestRenderer_DebugLogsFrameStats(t *testing.T) {
	logs := captureLogs(t, slog.LevelDebug)
	dev := newRecordingDevice()
	scene, _, _ := compileTwoInstances(t, dev)

	r := NewRenderer()
	r.Draw(dev, &recordingShader{}, NewCamera(), scene, 100, 100)
	assert.NotContains(t, logs.String(), "msg=frame")

	r.SetDebugMode(true)
	r.Draw(dev, &recordingShader{}, NewCamera(), scene, 100, 100)
	assert.Contains(t, logs.String(), "msg=frame")
	assert.Contains(t, logs.String(), "draw_calls=4")
}

func TestDebugCheckModel(t *testing.T) {
	logs := captureLogs(t, slog.LevelWarn)
	root := NewNode("root")
	root.AddShape(NewShape("hollow"))
	n := root
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewNode("deep")
		n.AddChild(c)
		n = c
	}
	debugCheckModel(root)
	assert.Contains(t, logs.String(), "shape has no parts")
	assert.Contains(t, logs.String(), "tree depth exceeds threshold")
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte("level=WARN")))
}
