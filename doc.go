// Package cadview is a 3D model viewer core for [Ebitengine].
//
// It compiles a read-only model hierarchy of nodes, shapes and parts into a
// flat, instanced scene, and draws it through an orbit camera driven by the
// mouse. Shapes referenced from several nodes are uploaded once and drawn
// once per placement.
//
// # Quick start
//
// The simplest way to get started is [Run], which compiles the model and
// opens a window:
//
//	model, err := cadview.LoadModel("bracket.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	cadview.Run(model, cadview.RunConfig{Title: "bracket", Width: 1024, Height: 768})
//
// For full control, create a [Viewer] and pass it to ebiten.RunGame, or
// drive [Compile], [Camera] and [Renderer] directly with your own [Device].
//
// # Camera
//
// Left drag rotates around the pivot, middle drag pans, right drag zooms.
// Every drag is computed from the state captured at the press, so moving
// back to the press position restores the view exactly. [Camera.Focus]
// frames a bounding box and adapts the clipping planes to it. The camera
// state round-trips through a JSON string ([CameraState.String],
// [ParseCameraState]).
//
// # Models
//
// Models are built in code from [Node], [Shape] and [MeshData], or loaded
// from YAML with [LoadModel]. [BoxMesh], [PlaneMesh], [CylinderMeshes],
// [PolylineMesh] and [AxesMesh] generate common geometry.
//
// Camera events can be bridged into a [Donburi] world with the adapter in
// cadview/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package cadview
