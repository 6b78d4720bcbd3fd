package main

import "github.com/FASTSHIFT/tgx-go"

// cubeMesh builds a unit cube directly in the §6 packed chain format, one
// one-triangle chain per face (12 triangles, no strip-chaining) — enough
// to exercise Renderer.DrawMesh without needing meshconv/an asset file.
func cubeMesh() *tgx.Mesh {
	v := []tgx.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	n := []tgx.Vec3{
		{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1},
		{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
	}

	type tri = [3]int
	faces := []tri{
		{0, 1, 2}, {0, 2, 3}, // back
		{5, 4, 7}, {5, 7, 6}, // front
		{4, 0, 3}, {4, 3, 7}, // left
		{1, 5, 6}, {1, 6, 2}, // right
		{3, 2, 6}, {3, 6, 7}, // top
		{4, 5, 1}, {4, 1, 0}, // bottom
	}

	var stream []uint16
	for _, f := range faces {
		stream = append(stream,
			1, // N = 1: a single-triangle chain
			uint16(f[0]), uint16(f[0]),
			uint16(f[1]), uint16(f[1]),
			uint16(f[2]), uint16(f[2]),
		)
	}
	stream = append(stream, 0)

	return &tgx.Mesh{
		Vertices:    v,
		Normals:     n,
		Faces:       stream,
		BoundingBox: [6]float64{-1, 1, -1, 1, -1, 1},
		Material:    tgx.NewMaterial(),
	}
}
