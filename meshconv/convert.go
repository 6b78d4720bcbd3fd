// Package meshconv converts glTF/GLB assets into the packed triangle-chain
// mesh format tgx consumes (§6). This is the mesh *loader*, explicitly out
// of scope for the rasterizer core — but a natural, separately-testable
// home for a real parser so the packed format has a producer beyond
// hand-written test fixtures.
//
// Grounded on taigrr-trophy's GLTFLoader (pkg/models/gltf.go): the same
// manual accessor-reading approach (this fork of qmuntal/gltf's API
// surface has no higher-level "modeler" convenience package bundled with
// it), generalized to emit tgx's run-length chain grammar instead of a
// flat triangle list.
package meshconv

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/FASTSHIFT/tgx-go"
)

// Convert reads every triangle primitive in doc and packs it into a single
// tgx.Mesh, greedily chaining adjacent triangles that share two vertices
// with their predecessor in a decodable order (§6, "naive strip-chaining").
// Triangles that cannot be chained each start a new one-triangle chain.
func Convert(doc *gltf.Document) (*tgx.Mesh, error) {
	var (
		vertices  []tgx.Vec3
		normals   []tgx.Vec3
		texcoords []tgx.Vec2
		hasNormal bool
		hasUV     bool
		tris      [][3]int
	)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("read positions: %w", err)
			}

			base := len(vertices)
			vertices = append(vertices, positions...)

			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				ns, err := readVec3Accessor(doc, normIdx)
				if err != nil {
					return nil, fmt.Errorf("read normals: %w", err)
				}
				normals = append(normals, ns...)
				hasNormal = true
			} else {
				normals = append(normals, make([]tgx.Vec3, len(positions))...)
			}

			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				uvs, err := readVec2Accessor(doc, uvIdx)
				if err != nil {
					return nil, fmt.Errorf("read uvs: %w", err)
				}
				// glTF and tgx.Texture both map v=0 to the image's top row,
				// so UVs are copied unchanged.
				texcoords = append(texcoords, uvs...)
				hasUV = true
			} else {
				texcoords = append(texcoords, make([]tgx.Vec2, len(positions))...)
			}

			if prim.Indices != nil {
				idx, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("read indices: %w", err)
				}
				for i := 0; i+2 < len(idx); i += 3 {
					tris = append(tris, [3]int{base + idx[i], base + idx[i+1], base + idx[i+2]})
				}
			} else {
				for i := 0; i+2 < len(positions); i += 3 {
					tris = append(tris, [3]int{base + i, base + i + 1, base + i + 2})
				}
			}
		}
	}

	mesh := &tgx.Mesh{Vertices: vertices}
	if hasNormal {
		mesh.Normals = normals
	}
	if hasUV {
		mesh.TexCoords = texcoords
	}
	mesh.Faces = encodeChains(tris, hasUV, hasNormal)
	mesh.BoundingBox = computeBounds(vertices)
	return mesh, nil
}

// encodeChains greedily groups consecutive triangles sharing two vertices
// with their predecessor's current slots into one run-length chain,
// matching the decoder's swap rule in mesh.go exactly (§6): a successor's
// top bit clear retains slot 1 and displaces slot 0 with the old slot 2;
// top bit set retains slot 0 and displaces slot 1.
func encodeChains(tris [][3]int, hasUV, hasNormal bool) []uint16 {
	var out []uint16
	i := 0
	for i < len(tris) {
		slots := tris[i]
		chainStart := len(out)
		out = append(out, 0) // placeholder for N
		emitVertexRec(&out, slots[0], hasUV, hasNormal)
		emitVertexRec(&out, slots[1], hasUV, hasNormal)
		emitVertexRec(&out, slots[2], hasUV, hasNormal)
		n := uint16(1)
		i++

		for i < len(tris) {
			next := tris[i]
			if v, ok := matchPattern(slots, next, false); ok {
				emitSuccessorRec(&out, v, false, hasUV, hasNormal)
				slots[0], slots[2] = slots[2], v
				n++
				i++
				continue
			}
			if v, ok := matchPattern(slots, next, true); ok {
				emitSuccessorRec(&out, v, true, hasUV, hasNormal)
				slots[1], slots[2] = slots[2], v
				n++
				i++
				continue
			}
			break
		}
		out[chainStart] = n
	}
	out = append(out, 0)
	return out
}

// matchPattern checks whether `next` equals the triangle the decoder would
// produce for the given top-bit choice from `slots`, trying all three
// cyclic rotations of next so winding-preserving matches are not missed.
// top=false expects (slots[2], slots[1], newVertex); top=true expects
// (slots[0], slots[2], newVertex).
func matchPattern(slots [3]int, next [3]int, top bool) (newVertex int, ok bool) {
	var want [2]int
	if top {
		want = [2]int{slots[0], slots[2]}
	} else {
		want = [2]int{slots[2], slots[1]}
	}
	rot := [3][3]int{next, {next[1], next[2], next[0]}, {next[2], next[0], next[1]}}
	for _, r := range rot {
		if r[0] == want[0] && r[1] == want[1] {
			return r[2], true
		}
	}
	return 0, false
}

func emitVertexRec(out *[]uint16, vid int, hasUV, hasNormal bool) {
	*out = append(*out, uint16(vid))
	if hasUV {
		*out = append(*out, uint16(vid))
	}
	if hasNormal {
		*out = append(*out, uint16(vid))
	}
}

func emitSuccessorRec(out *[]uint16, vid int, topBit bool, hasUV, hasNormal bool) {
	v := uint16(vid)
	if topBit {
		v |= 0x8000
	}
	*out = append(*out, v)
	if hasUV {
		*out = append(*out, uint16(vid))
	}
	if hasNormal {
		*out = append(*out, uint16(vid))
	}
}

func computeBounds(vertices []tgx.Vec3) [6]float64 {
	if len(vertices) == 0 {
		return [6]float64{}
	}
	bb := [6]float64{vertices[0].X, vertices[0].X, vertices[0].Y, vertices[0].Y, vertices[0].Z, vertices[0].Z}
	for _, v := range vertices[1:] {
		if v.X < bb[0] {
			bb[0] = v.X
		}
		if v.X > bb[1] {
			bb[1] = v.X
		}
		if v.Y < bb[2] {
			bb[2] = v.Y
		}
		if v.Y > bb[3] {
			bb[3] = v.Y
		}
		if v.Z < bb[4] {
			bb[4] = v.Z
		}
		if v.Z > bb[5] {
			bb[5] = v.Z
		}
	}
	return bb
}
