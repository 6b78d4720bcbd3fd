package meshconv

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/FASTSHIFT/tgx-go"
)

// The accessor readers below are adapted from taigrr-trophy's GLTFLoader:
// manual little-endian decoding against the buffer-view byte range, since
// this vendored qmuntal/gltf build exposes only the raw document, not a
// modeler convenience layer. binary.LittleEndian replaces the original's
// unsafe pointer cast for the float32 read.

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]tgx.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, stride, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12
	}
	out := make([]tgx.Vec3, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = tgx.Vec3{
			X: float64(readFloat32(data, off)),
			Y: float64(readFloat32(data, off+4)),
			Z: float64(readFloat32(data, off+8)),
		}
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]tgx.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, stride, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 8
	}
	out := make([]tgx.Vec2, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = tgx.Vec2{
			X: float64(readFloat32(data, off)),
			Y: float64(readFloat32(data, off+4)),
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, stride, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := range out {
			out[i] = int(data[start+i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := range out {
			off := start + i*stride
			out[i] = int(binary.LittleEndian.Uint16(data[off : off+2]))
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := range out {
			off := start + i*stride
			out[i] = int(binary.LittleEndian.Uint32(data[off : off+4]))
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return out, nil
}

func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) (data []byte, stride, start int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, 0, fmt.Errorf("external glTF buffers are not supported")
	}
	return buf.Data, int(bv.ByteStride), int(bv.ByteOffset + accessor.ByteOffset), nil
}

func readFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}
