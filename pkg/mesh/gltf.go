package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/toyrender/pkg/math3d"
)

// LoadGLTF loads a .gltf or .glb file. Each glTF mesh becomes an Object and
// each triangle primitive a Group whose material is already resolved.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m, err := DecodeGLTF(doc)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// DecodeGLTF converts an in-memory glTF document.
func DecodeGLTF(doc *gltf.Document) (*MeshData, error) {
	m := &MeshData{}

	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = gltfMaterial(gm, i)
	}

	for _, gmesh := range doc.Meshes {
		obj := Object{Name: gmesh.Name}
		if obj.Name == "" {
			obj.Name = DefaultName
		}

		for _, prim := range gmesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				// Lines and points have no faces to fill.
				continue
			}
			g, err := m.appendPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", obj.Name, err)
			}
			g.Name = obj.Name
			g.Index = len(obj.Groups)
			if prim.Material != nil && *prim.Material < len(materials) {
				mat := materials[*prim.Material]
				g.Material = &MaterialRef{Name: mat.Name, Material: mat}
			}
			obj.Groups = append(obj.Groups, g)
		}
		m.Objects = append(m.Objects, obj)
	}

	if len(m.Objects) == 0 {
		m.Objects = append(m.Objects, Object{Name: DefaultName})
	}
	return m, nil
}

func gltfMaterial(gm *gltf.Material, i int) *Material {
	mat := &Material{Name: gm.Name}
	if mat.Name == "" {
		mat.Name = fmt.Sprintf("material%d", i)
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		kd := math3d.V3(c[0], c[1], c[2])
		d := c[3]
		mat.Diffuse = &kd
		mat.Dissolve = &d
	}
	return mat
}

// appendPrimitive appends the primitive's vertex streams to the mesh arrays
// and returns a group holding its triangles.
func (m *MeshData) appendPrimitive(doc *gltf.Document, prim *gltf.Primitive) (Group, error) {
	var g Group

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return g, nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return g, fmt.Errorf("read positions: %w", err)
	}

	basePos := len(m.Positions)
	m.Positions = append(m.Positions, positions...)

	baseNorm := NoIndex
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := readVec3Accessor(doc, idx)
		if err != nil {
			return g, fmt.Errorf("read normals: %w", err)
		}
		if len(normals) == len(positions) {
			baseNorm = len(m.Normals)
			m.Normals = append(m.Normals, normals...)
		}
	}

	baseTex := NoIndex
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := readVec2Accessor(doc, idx)
		if err != nil {
			return g, fmt.Errorf("read texcoords: %w", err)
		}
		if len(uvs) == len(positions) {
			baseTex = len(m.Texcoords)
			m.Texcoords = append(m.Texcoords, uvs...)
		}
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return g, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	tuple := func(i int) IndexTuple {
		t := IndexTuple{Position: basePos + i, Texcoord: NoIndex, Normal: NoIndex}
		if baseTex != NoIndex {
			t.Texcoord = baseTex + i
		}
		if baseNorm != NoIndex {
			t.Normal = baseNorm + i
		}
		return t
	}

	for i := 0; i+2 < len(indices); i += 3 {
		poly := make(Polygon, 3)
		for k := range 3 {
			if indices[i+k] >= len(positions) {
				return g, fmt.Errorf("index %d out of range", indices[i+k])
			}
			poly[k] = tuple(indices[i+k])
		}
		g.Polygons = append(g.Polygons, poly)
	}
	return g, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	acc, err := accessor(doc, accessorIdx, gltf.AccessorVec3)
	if err != nil {
		return nil, err
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, acc.Count)
	for i := range acc.Count {
		b := data[i*stride:]
		out[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	acc, err := accessor(doc, accessorIdx, gltf.AccessorVec2)
	if err != nil {
		return nil, err
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec2, acc.Count)
	for i := range acc.Count {
		b := data[i*stride:]
		out[i] = math3d.V2(readFloat32(b), readFloat32(b[4:]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	acc, err := accessor(doc, accessorIdx, gltf.AccessorScalar)
	if err != nil {
		return nil, err
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", acc.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, acc.Count)
	for i := range acc.Count {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

func accessor(doc *gltf.Document, idx int, want gltf.AccessorType) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != want {
		return nil, fmt.Errorf("accessor %d: expected %v, got %v", idx, want, acc.Type)
	}
	if acc.Type != gltf.AccessorScalar && acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: unsupported component type %v", idx, acc.ComponentType)
	}
	return acc, nil
}

// accessorBytes returns the accessor's bytes starting at its first element
// and the element stride, after checking every element fits the buffer.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil || *acc.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer].Data
	if buf == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	end := start
	if acc.Count > 0 {
		end += (acc.Count-1)*stride + elemSize
	}
	if start < 0 || end > len(buf) {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer")
	}
	return buf[start:], stride, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
