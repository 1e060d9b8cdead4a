// Package mesh loads polygon meshes and their material libraries into
// MeshData, the structure consumed by the render package.
package mesh

import (
	"strconv"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// DefaultName names objects and groups that no directive named.
const DefaultName = "default"

// NoIndex marks an absent texcoord or normal reference.
const NoIndex = -1

// MeshData owns all geometry parsed from one mesh file.
type MeshData struct {
	Positions []math3d.Vec3
	Texcoords []math3d.Vec2
	Normals   []math3d.Vec3
	Objects   []Object

	// MaterialLibraries lists mtllib references in declaration order.
	MaterialLibraries []string

	// Dir is the directory the mesh was loaded from, used to locate
	// material libraries. Empty for meshes parsed from memory.
	Dir string
}

// Object is a named collection of groups.
type Object struct {
	Name   string
	Groups []Group
}

// Group is a run of polygons sharing at most one material.
type Group struct {
	Name string
	// Index disambiguates groups that repeat Name under different materials.
	Index    int
	Material *MaterialRef // nil when no usemtl applied
	Polygons []Polygon
}

// Polygon is an ordered list of vertex references. Only the first three
// entries are rasterized.
type Polygon []IndexTuple

// IndexTuple references one vertex. Indices are zero-based; Texcoord and
// Normal are NoIndex when absent.
type IndexTuple struct {
	Position int
	Texcoord int
	Normal   int
}

// String renders the tuple in its 1-based source form (p, p/t, p//n or p/t/n).
func (t IndexTuple) String() string {
	s := strconv.Itoa(t.Position + 1)
	switch {
	case t.Texcoord != NoIndex && t.Normal != NoIndex:
		return s + "/" + strconv.Itoa(t.Texcoord+1) + "/" + strconv.Itoa(t.Normal+1)
	case t.Texcoord != NoIndex:
		return s + "/" + strconv.Itoa(t.Texcoord+1)
	case t.Normal != NoIndex:
		return s + "//" + strconv.Itoa(t.Normal+1)
	default:
		return s
	}
}

// MaterialRef is a material binding. It starts out by name and becomes
// resolved once a material library supplies a definition.
type MaterialRef struct {
	Name     string
	Material *Material // nil until resolved
}

// ByName creates an unresolved reference.
func ByName(name string) *MaterialRef {
	return &MaterialRef{Name: name}
}

// Resolved reports whether a library definition has been bound.
func (r *MaterialRef) Resolved() bool {
	return r != nil && r.Material != nil
}

// Triangle returns the positions of the first three vertices of p.
// ok is false when p has fewer than three vertices or references a
// position outside the array.
func (m *MeshData) Triangle(p Polygon) (tri [3]math3d.Vec3, ok bool) {
	if len(p) < 3 {
		return tri, false
	}
	for i := range 3 {
		idx := p[i].Position
		if idx < 0 || idx >= len(m.Positions) {
			return tri, false
		}
		tri[i] = m.Positions[idx]
	}
	return tri, true
}

// GroupCount returns the number of groups across all objects.
func (m *MeshData) GroupCount() int {
	n := 0
	for _, o := range m.Objects {
		n += len(o.Groups)
	}
	return n
}

// PolygonCount returns the number of polygons across all groups.
func (m *MeshData) PolygonCount() int {
	n := 0
	for _, o := range m.Objects {
		for _, g := range o.Groups {
			n += len(g.Polygons)
		}
	}
	return n
}

// Materials returns every distinct resolved material, in first-use order.
func (m *MeshData) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	for _, o := range m.Objects {
		for _, g := range o.Groups {
			if !g.Material.Resolved() || seen[g.Material.Material] {
				continue
			}
			seen[g.Material.Material] = true
			out = append(out, g.Material.Material)
		}
	}
	return out
}

// UnresolvedMaterials returns the names referenced by groups that no
// library defined.
func (m *MeshData) UnresolvedMaterials() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range m.Objects {
		for _, g := range o.Groups {
			if g.Material == nil || g.Material.Resolved() || seen[g.Material.Name] {
				continue
			}
			seen[g.Material.Name] = true
			out = append(out, g.Material.Name)
		}
	}
	return out
}
