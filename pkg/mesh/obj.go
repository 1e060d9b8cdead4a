package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// maxLineSize bounds a single mesh or material line.
const maxLineSize = 16 << 20

// ParseOBJ parses Wavefront OBJ text. Material references are left
// unresolved; see MeshData.ResolveMaterials.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	p := &objParser{
		mesh:   &MeshData{},
		object: Object{Name: DefaultName},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for line := 0; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.parseLine(line, fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mesh: %w", err)
	}

	p.flushGroup()
	p.mesh.Objects = append(p.mesh.Objects, p.object)
	return p.mesh, nil
}

type objParser struct {
	mesh   *MeshData
	object Object
	group  *Group // pending group, nil when unset
}

func (p *objParser) parseLine(line int, fields []string) error {
	switch fields[0] {
	case "v":
		v, ok := parseFloats(fields[1:], 3)
		if !ok {
			return &ParseError{Line: line, Kind: ErrArgumentList, Tokens: fields}
		}
		p.mesh.Positions = append(p.mesh.Positions, math3d.V3(v[0], v[1], v[2]))

	case "vt":
		v, ok := parseFloats(fields[1:], 2)
		if !ok {
			return &ParseError{Line: line, Kind: ErrArgumentList, Tokens: fields}
		}
		p.mesh.Texcoords = append(p.mesh.Texcoords, math3d.V2(v[0], v[1]))

	case "vn":
		v, ok := parseFloats(fields[1:], 3)
		if !ok {
			return &ParseError{Line: line, Kind: ErrArgumentList, Tokens: fields}
		}
		p.mesh.Normals = append(p.mesh.Normals, math3d.V3(v[0], v[1], v[2]))

	case "f":
		if len(fields) < 4 {
			return &ParseError{Line: line, Kind: ErrArgumentList, Tokens: fields}
		}
		poly := make(Polygon, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			t, ok := p.parseIndexTuple(tok)
			if !ok {
				return &ParseError{Line: line, Kind: ErrMalformedFaceGroup, Token: tok}
			}
			poly = append(poly, t)
		}
		g := p.pendingGroup()
		g.Polygons = append(g.Polygons, poly)

	case "o":
		p.flushGroup()
		p.mesh.Objects = append(p.mesh.Objects, p.object)
		p.object = Object{Name: nameOrDefault(fields[1:])}

	case "g":
		p.flushGroup()
		if len(fields) > 1 {
			p.group = &Group{Name: strings.Join(fields[1:], " ")}
		}

	case "mtllib":
		if len(fields) < 2 {
			return &ParseError{Line: line, Kind: ErrMissingMaterialLibName}
		}
		p.mesh.MaterialLibraries = append(p.mesh.MaterialLibraries, strings.Join(fields[1:], " "))

	case "usemtl":
		g := p.pendingGroup()
		if g.Material != nil {
			next := &Group{Name: g.Name, Index: g.Index + 1}
			p.flushGroup()
			p.group = next
		}
		// Only the first token names the material; a bare usemtl clears it.
		p.group.Material = nil
		if len(fields) > 1 {
			p.group.Material = ByName(fields[1])
		}

	case "s", "l":
		// Smoothing groups and polylines carry nothing for the rasterizer.
	}
	return nil
}

// pendingGroup returns the pending group, starting a default one if unset.
func (p *objParser) pendingGroup() *Group {
	if p.group == nil {
		p.group = &Group{Name: DefaultName}
	}
	return p.group
}

func (p *objParser) flushGroup() {
	if p.group == nil {
		return
	}
	p.object.Groups = append(p.object.Groups, *p.group)
	p.group = nil
}

// parseIndexTuple parses p, p/t, p//n or p/t/n against the current array
// lengths.
func (p *objParser) parseIndexTuple(tok string) (IndexTuple, bool) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return IndexTuple{}, false
	}

	t := IndexTuple{Texcoord: NoIndex, Normal: NoIndex}
	var ok bool
	if t.Position, ok = resolveIndex(parts[0], len(p.mesh.Positions)); !ok {
		return t, false
	}
	if len(parts) > 1 && parts[1] != "" {
		if t.Texcoord, ok = resolveIndex(parts[1], len(p.mesh.Texcoords)); !ok {
			return t, false
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if t.Normal, ok = resolveIndex(parts[2], len(p.mesh.Normals)); !ok {
			return t, false
		}
	}
	return t, true
}

// resolveIndex converts a 1-based or end-relative negative index into a
// zero-based one that must fall inside an array of length n.
func resolveIndex(s string, n int) (int, bool) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if idx < 0 {
		idx += n
	} else {
		idx--
	}
	return idx, idx >= 0 && idx < n
}

// parseFloats parses the first n tokens. Extra tokens are ignored.
func parseFloats(tokens []string, n int) ([]float64, bool) {
	if len(tokens) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func nameOrDefault(tokens []string) string {
	if len(tokens) == 0 {
		return DefaultName
	}
	return strings.Join(tokens, " ")
}
