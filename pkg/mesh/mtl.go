package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// Material is one newmtl record. Attributes the library did not set are nil
// or empty.
type Material struct {
	Name string

	Ambient            *math3d.Vec3 // Ka
	Diffuse            *math3d.Vec3 // Kd
	Specular           *math3d.Vec3 // Ks
	Emissive           *math3d.Vec3 // Ke
	TransmissionFilter *math3d.Vec3 // Tf

	Shininess      *float64 // Ns
	OpticalDensity *float64 // Ni
	BumpMultiplier *float64 // Km
	Dissolve       *float64 // d
	Transparency   *float64 // Tr

	Illumination *int // illum

	AmbientMap    string // map_Ka
	DiffuseMap    string // map_Kd
	SpecularMap   string // map_Ks
	DissolveMap   string // map_d
	ReflectionMap string // map_refl, refl
	BumpMap       string // map_bump, map_Bump, bump
}

// TextureMaps returns the non-empty texture paths keyed by directive.
func (m *Material) TextureMaps() map[string]string {
	out := make(map[string]string)
	for k, v := range map[string]string{
		"map_Ka":   m.AmbientMap,
		"map_Kd":   m.DiffuseMap,
		"map_Ks":   m.SpecularMap,
		"map_d":    m.DissolveMap,
		"map_refl": m.ReflectionMap,
		"map_bump": m.BumpMap,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ParseMTL parses a Wavefront material library. Materials are returned in
// declaration order. Directives before the first newmtl are validated but
// otherwise ignored.
func ParseMTL(r io.Reader) ([]*Material, error) {
	var (
		materials []*Material
		cur       *Material
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for line := 0; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, &MaterialError{Line: line, Kind: ErrMissingMaterialName, Directive: fields[0]}
			}
			if cur != nil {
				materials = append(materials, cur)
			}
			cur = &Material{Name: strings.Join(fields[1:], " ")}
			continue
		}

		m := cur
		if m == nil {
			m = &Material{} // scratch record, discarded
		}
		if err := applyMaterialDirective(m, line, fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read material library: %w", err)
	}

	if cur != nil {
		materials = append(materials, cur)
	}
	return materials, nil
}

func applyMaterialDirective(m *Material, line int, fields []string) error {
	directive, args := fields[0], fields[1:]

	vec := func(dst **math3d.Vec3) error {
		v, err := materialVec3(line, directive, args)
		if err == nil {
			*dst = &v
		}
		return err
	}
	scalar := func(dst **float64) error {
		v, err := materialFloat(line, directive, args)
		if err == nil {
			*dst = &v
		}
		return err
	}
	path := func(dst *string) error {
		if len(args) == 0 {
			return &MaterialError{Line: line, Kind: ErrMissingValue, Directive: directive, Expected: ExpectString}
		}
		*dst = strings.Join(args, " ")
		return nil
	}

	switch directive {
	case "Ka":
		return vec(&m.Ambient)
	case "Kd":
		return vec(&m.Diffuse)
	case "Ks":
		return vec(&m.Specular)
	case "Ke":
		return vec(&m.Emissive)
	case "Tf":
		return vec(&m.TransmissionFilter)
	case "Ns":
		return scalar(&m.Shininess)
	case "Ni":
		return scalar(&m.OpticalDensity)
	case "Km":
		return scalar(&m.BumpMultiplier)
	case "d":
		return scalar(&m.Dissolve)
	case "Tr":
		return scalar(&m.Transparency)
	case "illum":
		if len(args) == 0 {
			return &MaterialError{Line: line, Kind: ErrMissingValue, Directive: directive, Expected: ExpectInt}
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return &MaterialError{Line: line, Kind: ErrInvalidValue, Directive: directive, Value: args[0], Expected: ExpectInt}
		}
		m.Illumination = &v
		return nil
	case "map_Ka":
		return path(&m.AmbientMap)
	case "map_Kd":
		return path(&m.DiffuseMap)
	case "map_Ks":
		return path(&m.SpecularMap)
	case "map_d":
		return path(&m.DissolveMap)
	case "map_refl", "refl":
		return path(&m.ReflectionMap)
	case "map_bump", "map_Bump", "bump":
		return path(&m.BumpMap)
	default:
		return &MaterialError{Line: line, Kind: ErrInvalidInstruction, Directive: directive}
	}
}

func materialFloat(line int, directive string, args []string) (float64, error) {
	if len(args) == 0 {
		return 0, &MaterialError{Line: line, Kind: ErrMissingValue, Directive: directive, Expected: ExpectFloat}
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, &MaterialError{Line: line, Kind: ErrInvalidValue, Directive: directive, Value: args[0], Expected: ExpectFloat}
	}
	return v, nil
}

func materialVec3(line int, directive string, args []string) (math3d.Vec3, error) {
	var v [3]float64
	for i := range 3 {
		if i >= len(args) {
			return math3d.Vec3{}, &MaterialError{Line: line, Kind: ErrMissingValue, Directive: directive, Expected: ExpectFloat}
		}
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return math3d.Vec3{}, &MaterialError{Line: line, Kind: ErrInvalidValue, Directive: directive, Value: args[i], Expected: ExpectFloat}
		}
		v[i] = f
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}
