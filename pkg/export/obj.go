// Package export writes finalized door meshes as Wavefront OBJ with a
// companion MTL material library.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// WriteOBJ writes buf as one object with a usemtl group per material slot.
// mtlLib, when set, is referenced with mtllib.
func WriteOBJ(w io.Writer, object string, buf *mesh.Buffer, mtlLib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# doorsmith")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}
	fmt.Fprintf(bw, "o %s\n", objectName(object))

	for _, v := range buf.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range buf.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	for _, g := range buf.Groups {
		fmt.Fprintf(bw, "usemtl %s\n", door.SlotName(g.Material))
		end := g.StartIndex + g.IndexCount
		for i := g.StartIndex; i+2 < end; i += 3 {
			a, b, c := buf.Indices[i]+1, buf.Indices[i+1]+1, buf.Indices[i+2]+1
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}

// WriteMTL writes one newmtl entry per material, named by slot.
func WriteMTL(w io.Writer, materials []door.Material) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# doorsmith")
	for slot, m := range materials {
		rgb := m.Color.Float3()
		fmt.Fprintf(bw, "\nnewmtl %s\n", door.SlotName(slot))
		fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", rgb[0], rgb[1], rgb[2])
		fmt.Fprintf(bw, "Ka %.4f %.4f %.4f\n", rgb[0]*0.2, rgb[1]*0.2, rgb[2]*0.2)
		fmt.Fprintln(bw, "Ks 0.1000 0.1000 0.1000")
		fmt.Fprintf(bw, "d %.4f\n", m.Opacity)
		illum := 2
		if m.Transparent {
			illum = 4
		}
		fmt.Fprintf(bw, "illum %d\n", illum)
	}
	return bw.Flush()
}

// Door writes <base>.obj and <base>.mtl for d into dir and returns the
// OBJ path.
func Door(dir, base string, d *door.Door) (path string, err error) {
	if base == "" {
		base = fmt.Sprintf("door-%d-%s", d.Type(), d.ID().String()[:8])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	objPath := filepath.Join(dir, base+".obj")
	mtlPath := filepath.Join(dir, base+".mtl")

	mtl, err := os.Create(mtlPath)
	if err != nil {
		return "", fmt.Errorf("create mtl: %w", err)
	}
	defer func() { err = multierr.Append(err, mtl.Close()) }()
	if err := WriteMTL(mtl, d.Material()); err != nil {
		return "", fmt.Errorf("write mtl: %w", err)
	}

	obj, err := os.Create(objPath)
	if err != nil {
		return "", fmt.Errorf("create obj: %w", err)
	}
	defer func() { err = multierr.Append(err, obj.Close()) }()

	name := d.Name()
	if name == "" {
		name = d.Variant().Name
	}
	if err := WriteOBJ(obj, name, d.Geometry().Buffer(), filepath.Base(mtlPath)); err != nil {
		return "", fmt.Errorf("write obj: %w", err)
	}
	return objPath, nil
}

func objectName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "door"
	}
	return strings.Join(strings.Fields(s), "_")
}
