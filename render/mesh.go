package render

import "github.com/voxelsplace/voxland/voxel"

// Vertex is a mesh vertex in world space (Z up).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type faceSpec struct {
	axis   int // axis the face is perpendicular to
	sign   int
	u, v   int
	normal [3]float32
}

var faces = []faceSpec{
	{0, 1, 1, 2, [3]float32{1, 0, 0}},
	{0, -1, 1, 2, [3]float32{-1, 0, 0}},
	{1, 1, 0, 2, [3]float32{0, 1, 0}},
	{1, -1, 0, 2, [3]float32{0, -1, 0}},
	{2, 1, 0, 1, [3]float32{0, 0, 1}},
	{2, -1, 0, 1, [3]float32{0, 0, -1}},
}

func coordArray(c voxel.Coord) [3]int { return [3]int{c.X, c.Y, c.Z} }

// GenerateMesh builds one cube per object, dropping faces shared with an
// occupied neighbor cell.
func GenerateMesh(objs []Object) *Mesh {
	occupied := make(map[voxel.Coord]struct{}, len(objs))
	for _, o := range objs {
		occupied[o.Pos] = struct{}{}
	}
	mesh := &Mesh{}
	for _, o := range objs {
		p := coordArray(o.Pos)
		for _, f := range faces {
			n := p
			n[f.axis] += f.sign
			if _, ok := occupied[voxel.Coord{X: n[0], Y: n[1], Z: n[2]}]; ok {
				continue
			}
			addQuad(mesh, f, p, o.Color.RGBA())
		}
	}
	return mesh
}

func addQuad(mesh *Mesh, f faceSpec, p [3]int, color [4]float32) {
	var base [3]float32
	for i := range base {
		base[i] = float32(p[i])
	}
	if f.sign > 0 {
		base[f.axis]++
	}
	du, dv := base, base
	du[f.u]++
	dv[f.v]++
	uv := du
	uv[f.v]++

	verts := [4]Vertex{
		{Position: base, Normal: f.normal, Color: color},
		{Position: du, Normal: f.normal, Color: color},
		{Position: uv, Normal: f.normal, Color: color},
		{Position: dv, Normal: f.normal, Color: color},
	}
	// u x v opposes the normal on exactly one of: negative faces, y faces
	if (f.sign < 0) != (f.axis == 1) {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}
