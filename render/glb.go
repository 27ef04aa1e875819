package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// toGLTF maps world space (Z up) to glTF space (Y up): (x, y, z) -> (x, z, -y).
func toGLTF(v [3]float32) [3]float32 { return [3]float32{v[0], v[2], -v[1]} }

// BuildDocument turns objects into a single-mesh glTF document with
// per-vertex colors.
func BuildDocument(objs []Object) (*gltf.Document, error) {
	if len(objs) == 0 {
		return nil, fmt.Errorf("empty scene: nothing to export")
	}
	mesh := GenerateMesh(objs)

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	hasAlpha := false
	for i, v := range mesh.Vertices {
		positions[i] = toGLTF(v.Position)
		normals[i] = toGLTF(v.Normal)
		colors[i] = v.Color
		if v.Color[3] < 1.0 {
			hasAlpha = true
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxland"
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, mesh.Indices)
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices: gltf.Index(indicesAccessor),
	}
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	doc.Materials = []*gltf.Material{material}
	prim.Material = gltf.Index(0)
	doc.Meshes = []*gltf.Mesh{{Name: "Land", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Land", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// ExportGLB writes the scene's live objects as a binary glTF.
func ExportGLB(w io.Writer, s *Scene) error {
	doc, err := BuildDocument(s.Objects())
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// GLBBytes is ExportGLB into memory.
func GLBBytes(s *Scene) ([]byte, error) {
	var out bytes.Buffer
	if err := ExportGLB(&out, s); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SaveGLB writes the scene to a .glb file.
func SaveGLB(s *Scene, path string) error {
	doc, err := BuildDocument(s.Objects())
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}
