package main

import (
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/models"
	"github.com/taigrr/vista/pkg/scene"
)

var palette = []math3d.Vec4{
	math3d.V4(0.2, 0.9, 0.5, 1),
	math3d.V4(0.3, 0.6, 1, 1),
	math3d.V4(1, 0.6, 0.2, 1),
	math3d.V4(0.9, 0.3, 0.6, 1),
}

// gridScene lays out n*n unit cubes on the XZ plane, two units apart, each
// under its own transform and cull node. Cubes of the same colour share
// one mesh subtree.
func gridScene(n int) scene.Node {
	leaves := make([]scene.Node, len(palette))
	for i, c := range palette {
		m := models.NewCube(1)
		m.Material.BaseColor = c
		leaves[i] = models.MeshNode(m)
	}

	root := scene.NewGroup()
	half := float64(n-1) / 2
	for i := range n {
		row := scene.NewGroup()
		for j := range n {
			pos := math3d.V3((float64(i)-half)*2, 0, (float64(j)-half)*2)
			row.AddChild(scene.NewMatrixTransform(math3d.Translate(pos), leaves[(i+j)%len(leaves)]))
		}
		root.AddChild(row)
	}
	return root
}
