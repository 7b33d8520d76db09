// Package glsl provides the embedded GLSL sources shipped with mage.
package glsl

import "embed"

// FS holds every shader source in this directory.
//
//go:embed *.vert *.frag *.geom
var FS embed.FS

// Stage file names inside FS.
const (
	BlinnPhongVertex   = "blinn_phong.vert"
	BlinnPhongFragment = "blinn_phong.frag"

	NormalsVertex   = "normals.vert"
	NormalsGeometry = "normals.geom"
	NormalsFragment = "normals.frag"
)
