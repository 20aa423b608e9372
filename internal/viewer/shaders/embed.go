// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PointsVertexShader positions and sizes one point per solid cell.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader draws round, lightly shaded points.
//
//go:embed points.frag
var PointsFragmentShader string
