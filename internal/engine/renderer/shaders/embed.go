// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BodyVertexShader transforms sphere vertices into clip space.
//
//go:embed body.vert
var BodyVertexShader string

// BodyFragmentShader lights bodies from the emissive root.
//
//go:embed body.frag
var BodyFragmentShader string
