package shaders

import (
	_ "embed"
)

//go:embed star.wgsl
var StarWGSL string

//go:embed text.wgsl
var TextWGSL string
