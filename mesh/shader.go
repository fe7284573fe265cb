package mesh

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// Shader returns the WGSL source of the glyph shader. Entry points are
// vs_main and fs_main; bindings are the color uniform (0), the atlas
// texture (1) and its sampler (2).
func Shader() string { return glyphShaderSource }

// CompileShader compiles the glyph shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(glyphShaderSource)
	if err != nil {
		return nil, fmt.Errorf("mesh: failed to compile glyph shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("mesh: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
