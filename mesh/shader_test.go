package mesh

import (
	"strings"
	"testing"
)

func TestShaderSource(t *testing.T) {
	src := Shader()
	for _, want := range []string{"fn vs_main", "fn fs_main", "@location(1) uv"} {
		if !strings.Contains(src, want) {
			t.Errorf("shader missing %q", want)
		}
	}
}

func TestCompileShader(t *testing.T) {
	code, err := CompileShader()
	if err != nil {
		t.Fatalf("CompileShader: %v", err)
	}
	const spirvMagic = 0x07230203
	if len(code) == 0 {
		t.Fatal("CompileShader returned no code")
	}
	if code[0] != spirvMagic {
		t.Errorf("SPIR-V magic = %#x, want %#x", code[0], spirvMagic)
	}
}
