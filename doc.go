// Package glyphmesh renders text as GPU-drawable geometry.
//
// # Overview
//
// Each frame runs the same chain:
//
//	text -> layout -> atlas queue -> flush (texture uploads) -> resolve -> mesh
//
// Glyphs are rasterized once into a bounded atlas texture and reused across
// frames. The output is a vertex/index buffer of textured quads in clip
// space that samples that texture.
//
// # Quick Start
//
//	source, _ := text.NewFontSource(goregular.TTF)
//	target := texsync.NewImageTarget(512, 512)
//
//	p, err := glyphmesh.New(source, target)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frame, err := p.Frame("Hello, world", 24, 512, 800, 600)
//	if errors.Is(err, glyphmesh.ErrCacheOverflow) {
//	    // grow the atlas with p.ResizeAtlas and retry
//	}
//	draw(frame.Mesh.VertexBytes(), frame.Mesh.IndexBytes())
//
// # Packages
//
//   - text: font sources, kerning, paragraph layout
//   - atlas: glyph cache with queue/flush/resolve cycles
//   - texsync: coverage uploads into CPU, wgpu/hal, gpucontext or OpenGL textures
//   - mesh: clip-space mapping, quad generation, vertex layout and shader
//
// # Logging
//
// Nothing is logged by default. SetLogger enables structured logging for
// all packages.
package glyphmesh
