// Package texsync copies glyph coverage produced by the atlas into a
// texture the renderer samples from.
//
// The atlas hands out single-channel coverage. Texture targets store it as
// RGBA with every pixel (0, 0, 0, coverage), so a shader can multiply the
// sampled alpha by its text color.
//
//	target := texsync.NewImageTarget(512, 512)
//	syncer := texsync.NewSyncer(target)
//	err := cache.Flush(syncer.Apply)
//
// Available targets:
//   - ImageTarget: CPU image, useful for tests and atlas dumps
//   - HALTarget: a wgpu/hal texture written through Queue.WriteTexture
//   - UpdaterTarget: any gpucontext.TextureUpdater (whole-texture updates)
//   - gltex.Texture: an OpenGL texture written with glTexSubImage2D
//
// Every failure reported by Syncer.Apply is a *TextureUploadError.
package texsync
