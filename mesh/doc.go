// Package mesh turns laid-out, atlas-resident glyphs into textured quads.
//
// Positions are in clip space: x grows right, y grows up, both in [-1, 1]
// for points inside the viewport. UVs are normalized atlas coordinates
// with v growing down, matching the texture upload order.
//
// Each visible glyph produces exactly one quad: four vertices in the order
// bottom-left, top-left, top-right, bottom-right and six indices
// base+{0,1,2, 0,2,3}. Glyphs without atlas residency produce nothing.
package mesh
