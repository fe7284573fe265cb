package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/gogpu/glyphmesh"
)

// printFrame reports one rebuilt frame.
func printFrame(w io.Writer, buf string, f glyphmesh.Frame) {
	fmt.Fprintf(w, "%q\n", buf)
	fmt.Fprintf(w, "glyphs=%d quads=%d skipped=%d vertices=%d indices=%d extent=%v\n",
		len(f.Glyphs), f.Build.Quads, f.Build.Skipped,
		len(f.Mesh.Vertices), len(f.Mesh.Indices), f.Extent)
}

// printStats renders pipeline statistics as a table.
func printStats(s glyphmesh.Stats) {
	data := [][]string{
		{"Counter", "Value"},
		{"frames", strconv.Itoa(s.Frames)},
		{"layout hits", strconv.FormatUint(s.LayoutHits, 10)},
		{"layout misses", strconv.FormatUint(s.LayoutMisses, 10)},
		{"atlas entries", strconv.Itoa(s.Atlas.Entries)},
		{"atlas hits", strconv.FormatUint(s.Atlas.Hits, 10)},
		{"atlas misses", strconv.FormatUint(s.Atlas.Misses, 10)},
		{"rebuilds", strconv.FormatUint(s.Atlas.Rebuilds, 10)},
		{"overflows", strconv.FormatUint(s.Atlas.Overflows, 10)},
		{"uploads", strconv.Itoa(s.Regions)},
		{"upload bytes", strconv.Itoa(s.UploadBytes)},
		{"utilization", fmt.Sprintf("%.1f%%", s.Atlas.Utilization*100)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
