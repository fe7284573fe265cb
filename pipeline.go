package glyphmesh

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/glyphmesh/atlas"
	"github.com/gogpu/glyphmesh/internal/cache"
	"github.com/gogpu/glyphmesh/internal/logging"
	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/texsync"
	"github.com/gogpu/glyphmesh/text"
)

// Frame is the output of one Pipeline.Frame call.
type Frame struct {
	// Mesh holds the quads. Its buffers are reused by the next Frame call.
	Mesh mesh.Mesh

	// Glyphs is the layout the mesh was built from.
	Glyphs []text.PositionedGlyph

	// Extent is the pixel rectangle covered by the glyph ink.
	Extent image.Rectangle

	// Build reports emitted and skipped quads.
	Build mesh.BuildStats
}

// Stats reports cumulative pipeline counters.
type Stats struct {
	Frames       int
	LayoutHits   uint64
	LayoutMisses uint64
	Regions      int // atlas regions uploaded
	UploadBytes  int // RGBA bytes uploaded
	Atlas        atlas.Stats
}

type layoutKey struct {
	fontID   uint64
	size     float64
	maxWidth int
	text     string
}

// committer is implemented by targets that batch writes until Commit,
// such as texsync.UpdaterTarget.
type committer interface {
	Commit() error
}

// resizer is implemented by targets that can change size.
type resizer interface {
	Resize(w, h int) error
}

// Pipeline turns strings into glyph meshes backed by one atlas texture.
//
// A Pipeline is not safe for concurrent use: frames run strictly one after
// another, and the atlas has a single writer.
type Pipeline struct {
	source *text.FontSource
	target texsync.Target
	syncer *texsync.Syncer
	atlas  *atlas.Cache
	opts   options

	layouts *cache.Cache[layoutKey, []text.PositionedGlyph]
	mesh    mesh.Mesh
	frames  int
}

// New creates a pipeline drawing source into target. The atlas takes the
// size of the target.
func New(source *text.FontSource, target texsync.Target, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if target == nil {
		return nil, ErrNilTarget
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := target.Size()
	cfg := atlas.Config{
		Width:             w,
		Height:            h,
		ScaleTolerance:    o.scaleTolerance,
		PositionTolerance: o.positionTolerance,
		Padding:           o.padding,
	}
	ac, err := atlas.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("glyphmesh: %w", err)
	}

	p := &Pipeline{
		source: source,
		target: target,
		syncer: texsync.NewSyncer(target),
		atlas:  ac,
		opts:   o,
	}
	if o.layoutCacheSize > 0 {
		p.layouts = cache.New[layoutKey, []text.PositionedGlyph](o.layoutCacheSize)
	}
	return p, nil
}

// Layout lays out s at size pixels per em, wrapping at maxWidth
// (maxWidth <= 0 disables wrapping). Results are cached; the returned
// slice must not be modified.
func (p *Pipeline) Layout(s string, size float64, maxWidth int) []text.PositionedGlyph {
	layout := func() []text.PositionedGlyph {
		return text.LayoutParagraphWithOptions(p.source, size, maxWidth, s, text.LayoutOptions{
			Kerner:         p.opts.kerner,
			DisableKerning: p.opts.disableKerning,
		})
	}
	if p.layouts == nil {
		return layout()
	}
	key := layoutKey{fontID: p.source.ID(), size: size, maxWidth: maxWidth, text: s}
	return p.layouts.GetOrCreate(key, layout)
}

// Frame lays out s, makes its glyphs resident in the atlas, uploads new
// glyphs to the target and builds the mesh for a viewport of vw×vh pixels.
//
// Errors:
//   - ErrInvalidViewport for a non-positive viewport
//   - ErrCacheOverflow (an *OverflowError) when the glyphs cannot all fit;
//     the atlas is empty afterwards and ResizeAtlas can grow it
//   - *TextureUploadError when the target rejects a write or a commit
func (p *Pipeline) Frame(s string, size float64, maxWidth, vw, vh int) (Frame, error) {
	if vw <= 0 || vh <= 0 {
		return Frame{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vw, vh)
	}
	glyphs := p.Layout(s, size, maxWidth)

	for _, g := range glyphs {
		p.atlas.Queue(p.opts.layer, g)
	}
	if err := p.atlas.Flush(p.syncer.Apply); err != nil {
		var overflow *atlas.OverflowError
		if errors.As(err, &overflow) {
			logging.L().Warn("glyphmesh: atlas overflow",
				"glyphs", overflow.Glyphs, "width", overflow.Width, "height", overflow.Height)
		}
		return Frame{}, err
	}
	if c, ok := p.target.(committer); ok {
		if err := c.Commit(); err != nil {
			return Frame{}, fmt.Errorf("glyphmesh: commit texture: %w", err)
		}
	}

	p.mesh.Reset()
	stats, err := mesh.Build(glyphs, p.opts.layer, p.atlas, vw, vh, p.mesh.Append)
	if err != nil {
		return Frame{}, err
	}
	p.frames++

	logging.L().Debug("glyphmesh: frame",
		"glyphs", len(glyphs), "quads", stats.Quads, "skipped", stats.Skipped)

	return Frame{
		Mesh:   p.mesh,
		Glyphs: glyphs,
		Extent: text.Extent(glyphs),
		Build:  stats,
	}, nil
}

// ResizeAtlas resizes the texture target and the atlas, emptying the atlas.
// The target must have a Resize(w, h int) error method.
func (p *Pipeline) ResizeAtlas(w, h int) error {
	r, ok := p.target.(resizer)
	if !ok {
		return ErrNotResizable
	}
	// Validate through the atlas first so a bad size leaves the target intact.
	cfg := p.atlas.Config()
	cfg.Width, cfg.Height = w, h
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("glyphmesh: %w", err)
	}
	if err := r.Resize(w, h); err != nil {
		return fmt.Errorf("glyphmesh: resize texture: %w", err)
	}
	if err := p.atlas.Resize(w, h); err != nil {
		return fmt.Errorf("glyphmesh: %w", err)
	}
	logging.L().Debug("glyphmesh: atlas resized", "width", w, "height", h)
	return nil
}

// Atlas returns the glyph cache.
func (p *Pipeline) Atlas() *atlas.Cache { return p.atlas }

// Target returns the texture target.
func (p *Pipeline) Target() texsync.Target { return p.target }

// Source returns the font source.
func (p *Pipeline) Source() *text.FontSource { return p.source }

// Stats returns cumulative counters.
func (p *Pipeline) Stats() Stats {
	s := Stats{Frames: p.frames, Atlas: p.atlas.Stats()}
	s.Regions, s.UploadBytes = p.syncer.Stats()
	if p.layouts != nil {
		ls := p.layouts.Stats()
		s.LayoutHits, s.LayoutMisses = ls.Hits, ls.Misses
	}
	return s
}

// Reset drops cached layouts and atlas contents. The texture keeps its
// old pixels until glyphs are uploaded again.
func (p *Pipeline) Reset() {
	if p.layouts != nil {
		p.layouts.Clear()
	}
	p.atlas.Clear()
}
