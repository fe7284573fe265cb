package atlas

import (
	"cmp"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/glyphmesh/internal/logging"
	"github.com/gogpu/glyphmesh/text"
)

// UploadFunc copies a freshly placed glyph into the atlas texture.
// coverage holds rect.Dx()*rect.Dy() bytes, row-major, one byte per pixel.
//
// Once the atlas has been repacked or cleared, the texture may still hold ink
// from the old packing. From then on rect is grown by the padding on every
// side (clipped to the atlas) and the border is zero coverage.
type UploadFunc func(rect image.Rectangle, coverage []byte) error

// UVRect is a rectangle in normalized texture coordinates.
// (U0, V0) is the top-left corner of the glyph in the atlas.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// Resolution is where a queued glyph can be drawn from.
type Resolution struct {
	// Resident is false for glyphs with nothing to draw (blank glyphs).
	Resident bool

	// UV is the glyph's rectangle in the atlas texture.
	UV UVRect

	// Screen is the pixel rectangle the glyph covers on screen.
	Screen image.Rectangle
}

// cycleState tracks where a cache is in its queue/flush cycle.
type cycleState int

const (
	cycleQueuing cycleState = iota
	cycleFlushed
)

// entry is one rasterized glyph.
type entry struct {
	// mask is kept so the glyph can be re-uploaded when the atlas is repacked.
	mask text.GlyphMask

	// rect is the placement in the atlas; empty when not placed.
	rect image.Rectangle

	// cycle is the last cycle the glyph was queued in.
	cycle uint64
}

// request is one queued glyph.
type request struct {
	key   cacheKey
	glyph text.PositionedGlyph
}

// Cache keeps glyph rasterizations resident in a fixed-size atlas.
type Cache struct {
	cfg   Config
	alloc *ShelfAllocator

	entries map[cacheKey]*entry

	queue  []request
	queued map[cacheKey]struct{}
	state  cycleState
	cycle  uint64

	// stale is set when the texture may hold ink from an earlier packing.
	stale bool

	stats Stats
}

// Stats contains cache statistics.
type Stats struct {
	// Entries is the number of glyphs currently cached.
	Entries int
	// Queued is the number of distinct glyphs queued in the current cycle.
	Queued int
	// Cycles is the number of completed flushes.
	Cycles uint64
	// Hits counts queued glyphs that were already resident at flush time.
	Hits uint64
	// Misses counts queued glyphs that had to be rasterized.
	Misses uint64
	// Uploads counts UploadFunc calls.
	Uploads uint64
	// Rebuilds counts full repacks caused by a full atlas.
	Rebuilds uint64
	// Overflows counts flushes that failed with ErrCacheOverflow.
	Overflows uint64
	// Utilization is the fraction of atlas area in use (0.0 to 1.0).
	Utilization float64
}

// New creates a cache with the given configuration.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		cfg:     cfg,
		alloc:   NewShelfAllocator(cfg.Width, cfg.Height, cfg.Padding),
		entries: make(map[cacheKey]*entry),
		queued:  make(map[cacheKey]struct{}),
		cycle:   1,
	}, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config { return c.cfg }

// Dimensions returns the atlas size in pixels.
func (c *Cache) Dimensions() (width, height int) {
	return c.cfg.Width, c.cfg.Height
}

// Queue records that g will be drawn this frame. layer namespaces glyphs
// so independent users can share one atlas.
//
// Queueing the same glyph twice in a cycle has no extra effect. Queueing
// after a Flush starts a new cycle; resolutions of the previous cycle must
// not be used after that.
func (c *Cache) Queue(layer int, g text.PositionedGlyph) {
	if c.state == cycleFlushed {
		c.beginCycle()
	}
	if g.Blank() {
		return
	}
	key := c.keyFor(layer, g)
	if _, ok := c.queued[key]; ok {
		return
	}
	c.queued[key] = struct{}{}
	c.queue = append(c.queue, request{key: key, glyph: g})
}

func (c *Cache) beginCycle() {
	c.queue = c.queue[:0]
	clear(c.queued)
	c.state = cycleQueuing
	c.cycle++
}

// Flush makes every glyph queued in the current cycle resident, calling
// upload once for each glyph placed in the atlas. A nil upload is allowed
// for CPU-only use.
//
// On success the cycle is marked flushed and Resolve may be called.
// An upload error is returned wrapped. Glyphs whose upload did not happen
// are dropped and their atlas space released.
// When the queued glyphs cannot fit even in an empty atlas, the cache is
// cleared and an *OverflowError is returned.
//
// After any error the queue is discarded, so the caller queues the next
// frame's glyphs from scratch and they are uploaded then.
func (c *Cache) Flush(upload UploadFunc) error {
	if c.state == cycleFlushed {
		return nil
	}
	if upload == nil {
		upload = func(image.Rectangle, []byte) error { return nil }
	}

	var missing []*entry
	var missingKeys []cacheKey
	for _, req := range c.queue {
		if e, ok := c.entries[req.key]; ok {
			e.cycle = c.cycle
			c.stats.Hits++
			continue
		}
		c.stats.Misses++

		e := &entry{cycle: c.cycle}
		if src := req.glyph.Source; src != nil {
			_, _, fx, fy := req.glyph.Origin()
			mask, err := src.Rasterize(req.glyph.Key.GID, float64(req.glyph.Key.Size), fx, fy)
			if err != nil {
				// The glyph stays non-resident and is skipped when drawing.
				logging.L().Warn("atlas: rasterize failed", "glyph", req.glyph.Key.GID, "err", err)
			}
			e.mask = mask
		}
		c.entries[req.key] = e
		if !e.mask.Empty() {
			missing = append(missing, e)
			missingKeys = append(missingKeys, req.key)
		}
	}

	placed, ok := c.place(missing, missingKeys)
	if !ok {
		var err error
		placed, err = c.rebuild()
		if err != nil {
			c.beginCycle()
			return err
		}
	}

	for i, p := range placed {
		rect, coverage := c.uploadRegion(p.e)
		if err := upload(rect, coverage); err != nil {
			// Drop this glyph and everything not yet uploaded.
			for j := len(placed) - 1; j >= i; j-- {
				c.alloc.Release(placed[j].e.rect)
				delete(c.entries, placed[j].key)
			}
			c.beginCycle()
			return fmt.Errorf("atlas: upload glyph at %v: %w", p.e.rect, err)
		}
		c.stats.Uploads++
	}

	c.state = cycleFlushed
	c.stats.Cycles++
	logging.L().Debug("atlas: flush",
		"queued", len(c.queue),
		"uploads", len(placed),
		"entries", len(c.entries),
		"utilization", c.alloc.Utilization())
	return nil
}

// uploadRegion returns what to upload for a placed entry. On a stale
// texture the glyph is framed by a zeroed border as wide as the padding.
func (c *Cache) uploadRegion(e *entry) (image.Rectangle, []byte) {
	pad := c.cfg.Padding
	if !c.stale || pad == 0 {
		return e.rect, e.mask.Coverage
	}
	r := e.rect.Inset(-pad).Intersect(image.Rect(0, 0, c.cfg.Width, c.cfg.Height))
	buf := make([]byte, r.Dx()*r.Dy())
	w := e.rect.Dx()
	off := (e.rect.Min.Y-r.Min.Y)*r.Dx() + e.rect.Min.X - r.Min.X
	for y := range e.rect.Dy() {
		copy(buf[off+y*r.Dx():], e.mask.Coverage[y*w:(y+1)*w])
	}
	return r, buf
}

// placement is an entry that needs uploading.
type placement struct {
	key cacheKey
	e   *entry
}

// place allocates atlas space for entries, tallest first.
// It reports false as soon as one entry does not fit.
func (c *Cache) place(entries []*entry, keys []cacheKey) ([]placement, bool) {
	order := make([]placement, len(entries))
	for i := range entries {
		order[i] = placement{key: keys[i], e: entries[i]}
	}
	sortForPacking(order)

	for _, p := range order {
		r, ok := c.alloc.Allocate(p.e.mask.Width(), p.e.mask.Height())
		if !ok {
			return nil, false
		}
		p.e.rect = r
	}
	return order, true
}

// rebuild evicts every entry not queued in this cycle and packs the queued
// set into an empty atlas. Everything placed must be uploaded again.
func (c *Cache) rebuild() ([]placement, error) {
	c.stats.Rebuilds++

	var entries []*entry
	var keys []cacheKey
	for k, e := range c.entries {
		if e.cycle != c.cycle {
			delete(c.entries, k)
			continue
		}
		e.rect = image.Rectangle{}
		if !e.mask.Empty() {
			entries = append(entries, e)
			keys = append(keys, k)
		}
	}
	c.alloc.Reset()
	c.stale = true

	logging.L().Warn("atlas: cache full, repacking",
		"queued", len(c.queue),
		"width", c.cfg.Width,
		"height", c.cfg.Height)

	placed, ok := c.place(entries, keys)
	if ok {
		return placed, nil
	}

	c.stats.Overflows++
	n := len(c.queue)
	c.clearEntries()
	logging.L().Warn("atlas: cache overflow", "queued", n)
	return nil, &OverflowError{Glyphs: n, Width: c.cfg.Width, Height: c.cfg.Height}
}

// sortForPacking orders placements by decreasing height, then width, then
// key, so packing is deterministic.
func sortForPacking(p []placement) {
	slices.SortFunc(p, func(a, b placement) int {
		if d := cmp.Compare(b.e.mask.Height(), a.e.mask.Height()); d != 0 {
			return d
		}
		if d := cmp.Compare(b.e.mask.Width(), a.e.mask.Width()); d != 0 {
			return d
		}
		return compareKeys(a.key, b.key)
	})
}

func compareKeys(a, b cacheKey) int {
	return cmp.Or(
		cmp.Compare(a.layer, b.layer),
		cmp.Compare(a.fontID, b.fontID),
		cmp.Compare(a.gid, b.gid),
		cmp.Compare(a.size, b.size),
		cmp.Compare(a.fx, b.fx),
		cmp.Compare(a.fy, b.fy),
	)
}

// Resolve returns where g, queued in the current cycle, lives in the atlas.
//
// Blank glyphs resolve as non-resident without being queued. Any other
// glyph must have been queued in the current cycle, and the cycle must
// have been flushed.
func (c *Cache) Resolve(layer int, g text.PositionedGlyph) (Resolution, error) {
	if g.Blank() {
		return Resolution{}, nil
	}
	if c.state != cycleFlushed {
		return Resolution{}, ErrNotFlushed
	}
	key := c.keyFor(layer, g)
	if _, ok := c.queued[key]; !ok {
		return Resolution{}, fmt.Errorf("%w: %q (glyph %d)", ErrNotQueued, g.Rune, g.Key.GID)
	}
	e, ok := c.entries[key]
	if !ok || e.rect.Empty() {
		return Resolution{}, nil
	}

	px, py, _, _ := g.Origin()
	w, h := float32(c.cfg.Width), float32(c.cfg.Height)
	return Resolution{
		Resident: true,
		UV: UVRect{
			U0: float32(e.rect.Min.X) / w,
			V0: float32(e.rect.Min.Y) / h,
			U1: float32(e.rect.Max.X) / w,
			V1: float32(e.rect.Max.Y) / h,
		},
		Screen: e.mask.Bounds.Add(image.Pt(px, py)),
	}, nil
}

// Resize changes the atlas dimensions. The cache is emptied and a new
// cycle begins, so the caller must recreate its texture at the new size.
// The new texture is assumed to be blank.
func (c *Cache) Resize(width, height int) error {
	cfg := c.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.alloc = NewShelfAllocator(width, height, cfg.Padding)
	c.Clear()
	c.stale = false
	return nil
}

// Clear drops every cached glyph and starts a new cycle.
func (c *Cache) Clear() {
	c.clearEntries()
	c.beginCycle()
}

func (c *Cache) clearEntries() {
	clear(c.entries)
	c.alloc.Reset()
	c.stale = true
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Entries = len(c.entries)
	s.Queued = len(c.queue)
	s.Utilization = c.alloc.Utilization()
	return s
}
