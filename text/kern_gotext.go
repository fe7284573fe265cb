package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/glyphmesh/internal/cache"
)

// GoTextKerner kerns with HarfBuzz via go-text/typesetting, so fonts that
// only carry GPOS pair adjustments (most modern OpenType fonts) still kern.
//
// The adjustment for a pair is the advance of the left glyph when shaped
// together with the right glyph, minus its advance when shaped alone.
// Pairs that shape into anything other than two glyphs (ligatures) are
// not kerned: ligature substitution is outside what layout supports.
//
// GoTextKerner is safe for concurrent use.
type GoTextKerner struct {
	// shaperPool pools HarfbuzzShaper instances, which are not safe for
	// concurrent use.
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*FontSource]*font.Font

	pairs *cache.Cache[kernKey, float64]
}

type kernKey struct {
	source      *FontSource
	ppem        float64
	left, right rune
}

// NewGoTextKerner creates a kerner that remembers up to cacheSize pairs.
func NewGoTextKerner(cacheSize int) *GoTextKerner {
	return &GoTextKerner{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*FontSource]*font.Font),
		pairs:     cache.New[kernKey, float64](cacheSize),
	}
}

// Kern implements Kerner.
func (k *GoTextKerner) Kern(source *FontSource, ppem float64, left, right KernGlyph) float64 {
	key := kernKey{source: source, ppem: ppem, left: left.Rune, right: right.Rune}
	if v, ok := k.pairs.Get(key); ok {
		return v
	}

	f, err := k.getOrCreateFont(source)
	if err != nil {
		return 0
	}

	face := font.NewFace(f)
	pair := k.shape(face, []rune{left.Rune, right.Rune}, ppem)
	single := k.shape(face, []rune{left.Rune}, ppem)

	var v float64
	if len(pair) == 2 && len(single) == 1 {
		v = fixedToFloat64(pair[0].Advance) - fixedToFloat64(single[0].Advance)
	}
	k.pairs.Set(key, v)
	return v
}

func (k *GoTextKerner) shape(face *font.Face, runes []rune, ppem float64) []shaping.Glyph {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(ppem),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}

	hb := k.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	k.shaperPool.Put(hb)

	return output.Glyphs
}

// getOrCreateFont returns the go-text font for source, parsing it once.
func (k *GoTextKerner) getOrCreateFont(source *FontSource) (*font.Font, error) {
	k.mu.RLock()
	if f, ok := k.fontCache[source]; ok {
		k.mu.RUnlock()
		return f, nil
	}
	k.mu.RUnlock()

	k.mu.Lock()
	defer k.mu.Unlock()

	if f, ok := k.fontCache[source]; ok {
		return f, nil
	}

	data := source.Data()
	if data == nil {
		return nil, ErrSourceClosed
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	k.fontCache[source] = face.Font
	return face.Font, nil
}

// RemoveSource forgets everything cached for source.
func (k *GoTextKerner) RemoveSource(source *FontSource) {
	k.mu.Lock()
	delete(k.fontCache, source)
	k.mu.Unlock()
	k.pairs.Clear()
}
