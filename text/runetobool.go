package text

import "sync"

// runeSet remembers, per rune, whether the font has a glyph for it.
// It uses 2 bits per rune (checked, present) in 256-rune blocks that are
// allocated on first access, which suits the sparse use of Unicode in text.
//
// runeSet is safe for concurrent use and must not be copied.
type runeSet struct {
	mu     sync.RWMutex
	blocks map[uint32]*runeBlock // keyed by rune >> 8
}

// runeBlock holds 256 runes × 2 bits.
type runeBlock [8]uint64

func newRuneSet() *runeSet {
	return &runeSet{blocks: make(map[uint32]*runeBlock)}
}

// bitPos returns the block key, word index and bit offset for r.
func bitPos(r rune) (key uint32, word, bit uint32) {
	key = uint32(r) >> 8
	idx := (uint32(r) & 0xFF) * 2
	return key, idx / 64, idx % 64
}

// get returns (present, checked). checked is false for runes never stored.
func (s *runeSet) get(r rune) (present, checked bool) {
	key, word, bit := bitPos(r)

	s.mu.RLock()
	b, ok := s.blocks[key]
	var w uint64
	if ok {
		w = b[word]
	}
	s.mu.RUnlock()

	return (w>>(bit+1))&1 != 0, (w>>bit)&1 != 0
}

// set records whether r has a glyph.
func (s *runeSet) set(r rune, present bool) {
	key, word, bit := bitPos(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blocks[key]
	if !ok {
		b = &runeBlock{}
		s.blocks[key] = b
	}
	b[word] |= 1 << bit
	if present {
		b[word] |= 1 << (bit + 1)
	} else {
		b[word] &^= 1 << (bit + 1)
	}
}

// clear forgets every rune.
func (s *runeSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = make(map[uint32]*runeBlock)
}
