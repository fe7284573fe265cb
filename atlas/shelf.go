package atlas

import "image"

// ShelfAllocator packs rectangles into horizontal shelves.
//
// Each shelf is as tall as the tallest item placed on it. New items go on
// the shelf that wastes the least height; when none has room, a new shelf
// is opened below the last one. Sorting items by decreasing height before
// allocating keeps shelves tight.
type ShelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf represents a horizontal strip in the atlas.
type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free column
}

// NewShelfAllocator creates a new allocator for the given dimensions.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate finds space for a w×h rectangle.
// Returns the placed rectangle (without padding) and true, or false when
// the atlas has no room left.
func (a *ShelfAllocator) Allocate(w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	paddedW := w + a.padding
	if w > a.width || h > a.height {
		return image.Rectangle{}, false
	}

	best := -1
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+w > a.width {
			continue
		}
		fits := h <= s.height
		// The last shelf may grow downward while nothing sits below it.
		if !fits && i == len(a.shelves)-1 && s.y+h <= a.height {
			fits = true
		}
		if !fits {
			continue
		}
		if best < 0 || waste(a.shelves[best], h) > waste(*s, h) {
			best = i
		}
	}

	if best >= 0 {
		s := &a.shelves[best]
		if h > s.height {
			s.height = h
		}
		r := image.Rect(s.x, s.y, s.x+w, s.y+h)
		s.x += paddedW
		a.usedArea += w * h
		return r, true
	}

	newY := a.nextShelfY()
	if newY+h > a.height {
		return image.Rectangle{}, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.usedArea += w * h
	return image.Rect(0, newY, w, newY+h), true
}

// waste is the unused height left when an item of height h goes on s.
// A shelf that must grow wastes nothing now but is preferred last.
func waste(s shelf, h int) int {
	if h > s.height {
		return 1 << 30
	}
	return s.height - h
}

// nextShelfY is where a new shelf would start.
func (a *ShelfAllocator) nextShelfY() int {
	if len(a.shelves) == 0 {
		return 0
	}
	last := a.shelves[len(a.shelves)-1]
	return last.y + last.height + a.padding
}

// CanFit reports whether a w×h rectangle could be allocated right now.
func (a *ShelfAllocator) CanFit(w, h int) bool {
	if w <= 0 || h <= 0 || w > a.width || h > a.height {
		return false
	}
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+w > a.width {
			continue
		}
		if h <= s.height || (i == len(a.shelves)-1 && s.y+h <= a.height) {
			return true
		}
	}
	return a.nextShelfY()+h <= a.height
}

// Release returns r, which Allocate handed out, to the allocator.
// Space is reclaimed only when r is the last item on its shelf, so releasing
// in reverse allocation order undoes those allocations. A shelf keeps any
// height it grew by.
func (a *ShelfAllocator) Release(r image.Rectangle) {
	if r.Empty() {
		return
	}
	a.usedArea -= r.Dx() * r.Dy()
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.y != r.Min.Y || s.x != r.Max.X+a.padding {
			continue
		}
		s.x = r.Min.X
		if s.x == 0 && i == len(a.shelves)-1 {
			a.shelves = a.shelves[:i]
		}
		return
	}
}

// Reset clears all allocations, allowing the allocator to be reused.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// Utilization returns the fraction of atlas area covered by items (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// ShelfCount returns the number of shelves currently in use.
func (a *ShelfAllocator) ShelfCount() int {
	return len(a.shelves)
}
