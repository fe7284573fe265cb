package texsync

import "fmt"

// ExpandCoverage converts w×h coverage bytes into RGBA pixels
// (0, 0, 0, coverage), row-major, w*h*4 bytes.
func ExpandCoverage(coverage []byte, w, h int) ([]byte, error) {
	return AppendRGBA(nil, coverage, w, h)
}

// AppendRGBA is ExpandCoverage writing into dst[:0], growing it if needed.
func AppendRGBA(dst, coverage []byte, w, h int) ([]byte, error) {
	if w < 0 || h < 0 || len(coverage) != w*h {
		return dst[:0], fmt.Errorf("%w: %d bytes for %dx%d", ErrCoverageSize, len(coverage), w, h)
	}

	n := w * h * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, a := range coverage {
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = 0, 0, 0, a
	}
	return dst, nil
}
