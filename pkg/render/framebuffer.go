package render

// Framebuffer is the consumer side display buffer: width*height packed
// pixels, overwritten row by row as a stream delivers them. It has a single
// owner and is not safe for concurrent use.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32 // row-major 0x00RRGGBB
}

// NewFramebuffer creates a black framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Clear fills the framebuffer with a single packed color.
func (fb *Framebuffer) Clear(p uint32) {
	for i := range fb.Pixels {
		fb.Pixels[i] = p
	}
}

// Apply copies a row update into place. Updates that do not fit, for
// example rows from a session started at another size, are ignored.
func (fb *Framebuffer) Apply(u RowUpdate) bool {
	if u.Start < 0 || u.Start+len(u.Pixels) > len(fb.Pixels) {
		return false
	}
	copy(fb.Pixels[u.Start:], u.Pixels)
	return true
}

// ApplyStream drains every row currently buffered in s into the framebuffer
// and returns how many rows were written.
func (fb *Framebuffer) ApplyStream(s *Stream) int {
	written := 0
	s.Drain(func(u RowUpdate) {
		if fb.Apply(u) {
			written++
		}
	})
	return written
}

// At returns the packed pixel at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) At(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}
