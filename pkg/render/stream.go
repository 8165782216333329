package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/lumen/pkg/scene"
)

// ErrStreamClosed is the reason a producer stops once its consumer has gone.
var ErrStreamClosed = errors.New("render stream closed")

// RowUpdate is one finished scanline. Start is the index of its first pixel
// in a row-major width*height buffer.
type RowUpdate struct {
	Start  int
	Pixels []uint32
}

// Stream is the receiving end of a render session. Rows arrive in no
// particular order, each one at most once per frame.
type Stream struct {
	rows   chan RowUpdate
	cancel context.CancelFunc
	done   chan struct{}
	frames atomic.Uint64
	err    error
}

// StartRendering freezes sc and starts a producer that renders frame after
// frame until the returned stream is closed or ctx is cancelled. Each frame
// is shaded row by row across c.Workers goroutines. An empty viewport
// produces no rows and no frames.
func (c *Camera) StartRendering(ctx context.Context, sc *scene.Scene, depth int) *Stream {
	sc.Freeze()

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queue := c.QueueRows
	if queue <= 0 {
		queue = 2 * c.Height
	}
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		rows:   make(chan RowUpdate, queue),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p := &producer{
		stream:  s,
		scene:   sc,
		rays:    c.rays(),
		depth:   clampDepth(depth),
		workers: workers,
		logger:  logger,
	}
	go p.run(ctx)

	return s
}

// Rows exposes the underlying channel. It is closed after the producer stops.
func (s *Stream) Rows() <-chan RowUpdate {
	return s.rows
}

// Drain hands every row currently buffered to fn without blocking and
// returns how many there were.
func (s *Stream) Drain(fn func(RowUpdate)) int {
	n := len(s.rows)
	for i := range n {
		u, ok := <-s.rows
		if !ok {
			return i
		}
		fn(u)
	}
	return n
}

// Close drops the receiving end. The producer notices on its next send and
// stops every worker. Close is idempotent.
func (s *Stream) Close() {
	s.cancel()
}

// Done is closed once the producer and all its workers have returned.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Err reports why the producer stopped. It is nil until Done is closed.
func (s *Stream) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Frames returns the number of complete frames rendered so far.
func (s *Stream) Frames() uint64 {
	return s.frames.Load()
}

type producer struct {
	stream  *Stream
	scene   *scene.Scene
	rays    rayGenerator
	depth   int
	workers int
	logger  *log.Logger
}

func (p *producer) run(ctx context.Context) {
	s := p.stream
	defer close(s.done)
	defer close(s.rows)

	start := time.Now()
	p.logger.Debug("render started",
		"width", p.rays.width, "height", p.rays.height,
		"depth", p.depth, "workers", p.workers,
		"primitives", len(p.scene.Primitives()), "lights", len(p.scene.Lights()))

	if p.rays.width <= 0 || p.rays.height <= 0 {
		// Nothing to shade; wait for the consumer instead of spinning.
		<-ctx.Done()
		s.err = fmt.Errorf("%w: %w", ErrStreamClosed, context.Cause(ctx))
		p.logger.Debug("render stopped", "frames", 0, "err", s.err)
		return
	}

	for {
		if err := p.frame(ctx); err != nil {
			s.err = err
			p.logger.Debug("render stopped", "frames", s.Frames(), "err", err)
			return
		}
		if s.frames.Add(1) == 1 {
			p.logger.Info("first frame rendered", "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}
}

// frame shades every row once.
func (p *producer) frame(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range p.rays.height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return p.row(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrStreamClosed, context.Cause(ctx))
	}
	return nil
}

func (p *producer) row(ctx context.Context, i int) error {
	if ctx.Err() != nil {
		return ErrStreamClosed
	}

	width := p.rays.width
	pixels := make([]uint32, width)
	for j := range width {
		pixels[j] = Pack(shade(p.scene, p.rays.at(i, j), p.depth, nil))
	}

	select {
	case p.stream.rows <- RowUpdate{Start: i * width, Pixels: pixels}:
		return nil
	case <-ctx.Done():
		return ErrStreamClosed
	}
}
