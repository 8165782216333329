package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

// viewer owns the terminal, the framebuffer and the current render session.
// Everything runs on the goroutine that calls run.
type viewer struct {
	cfg    *config.Config
	scene  *scene.Scene
	logger *log.Logger
	term   *uv.Terminal

	cols, rows int
	fb         *render.Framebuffer
	orbit      *orbit

	stream   *render.Stream
	current  pose
	dirty    bool // size changed since the session started
	sessions int
}

func newViewer(cfg *config.Config, sc *scene.Scene, logger *log.Logger) (*viewer, error) {
	base, err := cfg.NewCamera(1, 1)
	if err != nil {
		return nil, err
	}
	v := &viewer{
		cfg:    cfg,
		scene:  sc,
		logger: logger,
		orbit: newOrbit(
			pose{Eye: base.Eye, Target: base.Target, Up: base.Up},
			cfg.Viewer.FPS,
			cfg.Viewer.SpringFrequency,
			cfg.Viewer.SpringDamping,
		),
	}
	return v, nil
}

func (v *viewer) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	v.term = term

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.resize(width, height)

	defer func() {
		v.stop()
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			v.logger.Warn("terminal shutdown", "err", err)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.Viewer.FPS))
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := v.handle(ev); quit {
				return nil
			}
		case <-ticker.C:
			if err := v.tick(ctx); err != nil {
				return err
			}
		}
	}
}

// handle applies one terminal event and reports whether the viewer should
// quit.
func (v *viewer) handle(ev uv.Event) bool {
	step := v.cfg.Viewer.OrbitStep
	zoom := v.cfg.Viewer.ZoomStep

	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("q", "escape", "ctrl+c"):
			return true
		case ev.MatchString("a", "left"):
			v.orbit.Turn(step, 0)
		case ev.MatchString("d", "right"):
			v.orbit.Turn(-step, 0)
		case ev.MatchString("w", "up"):
			v.orbit.Turn(0, step)
		case ev.MatchString("s", "down"):
			v.orbit.Turn(0, -step)
		case ev.MatchString("+", "="):
			v.orbit.Dolly(zoom)
		case ev.MatchString("-", "_"):
			v.orbit.Dolly(-zoom)
		case ev.MatchString("r"):
			v.orbit.Reset()
		}
	}
	return false
}

// resize matches the framebuffer to a cols x rows terminal unless the
// configuration pins the resolution. A size change ends the current session.
func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	w, h := v.cfg.Render.Width, v.cfg.Render.Height
	if w == 0 {
		w = cols
	}
	if h == 0 {
		h = render.CellRows(rows)
	}
	if v.fb != nil && v.fb.Width == w && v.fb.Height == h {
		return
	}
	// Rows of the running session are laid out for the old width.
	v.stop()
	v.fb = render.NewFramebuffer(w, h)
	v.dirty = true
	v.logger.Debug("framebuffer resized", "width", w, "height", h)
}

func (v *viewer) tick(ctx context.Context) error {
	v.orbit.Update()

	if v.stream != nil {
		v.fb.ApplyStream(v.stream)
		select {
		case <-v.stream.Done():
			if err := v.stream.Err(); err != nil && !errors.Is(err, render.ErrStreamClosed) {
				return fmt.Errorf("render: %w", err)
			}
		default:
		}
	}

	if p := v.orbit.Pose(); v.needsRestart(p) {
		if err := v.restart(ctx, p); err != nil {
			return err
		}
	}

	v.fb.Draw(v.term, uv.Rect(0, 0, v.cols, v.rows))
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// needsRestart reports whether p differs enough from the running session to
// start a new one. While the camera is still moving a session must finish a
// frame first, so the whole image keeps updating during an orbit.
func (v *viewer) needsRestart(p pose) bool {
	switch {
	case v.stream == nil || v.dirty:
		return true
	case p == v.current:
		return false
	case v.orbit.Settled():
		return true
	default:
		return v.stream.Frames() > 0
	}
}

func (v *viewer) restart(ctx context.Context, p pose) error {
	v.stop()

	cam, err := v.cfg.NewCamera(v.fb.Width, v.fb.Height)
	if err != nil {
		return err
	}
	cam.Eye, cam.Target, cam.Up = p.Eye, p.Target, p.Up
	v.sessions++
	cam.Logger = v.logger.With("session", v.sessions)

	v.stream = cam.StartRendering(ctx, v.scene, v.cfg.Render.Depth)
	v.current = p
	v.dirty = false
	return nil
}

// stop closes the running session and waits for its producer to exit.
func (v *viewer) stop() {
	if v.stream == nil {
		return
	}
	v.stream.Close()
	<-v.stream.Done()
	v.stream = nil
}
