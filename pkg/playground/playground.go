// Package playground drives one behavior from a raw-mode terminal so its
// keyboard handling can be tried by hand. Keys are read from stdin, parsed
// with keys.ParseTerminal and handed to the demo; the frame is redrawn after
// every key and on a short tick so timers such as the type-ahead reset show.
package playground

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/goterm"
	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/keys"
)

// frameInterval is the redraw tick when no input arrives.
const frameInterval = 100 * time.Millisecond

// App is a running playground session.
type App struct {
	screen *goterm.Screen
	canvas Canvas
	demo   Demo
	logger *zap.Logger
	input  io.Reader
	events chan *keys.Event
}

// Open puts the terminal in raw mode and prepares demo for Run.
func Open(demo Demo, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	screen, err := goterm.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return &App{
		screen: screen,
		canvas: screenCanvas{screen: screen},
		demo:   demo,
		logger: logger.Named("playground"),
		input:  os.Stdin,
		events: make(chan *keys.Event, 16),
	}, nil
}

// Run loops until ctx is done, the user quits or an interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	go a.readInput(ctx)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	if err := a.render(); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			return nil
		case e, ok := <-a.events:
			if !ok {
				return nil
			}
			if Dispatch(a.demo, e) {
				a.logger.Debug("quit", zap.String("key", keys.Format(e)))
				return nil
			}
			if err := a.render(); err != nil {
				return err
			}
		case <-ticker.C:
			if err := a.render(); err != nil {
				return err
			}
		}
	}
}

func (a *App) render() error {
	a.screen.Clear()
	Draw(a.canvas, a.demo)
	if err := a.screen.Show(); err != nil {
		return fmt.Errorf("screen show failed: %w", err)
	}
	return nil
}

func (a *App) readInput(ctx context.Context) {
	defer close(a.events)
	buf := make([]byte, 32)
	for {
		n, err := a.input.Read(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.logger.Debug("input read failed", zap.Error(err))
			}
			return
		}
		if n == 0 {
			continue
		}
		select {
		case a.events <- keys.ParseTerminal(buf[:n]):
		case <-ctx.Done():
			return
		}
	}
}

// Close restores the terminal and releases the demo.
func (a *App) Close() error {
	a.demo.Close()
	if err := a.screen.Close(); err != nil {
		return fmt.Errorf("failed to close screen: %w", err)
	}
	return nil
}

// Dispatch hands e to the demo and reports whether the session should end.
// Ctrl+C and Escape quit; any other key the demo does not consume is dropped.
func Dispatch(d Demo, e *keys.Event) (quit bool) {
	if e.Key == keys.Escape || (e.Ctrl && e.Key == "c") {
		return true
	}
	d.HandleKey(e)
	return false
}

// Draw renders a full frame: title, the demo and its key help.
func Draw(c Canvas, d Demo) {
	width, height := c.Size()
	bg := goterm.ColorDefault()
	c.DrawText(0, 0, fit("headless playground: "+d.Name(), width), colorTitle, bg, goterm.StyleBold)
	d.Render(c, 2)
	if height > 0 {
		c.DrawText(0, height-1, fit(d.Help()+"  Esc quit", width), colorMuted, bg, goterm.StyleDim)
	}
}
