package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Device is the output surface presented to at the end of a frame
type Device interface {
	// Size returns current device dimensions in cells
	Size() (width, height int)

	// Present writes a row-major cell buffer and shows it: cells[y*width + x]
	Present(cells []Cell, width, height int)

	// Sync forces full redraw
	Sync()

	// PollEvent blocks until next input event, nil after Fini
	PollEvent() tcell.Event

	// Fini restores terminal state. Safe to call multiple times
	Fini()
}

// Screen implements Device on top of a tcell.Screen
type Screen struct {
	screen    tcell.Screen
	colorMode ColorMode

	mu        sync.Mutex
	finalized bool
}

// NewScreen creates and initializes a tcell backed device
func NewScreen(colorMode ColorMode) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return WrapScreen(s, colorMode)
}

// WrapScreen initializes an existing tcell screen, e.g. tcell.NewSimulationScreen
func WrapScreen(s tcell.Screen, colorMode ColorMode) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s, colorMode: colorMode}, nil
}

// Raw exposes the underlying tcell screen
func (s *Screen) Raw() tcell.Screen {
	return s.screen
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Present(cells []Cell, width, height int) {
	if len(cells) < width*height {
		return
	}
	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.screen.SetContent(x, y, r, nil, s.Style(c))
		}
	}
	s.screen.Show()
}

// Style converts a cell into the tcell style for the configured color mode
func (s *Screen) Style(c Cell) tcell.Style {
	st := tcell.StyleDefault.Foreground(s.color(c.Fg)).Background(s.color(c.Bg))
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	if c.Attrs&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if c.Attrs&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attrs&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if c.Attrs&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}

func (s *Screen) color(c RGB) tcell.Color {
	if s.colorMode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return
	}
	s.finalized = true
	s.screen.Fini()
}
