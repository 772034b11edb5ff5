package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-scene/audio"
	"github.com/lixenwraith/vi-scene/component"
	"github.com/lixenwraith/vi-scene/config"
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/engine"
	"github.com/lixenwraith/vi-scene/logger"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/scene"
	"github.com/lixenwraith/vi-scene/terminal"
)

const (
	layerGround = 10
	layerActors = 0
	layerHUD    = 100

	worldWidth  = 160
	worldHeight = 48
)

var (
	configFlag    = flag.String("config", "", "Scene YAML file, empty uses built-in defaults")
	colorModeFlag = flag.String("color", "", "Color mode: auto, truecolor, 256 (overrides config)")
	watchFlag     = flag.Bool("watch", false, "Reload debug and post processor settings when the config file changes")
)

// demo holds the handles the input loop mutates
type demo struct {
	scene  *scene.Scene
	cues   *audio.Cues
	player *engine.Entity
	lens   render.Renderer
	status *component.Text
	dim    *render.DimPostProcessor
	gray   *render.GrayscalePostProcessor
	world  core.Area
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSCENE-DEMO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Log to file, never to the screen
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger.Configure(logger.Config{Level: cfg.Log.Level, Output: logOut, App: "scene-demo"})
	log := logger.WithComponent("main")

	mode := cfg.Scene.ColorMode
	if *colorModeFlag != "" {
		mode = *colorModeFlag
	}
	var colorMode terminal.ColorMode
	switch mode {
	case "256":
		colorMode = terminal.ColorMode256
	case "truecolor", "true", "24bit":
		colorMode = terminal.ColorModeTrueColor
	default:
		colorMode = terminal.DetectColorMode()
	}

	screen, err := terminal.NewScreen(colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	g := render.NewGraphics(screen)
	s, named, err := scene.FromConfig(g, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}

	cues := audio.NewCues(0.4)
	if cfg.Scene.Sound {
		if err := cues.Init(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer cues.Close()
		}
	}

	d := &demo{
		scene: s,
		cues:  cues,
		lens:  named["lens"],
		world: core.Area{Width: worldWidth, Height: worldHeight},
	}
	d.dim, _ = findPostProcessor[*render.DimPostProcessor](s)
	d.gray, _ = findPostProcessor[*render.GrayscalePostProcessor](s)
	d.populate()

	s.Begin()
	defer s.End()

	fps := cfg.Scene.FPS
	if fps <= 0 {
		fps = 30
	}
	frameInterval := time.Second / time.Duration(fps)
	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()

	reloads := make(chan *config.Config, 1)
	if *watchFlag && *configFlag != "" {
		w, err := config.Watch(context.Background(), *configFlag, config.DefaultDebounce, func(c *config.Config) {
			// keep only the newest pending reload
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		} else {
			defer w.Close()
		}
	}

	eventChan := make(chan tcell.Event, 64)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !d.handleEvent(ev) {
				return
			}

		case c := <-reloads:
			d.applyLive(c)

		case now := <-frameTicker.C:
			dt := now.Sub(last)
			last = now

			s.Update(dt)
			d.follow()
			if err := s.Render(); err != nil {
				log.Error().Err(err).Msg("render failed")
				return
			}
			d.updateStatus(dt)
		}
	}
}

// populate builds the demo world: ground, bouncing actors, the player, and the HUD
func (d *demo) populate() {
	s := d.scene

	ground := s.CreateEntity("ground")
	s.AddComponent(ground, component.NewBox(worldWidth, worldHeight, layerGround).
		WithFill(terminal.RGB{R: 22, G: 24, B: 34}).
		WithBorder(terminal.RGB{R: 90, G: 90, B: 120}))

	for i := range 6 {
		pillar := s.CreateEntity(fmt.Sprintf("pillar-%d", i))
		pillar.Position = core.Point{X: 12 + i*24, Y: 10 + (i%2)*18}
		box := component.NewBox(8, 4, layerActors+1).WithFill(terminal.RGB{R: 60, G: 40, B: 90})
		box.SetLayerDepth(0.5)
		s.AddComponent(pillar, box)
		s.AddComponent(pillar, component.NewCollider(core.Area{Width: 8, Height: 4}))
	}

	inner := core.Area{X: 1, Y: 1, Width: worldWidth - 2, Height: worldHeight - 2}
	glyphs := []rune{'●', '◆', '▲', '■', '★'}
	for i := range 24 {
		e := s.CreateEntity(fmt.Sprintf("drifter-%d", i))
		e.Position = core.Point{X: 1 + rand.IntN(inner.Width), Y: 1 + rand.IntN(inner.Height)}
		fg := terminal.RGB{R: uint8(120 + rand.IntN(135)), G: uint8(80 + rand.IntN(175)), B: uint8(rand.IntN(255))}
		s.AddComponent(e, component.NewGlyph(glyphs[i%len(glyphs)], fg, layerActors))
		s.AddComponent(e, component.NewMover(float64(rand.IntN(20)-10), float64(rand.IntN(10)-5), inner))
		s.AddComponent(e, component.NewCollider(core.Area{Width: 1, Height: 1}))
	}

	d.player = s.CreateEntity("player")
	d.player.Position = core.Point{X: worldWidth / 2, Y: worldHeight / 2}
	player := component.NewGlyph('@', terminal.RGB{R: 255, G: 220, B: 80}, layerActors)
	player.Attrs = terminal.AttrBold
	s.AddComponent(d.player, player)
	s.AddComponent(d.player, component.NewCollider(core.Area{Width: 1, Height: 1}))

	if d.lens != nil {
		if lensTarget := d.lens.Base().RenderTarget; lensTarget != nil {
			d.lens.Base().Camera = render.NewCamera(lensTarget.Size())
			view := s.CreateEntity("lens-view")
			view.Position = core.Point{X: 1, Y: 1}
			s.AddComponent(view, component.NewTargetView(lensTarget, layerHUD))
		}
	}

	hud := s.CreateEntity("hud")
	d.status = component.NewText("", terminal.RGB{R: 200, G: 200, B: 210}, layerHUD)
	s.AddComponent(hud, d.status)
	d.placeStatus()
}

// follow centers the scene camera and the lens on the player
func (d *demo) follow() {
	d.scene.Camera().CenterOn(d.player.Position, d.world)
	if d.lens != nil && d.lens.Base().Camera != nil {
		d.lens.Base().Camera.CenterOn(d.player.Position, d.world)
	}
}

// placeStatus pins the status line to the bottom of the scene target
func (d *demo) placeStatus() {
	_, h := d.scene.SceneTargetSize()
	d.status.Entity().Position = core.Point{X: 1, Y: h - 2}
}

func (d *demo) updateStatus(dt time.Duration) {
	stats := d.scene.Stats().Snapshot()
	fps := 0
	if dt > 0 {
		fps = int(time.Second / dt)
	}
	d.status.Content = fmt.Sprintf(
		"fps %3d  frame %5.2fms  batches %2.0f  draws %4.0f  debug[d] %-3s  dim[p] %-3s  gray[g] %-3s  arrows move  q quit",
		fps, stats[scene.MetricFrameTime], stats[scene.MetricBatches], stats[scene.MetricDrawCalls],
		onOff(d.scene.Graphics().DebugRenderEnabled), onOff(d.dim != nil && d.dim.Enabled()), onOff(d.gray != nil && d.gray.Enabled()),
	)
}

// handleEvent applies one input event, returns false to exit
func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		d.scene.Resize(w, h)
		d.placeStatus()
		d.cues.Play(audio.CueResize)

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			d.move(0, -1)
		case tcell.KeyDown:
			d.move(0, 1)
		case tcell.KeyLeft:
			d.move(-1, 0)
		case tcell.KeyRight:
			d.move(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'd':
				g := d.scene.Graphics()
				g.DebugRenderEnabled = !g.DebugRenderEnabled
				if g.DebugRenderEnabled {
					d.cues.Play(audio.CueDebugOn)
				} else {
					d.cues.Play(audio.CueDebugOff)
				}
			case 'p':
				if d.dim != nil {
					d.dim.SetEnabled(!d.dim.Enabled())
				}
			case 'g':
				if d.gray != nil {
					d.gray.SetEnabled(!d.gray.Enabled())
				}
			}
		}
	}
	return true
}

// applyLive copies the settings that can change without rebuilding the pipeline
func (d *demo) applyLive(c *config.Config) {
	d.scene.Graphics().DebugRenderEnabled = c.Scene.Debug
	for _, pc := range c.PostProcessors {
		enabled := pc.Enabled == nil || *pc.Enabled
		mask := config.ResolveMask(pc.Mask)
		switch pc.Type {
		case config.PostDim:
			if d.dim != nil {
				d.dim.SetEnabled(enabled)
				d.dim.Factor = pc.Amount
				d.dim.Mask = mask
			}
		case config.PostGrayscale:
			if d.gray != nil {
				d.gray.SetEnabled(enabled)
				d.gray.Intensity = pc.Amount
				d.gray.Mask = mask
			}
		}
	}
}

func (d *demo) move(dx, dy int) {
	d.scene.World().RunSafe(func() {
		next := d.player.Position.Add(core.Point{X: dx, Y: dy})
		inner := core.Area{X: 1, Y: 1, Width: d.world.Width - 2, Height: d.world.Height - 2}
		if inner.Contains(next) {
			d.player.Position = next
		}
	})
}

func findPostProcessor[T render.PostProcessor](s *scene.Scene) (T, bool) {
	for _, pp := range s.PostProcessors() {
		if t, ok := pp.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
