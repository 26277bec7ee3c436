package orion

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/oliverbestmann/frameless/chrome"
	"github.com/oliverbestmann/frameless/config"
	"github.com/oliverbestmann/frameless/glimpse"
	"github.com/oliverbestmann/frameless/glimpse/desktop"
	"github.com/oliverbestmann/frameless/layout"
	"github.com/oliverbestmann/frameless/pulse"
	"github.com/oliverbestmann/frameless/raster"
)

// BuildFunc records the content of one frame. content is the area below the
// titlebar.
type BuildFunc func(frame *layout.Frame, content layout.BoundingBox)

type Options struct {
	Config config.Config

	// Build is called once per frame. This is the only field that is required
	Build BuildFunc

	Background pulse.Color

	// show frame statistics at startup, F3 toggles the overlay
	DebugOverlay bool

	Logger *slog.Logger
}

// App owns the window, the graphics device and everything needed to turn a
// frame recorded by Build into pixels on screen.
type App struct {
	opts Options
	log  *slog.Logger

	window *desktop.Window
	ctx    *pulse.Context
	view   *pulse.View

	renderer   *pulse.Renderer
	rasterizer *raster.Rasterizer

	frame      *layout.Frame
	controller *chrome.Controller
	titlebar   chrome.TitlebarStyle

	surfaceWidth  uint32
	surfaceHeight uint32

	times   FrameTimes
	overlay *DebugOverlay
}

func NewApp(opts Options) (_ *App, err error) {
	if opts.Build == nil {
		return nil, errors.New("build function must not be nil")
	}

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	app := &App{
		opts:    opts,
		log:     log,
		frame:   layout.NewFrame(),
		overlay: &DebugOverlay{Visible: opts.DebugOverlay},
	}

	// release whatever was created if anything below fails
	defer func() {
		if err != nil {
			app.Release()
		}
	}()

	app.window, err = desktop.NewWindow(desktop.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  cfg.MinWidth,
		MinHeight: cfg.MinHeight,
		Title:     cfg.Window.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	app.ctx, err = pulse.New(app.window.SurfaceDescriptor())
	if err != nil {
		return nil, fmt.Errorf("initialize wgpu: %w", err)
	}

	app.view, err = pulse.NewView(app.ctx, uint32(cfg.MSAA))
	if err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}

	app.renderer, err = pulse.NewRenderer(app.ctx, 256)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	rasterOpts := raster.OptionsFromConfig(cfg)
	rasterOpts.Logger = log

	app.rasterizer, err = raster.NewRasterizer(app.renderer, rasterOpts)
	if err != nil {
		return nil, fmt.Errorf("create rasterizer: %w", err)
	}

	app.titlebar = chrome.DefaultTitlebarStyle()
	app.titlebar.Height = float32(cfg.Titlebar.Height)
	app.titlebar.ControlWidth = float32(cfg.Titlebar.ControlWidth)

	app.controller = chrome.NewController(app.window, app.frame, chrome.Options{
		Margin:        cfg.HitMargin,
		MinWidth:      cfg.MinWidth,
		MinHeight:     cfg.MinHeight,
		TitlebarID:    chrome.TitlebarID,
		ControlsWidth: cfg.Titlebar.ReservedWidth(),
		Controls:      chrome.TitlebarControls(),
		Logger:        log,
	})

	return app, nil
}

// NewImage uploads img into a texture usable as handle of an image command.
// The texture is released once it is garbage collected.
func (a *App) NewImage(img image.Image, label string) (*pulse.Texture, error) {
	texture, err := pulse.NewTextureFromImage(a.ctx, img, label)
	if err != nil {
		return nil, err
	}

	return RegisterWithGC(texture), nil
}

// Run drives the frame loop until the window is closed.
func (a *App) Run() error {
	a.log.Info("Start frame loop")

	err := a.window.Run(a.loopOnce)
	if err != nil {
		return err
	}

	a.log.Info("Window closed", slog.Uint64("frames", a.times.FrameCount))
	return nil
}

func (a *App) loopOnce(events []glimpse.Event) error {
	frameStart := time.Now()

	if a.times.Tick(frameStart) {
		a.log.Debug("Frame times",
			slog.Float64("fps", a.times.FPS()),
			slog.Duration("average", a.times.AverageDuration),
			slog.Duration("max", a.times.MaxDuration),
		)
	}

	for _, ev := range events {
		if ev.Kind == glimpse.KeyDown && ev.Key == glimpse.KeyF3 {
			a.overlay.Visible = !a.overlay.Visible
		}

		a.controller.HandleEvent(ev)
	}

	a.controller.Hover()

	// the pointer state is per frame, reset after the layout consumed it
	defer a.controller.NextTick()

	width, height := a.window.FramebufferSize()
	if width == 0 || height == 0 {
		// minimized, nothing to draw
		return nil
	}

	if a.surfaceWidth != width || a.surfaceHeight != height {
		if err := a.view.Configure(width, height); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}

		a.surfaceWidth = width
		a.surfaceHeight = height
	}

	commands := a.buildFrame(float32(width), float32(height))
	buildDone := time.Now()

	surface, err := a.view.CurrentFrame()
	if err != nil {
		// the surface is outdated after a resize, configure it again next frame
		a.log.Warn("Skip frame", slog.String("error", err.Error()))
		a.surfaceWidth, a.surfaceHeight = 0, 0
		return nil
	}

	if err := a.render(surface.Target, commands); err != nil {
		surface.Discard()
		return err
	}

	surface.Present()

	a.overlay.Record(FrameSample{
		Build:  buildDone.Sub(frameStart),
		Render: time.Since(buildDone),
		Stats:  a.rasterizer.Stats(),
	})

	return nil
}

func (a *App) buildFrame(width, height float32) []layout.Command {
	a.frame.Begin(width, height, a.controller.Pointer())

	content := chrome.DrawTitlebar(a.frame, a.opts.Config.Window.Title, a.window.IsMaximized(), a.titlebar)

	a.opts.Build(a.frame, content)

	a.overlay.Build(a.frame, content, &a.times)

	return a.frame.End()
}

func (a *App) render(target *pulse.Texture, commands []layout.Command) error {
	if err := a.renderer.Begin(target, a.opts.Background); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	a.rasterizer.Render(commands)

	if err := a.renderer.End(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	return nil
}

// Release frees the graphics resources and closes the window.
func (a *App) Release() {
	if a.renderer != nil {
		a.renderer.Release()
	}

	if a.view != nil {
		a.view.Release()
	}

	if a.ctx != nil {
		a.ctx.Release()
	}

	if a.window != nil {
		a.window.Terminate()
	}
}
