// Package host owns the GLFW window and the main loop. It feeds window input
// to the viewer as events, drives its frame callback and applies config and
// shader changes between frames.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"minecraf2/internal/config"
	"minecraf2/internal/event"
	"minecraf2/internal/graphics"
	"minecraf2/internal/hotreload"
	"minecraf2/internal/profiling"
	"minecraf2/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var _ viewer.GPU = (*graphics.GL)(nil)

// slowFrame is the processing time above which a frame is logged with its
// most expensive steps.
const slowFrame = 16 * time.Millisecond

// Options configures New.
type Options struct {
	// Config is the resolved configuration the window starts with.
	Config config.Config
	// ConfigPath enables hot reload when set. Flags are re-applied on every
	// reload so command line overrides keep winning.
	ConfigPath string
	Flags      config.Flags

	// ScreenshotDir and ScreenshotFormat (png, bmp or tiff) control F12.
	ScreenshotDir    string
	ScreenshotFormat string

	Args []string
	Log  *slog.Logger
}

// App is a running viewer window. All methods except Done must be called
// from the main thread.
type App struct {
	opts   Options
	cfg    config.Config
	log    *slog.Logger
	window *glfw.Window
	gpu    *graphics.GL
	viewer *viewer.Viewer

	input   translator
	limiter *FPSLimiter
	prof    *profiling.Frame
	watcher *hotreload.Watcher
	watched []string

	start    time.Time
	lastTime time.Time
	dt       float32
	frame    uint64

	fpsFrames int
	fpsSince  time.Time

	shutdownOnce sync.Once
	done         chan struct{}
}

// glfwWindow adapts a GLFW window to viewer.Window.
type glfwWindow struct {
	w *glfw.Window
}

func (g glfwWindow) SetTitle(title string) {
	g.w.SetTitle(title)
}

func (g glfwWindow) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	g.w.SetInputMode(glfw.CursorMode, mode)
}

func setupWindow(ws config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(ws.Width, ws.Height, ws.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	setVSync(ws.VSync)
	return window, nil
}

func setVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// New initializes GLFW, opens the window and initializes the viewer. The
// caller's goroutine must be locked to the main OS thread.
func New(opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.ScreenshotFormat == "" {
		opts.ScreenshotFormat = "png"
	}
	if !supportedFormat(opts.ScreenshotFormat) {
		return nil, fmt.Errorf("host: %w: %q", ErrUnsupportedFormat, opts.ScreenshotFormat)
	}
	cfg := opts.Config

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("host: glfw init: %w", err)
	}

	window, err := setupWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("host: create window: %w", err)
	}

	gpu, err := graphics.NewGL()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("host: gl init: %w", err)
	}
	log.Info("opengl ready", "version", gpu.Version())

	a := &App{
		opts:    opts,
		cfg:     cfg,
		log:     log,
		window:  window,
		gpu:     gpu,
		viewer:  viewer.New(cfg, gpu, log),
		limiter: NewFPSLimiter(cfg.Window.FPSLimit),
		prof:    profiling.NewFrame(),
		done:    make(chan struct{}),
	}
	a.installCallbacks()

	w, h := window.GetSize()
	fbW, fbH := window.GetFramebufferSize()
	err = a.viewer.Init(viewer.Surface{
		Window:      glfwWindow{window},
		Width:       float32(w),
		Height:      float32(h),
		PixelWidth:  float32(fbW),
		PixelHeight: float32(fbH),
		Args:        opts.Args,
	})
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("host: %w", err)
	}

	if opts.ConfigPath != "" {
		a.watch(cfg.WatchPaths(opts.ConfigPath))
	}
	return a, nil
}

func (a *App) installCallbacks() {
	a.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		a.input.key(event.KeyCode(key), event.Action(action))
	})

	a.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		a.input.cursor(xpos, ypos)
	})

	a.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			a.input.leftClick()
		}
	})

	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		a.input.resize(fbWidth, fbHeight)
	})
}

// watch (re)starts the file watcher. Failing to watch only disables hot reload.
func (a *App) watch(paths []string) {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	w, err := hotreload.New(paths, hotreload.DefaultDebounce, a.log)
	if err != nil {
		a.log.Warn("hot reload disabled", "err", err)
		return
	}
	a.watcher = w
	a.watched = paths
	go w.Run(context.Background())
	a.log.Info("watching for changes", "files", paths)
}

// Run drives frames until the window is closed or ctx is cancelled, then
// destroys the viewer and terminates GLFW.
func (a *App) Run(ctx context.Context) {
	defer a.shutdown()

	a.start = time.Now()
	a.lastTime = a.start
	a.fpsSince = a.start

	for !a.window.ShouldClose() && ctx.Err() == nil {
		a.tick()
	}
}

// Done is closed once Run has released the window. Safe from any goroutine.
func (a *App) Done() <-chan struct{} {
	return a.done
}

func (a *App) tick() {
	a.prof.Reset()
	startTick := time.Now()

	stop := a.prof.Track("glfw.PollEvents")
	glfw.PollEvents()
	stop()

	a.input.flush(a.viewer.PlatformEvent)
	if a.input.wantClose {
		a.window.SetShouldClose(true)
	}

	stop = a.prof.Track("viewer.Frame")
	a.viewer.Frame(viewer.Timing{
		PrevDeltaTime: a.dt,
		Time:          time.Since(a.start).Seconds(),
		Frame:         a.frame,
	})
	stop()

	if a.input.takeScreenshot() {
		stop = a.prof.Track("host.Screenshot")
		a.screenshot()
		stop()
	}

	stop = a.prof.Track("glfw.SwapBuffers")
	a.window.SwapBuffers()
	stop()

	a.drainReloads()

	if took := time.Since(startTick); took > slowFrame {
		a.log.Warn("slow frame", "took", took, "glfw", a.prof.SumWithPrefix("glfw."), "top", a.prof.TopN(5))
	}

	a.countFPS()
	a.limiter.Wait()

	now := time.Now()
	a.dt = float32(now.Sub(a.lastTime).Seconds())
	a.lastTime = now
	a.frame++
}

func (a *App) countFPS() {
	a.fpsFrames++
	if elapsed := time.Since(a.fpsSince); elapsed >= time.Second {
		a.log.Debug("fps", "fps", float64(a.fpsFrames)/elapsed.Seconds(), "pos", a.viewer.Camera().Position)
		a.fpsFrames = 0
		a.fpsSince = time.Now()
	}
}

func (a *App) screenshot() {
	w, h := a.window.GetFramebufferSize()
	if w <= 0 || h <= 0 {
		return
	}
	name := fmt.Sprintf("minecraf2-%s.%s", time.Now().Format("20060102-150405.000"), normalizeFormat(a.opts.ScreenshotFormat))
	path := filepath.Join(a.opts.ScreenshotDir, name)
	if err := saveImage(path, readFramebuffer(w, h)); err != nil {
		a.log.Error("screenshot failed", "path", path, "err", err)
		return
	}
	a.log.Info("screenshot saved", "path", path)
}

func (a *App) drainReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case changed := <-a.watcher.Changes():
		stop := a.prof.Track("host.Reload")
		a.reload(changed)
		stop()
	default:
	}
}

// reload re-reads the config file and hands it to the viewer. A broken file
// or shader leaves the running settings in place.
func (a *App) reload(changed []string) {
	a.log.Info("reloading", "changed", changed)

	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		a.log.Warn("config reload failed", "err", err)
		return
	}
	cfg.Resolve(a.opts.Flags)

	if err := a.viewer.Reload(cfg); err != nil {
		a.log.Warn("reload rejected", "err", err)
		return
	}

	if cfg.Window.Title != a.cfg.Window.Title {
		a.window.SetTitle(cfg.Window.Title)
	}
	if cfg.Window.VSync != a.cfg.Window.VSync {
		setVSync(cfg.Window.VSync)
	}
	if cfg.Window.Width != a.cfg.Window.Width || cfg.Window.Height != a.cfg.Window.Height {
		a.log.Info("window size changes apply on restart")
	}
	a.limiter.Limit = cfg.Window.FPSLimit
	a.cfg = cfg

	if paths := cfg.WatchPaths(a.opts.ConfigPath); !slices.Equal(paths, a.watched) {
		a.watch(paths)
	}
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		a.viewer.Destroy()
		if a.watcher != nil {
			a.watcher.Close()
		}
		a.window.Destroy()
		glfw.Terminate()
		close(a.done)
		a.log.Info("shut down", "frames", a.frame)
	})
}
