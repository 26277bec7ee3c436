package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	if level, ok := wgpuLogLevel(os.Getenv("WGPU_LOG_LEVEL")); ok {
		wgpu.SetLogLevel(level)
	}
}

func wgpuLogLevel(name string) (wgpu.LogLevel, bool) {
	switch strings.ToUpper(name) {
	case "OFF":
		return wgpu.LogLevelOff, true
	case "ERROR":
		return wgpu.LogLevelError, true
	case "WARN":
		return wgpu.LogLevelWarn, true
	case "INFO":
		return wgpu.LogLevelInfo, true
	case "DEBUG":
		return wgpu.LogLevelDebug, true
	case "TRACE":
		return wgpu.LogLevelTrace, true
	default:
		return 0, false
	}
}

// Context holds the webgpu device and the surface of the window it renders to.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

func New(sd *wgpu.SurfaceDescriptor) (_ *Context, err error) {
	ctx := &Context{}

	// release the partially initialized context on failure
	defer func() {
		if err != nil {
			ctx.Release()
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ctx.Surface = instance.CreateSurface(sd)

	ctx.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    ctx.Surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	ctx.Queue = ctx.Device.GetQueue()

	slog.Info("Created webgpu device", slog.Bool("fallbackAdapter", forceFallbackAdapter))

	return ctx, nil
}

func (ctx *Context) Release() {
	if ctx.Queue != nil {
		ctx.Queue.Release()
		ctx.Queue = nil
	}

	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
	}

	if ctx.Adapter != nil {
		ctx.Adapter.Release()
		ctx.Adapter = nil
	}

	if ctx.Surface != nil {
		ctx.Surface.Release()
		ctx.Surface = nil
	}
}
