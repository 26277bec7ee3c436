package orion

import (
	"fmt"
	"image/color"
	"runtime"
	"time"

	"github.com/oliverbestmann/frameless/glm"
	"github.com/oliverbestmann/frameless/layout"
	"github.com/oliverbestmann/frameless/raster"
)

// FrameSample holds the measurements of a single frame.
type FrameSample struct {
	Build  time.Duration
	Render time.Duration
	Stats  raster.Stats
}

var (
	overlayBackground = color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xd0}
	overlayText       = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	overlayBuild      = color.NRGBA{R: 0x40, G: 0x40, B: 0xff, A: 0xd8}
	overlayRender     = color.NRGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xd8}
	overlayBudget     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
)

const overlayFontSize = 13

// DebugOverlay draws frame statistics in the top right corner of the content area.
type DebugOverlay struct {
	Visible bool

	samples    [120]FrameSample
	frameCount int

	mem runtime.MemStats
}

func (d *DebugOverlay) Record(sample FrameSample) {
	d.samples[d.frameCount%len(d.samples)] = sample
	d.frameCount += 1

	// reading mem stats stops the world, do it twice per second only
	if d.Visible && d.frameCount%30 == 0 {
		runtime.ReadMemStats(&d.mem)
	}
}

func (d *DebugOverlay) last() FrameSample {
	if d.frameCount == 0 {
		return FrameSample{}
	}

	return d.samples[(d.frameCount-1)%len(d.samples)]
}

func (d *DebugOverlay) Build(frame *layout.Frame, content layout.BoundingBox, times *FrameTimes) {
	if !d.Visible {
		return
	}

	lines := d.lines(times)

	const padding = 8
	const graphHeight = 60

	var textWidth float32
	for _, line := range lines {
		textWidth = max(textWidth, layout.MeasureText(line, overlayFontSize)[0])
	}

	width := max(textWidth, float32(len(d.samples))) + 2*padding
	height := float32(len(lines))*overlayFontSize + graphHeight + 3*padding

	panel := glm.RectFromXYWH(content.Right()-width-padding, content.Y+padding, width, height)

	frame.Clip(panel, func() {
		frame.Rect("", panel, overlayBackground, layout.Uniform(4))

		y := panel.Y + padding
		for _, line := range lines {
			frame.Text(glm.Vec2f{panel.X + padding, y}, line, 0, overlayFontSize, overlayText)
			y += overlayFontSize
		}

		d.buildGraph(frame, glm.RectFromXYWH(panel.X+padding, y+padding, width-2*padding, graphHeight))
	})
}

// buildGraph draws one bar per sample, 60fps worth of frame time fills half the graph.
func (d *DebugOverlay) buildGraph(frame *layout.Frame, box layout.BoundingBox) {
	budget := time.Second / 60
	scale := box.H / 2 / float32(budget.Seconds())

	barWidth := box.W / float32(len(d.samples))

	for idx := range d.samples {
		// oldest sample on the left
		sample := d.samples[(d.frameCount+idx)%len(d.samples)]

		x := box.X + float32(idx)*barWidth
		y := box.Bottom()

		bar := func(duration time.Duration, fill color.NRGBA) {
			height := min(float32(duration.Seconds())*scale, y-box.Y)
			if height <= 0 {
				return
			}

			y -= height
			frame.Rect("", glm.RectFromXYWH(x, y, barWidth, height), fill, layout.CornerRadius{})
		}

		bar(sample.Build, overlayBuild)
		bar(sample.Render, overlayRender)
	}

	budgetY := box.Bottom() - float32(budget.Seconds())*scale
	frame.Rect("", glm.RectFromXYWH(box.X, budgetY, box.W, 1), overlayBudget, layout.CornerRadius{})
}

func (d *DebugOverlay) lines(times *FrameTimes) []string {
	sample := d.last()

	return []string{
		fmt.Sprintf("FPS: %1.2f", times.FPS()),
		fmt.Sprintf("Frames: %d", times.FrameCount),
		fmt.Sprintf("Max frame: %1.2fms", times.MaxDuration.Seconds()*1000),
		fmt.Sprintf("Commands: %d", sample.Stats.Commands),
		fmt.Sprintf("Triangles: %d", sample.Stats.Triangles),
		fmt.Sprintf("Polylines: %d", sample.Stats.Polylines),
		fmt.Sprintf("Skipped: %d  Failed: %d", sample.Stats.Skipped, sample.Stats.Failed),
		fmt.Sprintf("Heap InUse: %1.2fmb", float64(d.mem.HeapInuse)/(1024.0*1024.0)),
		fmt.Sprintf("GC Cycles: %d", d.mem.NumGC),
	}
}
