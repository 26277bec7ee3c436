package raster

import (
	"errors"
	"image/color"

	"github.com/oliverbestmann/frameless/glm"
)

type recordedCall struct {
	op string

	mesh   Mesh
	points []glm.Vec2f
	text   TextRun
	image  ImageRun

	// scissor active when the call was made
	scissor glm.Rectf
	clipped bool
}

// recordingBackend records every call. Fill calls fail as long as failFills
// is positive.
type recordingBackend struct {
	calls []recordedCall

	scissor glm.Rectf
	clipped bool

	failFills int
}

var errBackend = errors.New("backend failure")

func (b *recordingBackend) record(call recordedCall) {
	call.scissor = b.scissor
	call.clipped = b.clipped
	b.calls = append(b.calls, call)
}

func (b *recordingBackend) FillTriangles(mesh Mesh) error {
	if b.failFills > 0 {
		b.failFills--
		return errBackend
	}

	b.record(recordedCall{op: "fill", mesh: mesh})
	return nil
}

func (b *recordingBackend) StrokePolyline(points []glm.Vec2f, _ color.NRGBA) error {
	b.record(recordedCall{op: "stroke", points: points})
	return nil
}

func (b *recordingBackend) SetScissor(rect glm.Rectf) error {
	b.scissor = rect
	b.clipped = true
	b.record(recordedCall{op: "scissor"})
	return nil
}

func (b *recordingBackend) ClearScissor() error {
	b.scissor = glm.Rectf{}
	b.clipped = false
	b.record(recordedCall{op: "clear"})
	return nil
}

func (b *recordingBackend) DrawText(run TextRun) error {
	b.record(recordedCall{op: "text", text: run})
	return nil
}

func (b *recordingBackend) DrawImage(run ImageRun) error {
	b.record(recordedCall{op: "image", image: run})
	return nil
}

func (b *recordingBackend) ops() []string {
	var ops []string
	for _, call := range b.calls {
		ops = append(ops, call.op)
	}

	return ops
}

func (b *recordingBackend) callsOf(op string) []recordedCall {
	var calls []recordedCall
	for _, call := range b.calls {
		if call.op == op {
			calls = append(calls, call)
		}
	}

	return calls
}
