package display

import (
	"fmt"
	"sync"
)

// OpKind names a recorded Surface call.
type OpKind string

const (
	OpClear OpKind = "CLEAR"
	OpText  OpKind = "TEXT"
	OpLine  OpKind = "LINE"
	OpRect  OpKind = "RECT"
	OpFlush OpKind = "FLUSH"
)

// Op is one recorded Surface call. Line endpoints are X,Y to X1,Y1;
// rectangles use X,Y,W,H.
type Op struct {
	Kind OpKind
	Text string
	X, Y int
	X1   int
	Y1   int
	W, H int
}

func (o Op) String() string {
	switch o.Kind {
	case OpText:
		return fmt.Sprintf("%s %q @(%d,%d)", o.Kind, o.Text, o.X, o.Y)
	case OpLine:
		return fmt.Sprintf("%s (%d,%d)-(%d,%d)", o.Kind, o.X, o.Y, o.X1, o.Y1)
	case OpRect:
		return fmt.Sprintf("%s (%d,%d) %dx%d", o.Kind, o.X, o.Y, o.W, o.H)
	}
	return string(o.Kind)
}

// Recorder is a Surface test double that records every call.
type Recorder struct {
	mu sync.Mutex

	// Ops contains every call, in order.
	Ops []Op

	// FlushError, if set, will be returned by Flush() after recording.
	FlushError error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.Ops = append(r.Ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Clear() { r.record(Op{Kind: OpClear}) }

func (r *Recorder) DrawText(text string, x, y int) {
	r.record(Op{Kind: OpText, Text: text, X: x, Y: y})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int) {
	r.record(Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1})
}

func (r *Recorder) DrawFilledRect(x, y, w, h int) {
	r.record(Op{Kind: OpRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Flush() error {
	r.record(Op{Kind: OpFlush})
	return r.FlushError
}

// Frames splits the recorded calls into one slice per Flush.
// Calls after the last Flush are dropped.
func (r *Recorder) Frames() [][]Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	var frames [][]Op
	var cur []Op
	for _, op := range r.Ops {
		cur = append(cur, op)
		if op.Kind == OpFlush {
			frames = append(frames, cur)
			cur = nil
		}
	}
	return frames
}

// LastFrame returns the calls of the most recent flushed frame.
func (r *Recorder) LastFrame() []Op {
	frames := r.Frames()
	if len(frames) == 0 {
		return nil
	}
	return frames[len(frames)-1]
}

// Reset clears recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.Ops = nil
	r.FlushError = nil
	r.mu.Unlock()
}
