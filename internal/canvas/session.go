package canvas

import (
	"fmt"
	"sync"
)

type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

const DefaultStrokeSize = 5.0

func ParseTool(s string) (Tool, error) {
	switch Tool(s) {
	case ToolPen, "":
		return ToolPen, nil
	case ToolEraser:
		return ToolEraser, nil
	default:
		return "", fmt.Errorf("unknown tool %q", s)
	}
}

// PointerHandler receives pointer input in canvas coordinates. Mouse and
// touch front ends both translate their events into these calls.
type PointerHandler interface {
	OnPointerDown(p Point)
	OnPointerMove(p Point)
	OnPointerUp()
}

// Session owns one canvas and the stroke state painted into it.
type Session struct {
	mu      sync.Mutex
	canvas  *Canvas
	tool    Tool
	size    float64
	drawing bool
	last    Point
}

var _ PointerHandler = (*Session)(nil)

func NewSession(width, height int) *Session {
	return &Session{
		canvas: New(width, height),
		tool:   ToolPen,
		size:   DefaultStrokeSize,
	}
}

func (s *Session) SetTool(tool Tool) error {
	if tool != ToolPen && tool != ToolEraser {
		return fmt.Errorf("unknown tool %q", tool)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = tool
	return nil
}

func (s *Session) SetSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("stroke size must be positive, got %v", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = size
	return nil
}

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

func (s *Session) Size() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *Session) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// StartStroke begins a path at p and marks it with a dot.
func (s *Session) StartStroke(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = true
	s.last = p
	s.canvas.Dot(p, s.tool, s.size)
}

// ExtendStroke continues the current path to p. It is ignored between strokes.
func (s *Session) ExtendStroke(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing {
		return
	}
	s.canvas.Segment(s.last, p, s.tool, s.size)
	s.last = p
}

func (s *Session) EndStroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = false
}

func (s *Session) OnPointerDown(p Point) { s.StartStroke(p) }
func (s *Session) OnPointerMove(p Point) { s.ExtendStroke(p) }
func (s *Session) OnPointerUp()          { s.EndStroke() }

// Reset clears the drawing and any stroke in progress. Tool and size stay.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = false
	s.canvas.Clear()
}

// Resize recreates the buffer; the current drawing is lost.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = false
	s.canvas.Resize(width, height)
}

func (s *Session) IsBlank() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.IsBlank()
}

func (s *Session) Encode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Encode()
}

func (s *Session) EncodePNG(quality float64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.EncodePNG(quality)
}
