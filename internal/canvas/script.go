package canvas

import (
	"encoding/json"
	"fmt"
	"io"
)

// Script is a recorded drawing:
//
//	{"width":256,"height":256,"strokes":[{"tool":"pen","size":5,"points":[[10,10],[40,40]]}]}
type Script struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Strokes []ScriptStroke `json:"strokes"`
}

type ScriptStroke struct {
	Tool   string       `json:"tool"`
	Size   float64      `json:"size"`
	Points [][2]float64 `json:"points"`
}

func ReadScript(r io.Reader) (*Script, error) {
	var sc Script
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode stroke script: %w", err)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("stroke script needs a positive width and height, got %dx%d", sc.Width, sc.Height)
	}
	return &sc, nil
}

// Replay feeds every stroke into the session as pointer events. Stroke tool and size
// are applied to the session before each stroke; zero size keeps the current one.
func (sc *Script) Replay(s *Session) error {
	for i, st := range sc.Strokes {
		tool, err := ParseTool(st.Tool)
		if err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if err := s.SetTool(tool); err != nil {
			return err
		}
		if st.Size > 0 {
			if err := s.SetSize(st.Size); err != nil {
				return err
			}
		}
		replayStroke(s, st.Points)
	}
	return nil
}

func replayStroke(h PointerHandler, points [][2]float64) {
	if len(points) == 0 {
		return
	}
	h.OnPointerDown(Point{X: points[0][0], Y: points[0][1]})
	for _, pt := range points[1:] {
		h.OnPointerMove(Point{X: pt[0], Y: pt[1]})
	}
	h.OnPointerUp()
}
