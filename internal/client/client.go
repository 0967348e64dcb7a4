// Package client talks to the game API on behalf of a drawing front end.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lshigami/sketchquiz/internal/dto"
)

const DefaultTimeout = 45 * time.Second

var (
	ErrBlankCanvas        = errors.New("canvas is blank")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrNoQuestions        = errors.New("no questions available")
)

// APIError is a {success:false} answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Drawing is what gets submitted; *canvas.Session implements it.
type Drawing interface {
	IsBlank() bool
	Encode() (string, error)
}

// Client allows at most one prediction request at a time.
type Client struct {
	baseURL  string
	http     *http.Client
	inFlight atomic.Bool
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, error) {
	var out dto.QuestionListResponse
	if err := c.getJSON(ctx, "/api/questions", &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *Client) FetchResults(ctx context.Context, username string) ([]dto.ResultDTO, error) {
	path := "/api/results"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}
	var out dto.ResultListResponse
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Submit sends the drawing for grading. Blank drawings are refused without a
// network call, as is a second submit while one is pending.
func (c *Client) Submit(ctx context.Context, d Drawing, questionID, username string) (*dto.PredictResponse, error) {
	if d.IsBlank() {
		return nil, ErrBlankCanvas
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	image, err := d.Encode()
	if err != nil {
		return nil, err
	}
	if username == "" {
		username = "Guest"
	}

	body, err := json.Marshal(dto.PredictRequest{ImageData: image, QuestionID: questionID, Username: username})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out dto.PredictResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InFlight reports whether a submission is pending.
func (c *Client) InFlight() bool {
	return c.inFlight.Load()
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "unreadable response"}
	}
	var env envelope
	_ = json.Unmarshal(raw, &env)
	if resp.StatusCode != http.StatusOK || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return json.Unmarshal(raw, out)
}
