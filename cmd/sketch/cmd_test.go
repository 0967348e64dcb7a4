package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/imagedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appleScript = `{"width":64,"height":64,"strokes":[{"tool":"pen","size":6,"points":[[20,20],[40,40],[20,40]]}]}`

func gameServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/questions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.QuestionListResponse{Success: true, Questions: []dto.QuestionSummaryDTO{
			{ID: "q1", Question: "Draw a fruit", Category: "food"},
		}})
	})
	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		var req dto.PredictRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		_, _, err := imagedata.DecodePNG(req.ImageData)
		assert.NoError(t, err)
		assert.Equal(t, "q1", req.QuestionID)
		correct := true
		_ = json.NewEncoder(w).Encode(dto.PredictResponse{Success: true, Caption: "apple", Correct: &correct, Message: "Predicted: apple, Expected: apple"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apple.json")
	require.NoError(t, os.WriteFile(path, []byte(appleScript), 0o600))
	return path
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	cli := commandLine{out: &out}

	assert.ErrorIs(t, cli.run([]string{"sketch"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"sketch", "paint"}), errHelp)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_SubmitRequiresScript(t *testing.T) {
	cli := commandLine{out: &bytes.Buffer{}}
	assert.ErrorIs(t, cli.run([]string{"sketch", "submit"}), errHelp)
}

func TestRun_SubmitWithQuestion(t *testing.T) {
	srv := gameServer(t)
	pngPath := filepath.Join(t.TempDir(), "out.png")
	var out bytes.Buffer
	cli := commandLine{out: &out}

	err := cli.run([]string{"sketch", "submit", "-server", srv.URL, "-script", writeScript(t), "-question", "q1", "-user", "alice", "-png", pngPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Predicted: apple, Expected: apple")
	raw, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	_, _, err = imagedata.DecodePNG(imagedata.Encode(raw))
	assert.NoError(t, err)
}

func TestRun_SubmitRandomQuestion(t *testing.T) {
	srv := gameServer(t)
	var out bytes.Buffer
	cli := commandLine{out: &out}

	err := cli.run([]string{"sketch", "submit", "-server", srv.URL, "-script", writeScript(t)})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Question: Draw a fruit")
	assert.Contains(t, out.String(), "[success] You drew: apple (Correct)")
}

func TestRun_Questions(t *testing.T) {
	srv := gameServer(t)
	var out bytes.Buffer
	cli := commandLine{out: &out}

	require.NoError(t, cli.run([]string{"sketch", "questions", "-server", srv.URL}))
	assert.Equal(t, "q1\tfood\tDraw a fruit\n", out.String())
}
