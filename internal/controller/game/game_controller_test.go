package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/imagedata"
	"github.com/lshigami/sketchquiz/internal/model"
	"github.com/lshigami/sketchquiz/internal/service"
	"github.com/lshigami/sketchquiz/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) ListQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuestionSummaryDTO), args.Error(1)
}

func (m *MockQuestionService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionService) ImportQuestions(ctx context.Context, seeds []dto.QuestionSeedDTO) (int, error) {
	args := m.Called(ctx, seeds)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionService) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

type MockGradingService struct {
	mock.Mock
}

func (m *MockGradingService) Predict(ctx context.Context, req dto.PredictRequest) (*dto.PredictResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PredictResponse), args.Error(1)
}

type MockResultService struct {
	mock.Mock
}

func (m *MockResultService) ListResults(ctx context.Context, username string) ([]dto.ResultDTO, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ResultDTO), args.Error(1)
}

type fixture struct {
	questions *MockQuestionService
	grading   *MockGradingService
	results   *MockResultService
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	f := &fixture{
		questions: new(MockQuestionService),
		grading:   new(MockGradingService),
		results:   new(MockResultService),
		router:    gin.New(),
	}
	NewGameController(f.questions, f.grading, f.results).RegisterRoutes(f.router)
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func pngBase64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 3))))
	return imagedata.Encode(buf.Bytes())
}

func TestListQuestions(t *testing.T) {
	f := newFixture(t)
	f.questions.On("ListQuestions", mock.Anything).Return([]dto.QuestionSummaryDTO{
		{ID: "q1", Question: "Draw a fruit", Category: "food"},
	}, nil)

	rec := f.do(http.MethodGet, "/api/questions", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"questions":[{"id":"q1","question":"Draw a fruit","category":"food"}]}`, rec.Body.String())
}

func TestListQuestions_Failure(t *testing.T) {
	f := newFixture(t)
	f.questions.On("ListQuestions", mock.Anything).Return(nil, &service.PersistenceError{Op: "list questions", Err: errors.New("down")})

	rec := f.do(http.MethodGet, "/api/questions", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, dto.ErrorResponse{Success: false, Message: "Server error"}, decode[dto.ErrorResponse](t, rec))
}

func TestPredict_Success(t *testing.T) {
	f := newFixture(t)
	img := pngBase64(t)
	correct := true
	f.grading.On("Predict", mock.Anything, dto.PredictRequest{ImageData: img, QuestionID: "q1", Username: "alice"}).
		Return(&dto.PredictResponse{Success: true, Caption: "apple", Correct: &correct, Message: "Predicted: apple, Expected: apple"}, nil)

	rec := f.do(http.MethodPost, "/api/predict", map[string]string{"imageData": img, "questionId": "q1", "username": "alice"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"caption":"apple","correct":true,"message":"Predicted: apple, Expected: apple"}`, rec.Body.String())
}

func TestPredict_IncorrectStillReportsCorrectField(t *testing.T) {
	f := newFixture(t)
	img := pngBase64(t)
	correct := false
	f.grading.On("Predict", mock.Anything, mock.Anything).
		Return(&dto.PredictResponse{Success: true, Caption: "pear", Correct: &correct, Message: "Predicted: pear, Expected: apple"}, nil)

	rec := f.do(http.MethodPost, "/api/predict", map[string]string{"imageData": img, "questionId": "q1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"correct":false`)
}

func TestPredict_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	cases := map[string]map[string]string{
		"missing question": {"imageData": pngBase64(t)},
		"missing image":    {"questionId": "q1"},
		"not a png":        {"imageData": imagedata.Encode([]byte("hello")), "questionId": "q1"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/predict", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[dto.ErrorResponse](t, rec)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
	f.grading.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredict_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode[dto.ErrorResponse](t, rec).Message)
}

func TestPredict_RejectsOversizedBody(t *testing.T) {
	f := newFixture(t)
	ctrl := NewGameController(f.questions, f.grading, f.results)
	ctrl.maxBodyBytes = 1024
	router := gin.New()
	ctrl.RegisterRoutes(router)

	body, err := json.Marshal(dto.PredictRequest{ImageData: strings.Repeat("A", 4096), QuestionID: "q1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Drawing is too large", resp.Message)
	f.grading.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredict_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", service.ErrQuestionNotFound, http.StatusNotFound, "Question not found"},
		{"inference", &service.InferenceError{Provider: "ollama", Err: errors.New("refused")}, http.StatusInternalServerError, "Prediction failed. Try again!"},
		{"persistence", &service.PersistenceError{Op: "save result", Err: errors.New("disk")}, http.StatusInternalServerError, "Prediction failed. Try again!"},
		{"validation", &service.ValidationError{Field: "questionId", Reason: "is required"}, http.StatusBadRequest, "questionId: is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.grading.On("Predict", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := f.do(http.MethodPost, "/api/predict", map[string]string{"imageData": pngBase64(t), "questionId": "q1"})

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, dto.ErrorResponse{Success: false, Message: tc.message}, decode[dto.ErrorResponse](t, rec))
		})
	}
}

func TestListResults_FiltersByUsername(t *testing.T) {
	f := newFixture(t)
	f.results.On("ListResults", mock.Anything, "alice").Return([]dto.ResultDTO{{ID: "r1", Username: "alice", Caption: "apple", Correct: true}}, nil)

	rec := f.do(http.MethodGet, "/api/results?username=alice", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.ResultListResponse](t, rec)
	assert.True(t, resp.Success)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "r1", resp.Results[0].ID)
}

func TestListResults_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	f.results.On("ListResults", mock.Anything, "").Return([]dto.ResultDTO{}, nil)

	rec := f.do(http.MethodGet, "/api/results", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"results":[]}`, rec.Body.String())
}
