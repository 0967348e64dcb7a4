package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/imagedata"
	"github.com/lshigami/sketchquiz/internal/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	return m.Called(ctx, questions).Error(0)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *model.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *MockResultRepository) FindAll(ctx context.Context, username string) ([]model.Result, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Result), args.Error(1)
}

type MockInferenceGateway struct {
	mock.Mock
}

func (m *MockInferenceGateway) Caption(ctx context.Context, imageBase64 string) (string, error) {
	args := m.Called(ctx, imageBase64)
	return args.String(0), args.Error(1)
}

type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) GetQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]dto.QuestionSummaryDTO), args.Bool(1), args.Error(2)
}

func (m *MockQuestionCache) SetQuestions(ctx context.Context, questions []dto.QuestionSummaryDTO) error {
	return m.Called(ctx, questions).Error(0)
}

func (m *MockQuestionCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockImageArchive struct {
	mock.Mock
}

func (m *MockImageArchive) Store(ctx context.Context, resultID string, png []byte) error {
	return m.Called(ctx, resultID, png).Error(0)
}

type MockResultPublisher struct {
	mock.Mock
}

func (m *MockResultPublisher) PublishResult(ctx context.Context, event dto.ResultGradedEvent) error {
	return m.Called(ctx, event).Error(0)
}

// drawingPNG returns a small white PNG with one dark pixel.
func drawingPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func drawingBase64(t *testing.T) string {
	t.Helper()
	return imagedata.Encode(drawingPNG(t))
}
