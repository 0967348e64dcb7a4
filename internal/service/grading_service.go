package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/imagedata"
	"github.com/lshigami/sketchquiz/internal/model"
	"github.com/lshigami/sketchquiz/internal/monitoring"
	"github.com/lshigami/sketchquiz/internal/repository"
	"github.com/lshigami/sketchquiz/internal/tracing"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const GuestUsername = "Guest"

// DefaultSideEffectTimeout bounds archiving and publishing after a result is stored.
const DefaultSideEffectTimeout = 2 * time.Second

type GradingService interface {
	Predict(ctx context.Context, req dto.PredictRequest) (*dto.PredictResponse, error)
}

type gradingService struct {
	questions QuestionService
	gateway   InferenceGateway
	results   repository.ResultRepository
	archive   ImageArchive
	publisher ResultPublisher

	sideEffectTimeout time.Duration
}

func NewGradingService(
	questions QuestionService,
	gateway InferenceGateway,
	results repository.ResultRepository,
	archive ImageArchive,
	publisher ResultPublisher,
) GradingService {
	if archive == nil {
		archive = NoopImageArchive{}
	}
	if publisher == nil {
		publisher = NoopResultPublisher{}
	}
	return &gradingService{
		questions: questions,
		gateway:   gateway,
		results:   results,
		archive:   archive,
		publisher: publisher,

		sideEffectTimeout: DefaultSideEffectTimeout,
	}
}

// Predict resolves the question, captions the drawing, grades the caption and
// writes exactly one Result. Nothing is written when resolution or inference fails.
func (s *gradingService) Predict(ctx context.Context, req dto.PredictRequest) (*dto.PredictResponse, error) {
	ctx, span := tracing.Tracer().Start(ctx, "grading.Predict")
	defer span.End()
	span.SetAttributes(attribute.String("question.id", req.QuestionID))

	resp, outcome, err := s.predict(ctx, req)
	monitoring.ObservePrediction(outcome)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("result.correct", *resp.Correct))
	return resp, nil
}

func (s *gradingService) predict(ctx context.Context, req dto.PredictRequest) (*dto.PredictResponse, string, error) {
	if strings.TrimSpace(req.QuestionID) == "" {
		return nil, monitoring.OutcomeInvalid, &ValidationError{Field: "questionId", Reason: "is required"}
	}
	png, _, err := imagedata.DecodePNG(req.ImageData)
	if err != nil {
		return nil, monitoring.OutcomeInvalid, &ValidationError{Field: "imageData", Reason: err.Error()}
	}
	imageBase64 := imagedata.StripDataURI(req.ImageData)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = GuestUsername
	}

	question, err := s.questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, monitoring.OutcomeNotFound, err
		}
		return nil, monitoring.OutcomePersistenceError, err
	}

	rawCaption, err := s.gateway.Caption(ctx, imageBase64)
	if err == nil && model.NormalizeLabel(rawCaption) == "" {
		err = ErrEmptyCaption
	}
	if err != nil {
		var inferenceErr *InferenceError
		if !errors.As(err, &inferenceErr) {
			err = &InferenceError{Provider: "inference", Err: err}
		}
		return nil, monitoring.OutcomeInferenceError, err
	}

	caption := model.NormalizeLabel(rawCaption)
	expected := model.NormalizeLabel(question.ExpectedAnswer)
	correct := caption == expected

	result := &model.Result{
		ID:        uuid.NewString(),
		Username:  username,
		Question:  question.Question,
		Caption:   caption,
		Correct:   correct,
		ImageData: imageBase64,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, monitoring.OutcomePersistenceError, &PersistenceError{Op: "save result", Err: err}
	}

	log.Info().
		Str("resultID", result.ID).
		Str("questionID", question.ID).
		Str("username", username).
		Str("caption", caption).
		Bool("correct", correct).
		Msg("Drawing graded")

	s.afterPersist(ctx, result, png)

	outcome := monitoring.OutcomeIncorrect
	if correct {
		outcome = monitoring.OutcomeCorrect
	}
	return &dto.PredictResponse{
		Success: true,
		Caption: caption,
		Correct: &correct,
		Message: fmt.Sprintf("Predicted: %s, Expected: %s", caption, expected),
	}, outcome, nil
}

// afterPersist archives the drawing and announces the result. Failures here
// never change the verdict already committed, and both calls share one deadline.
func (s *gradingService) afterPersist(ctx context.Context, result *model.Result, png []byte) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()

	if err := s.archive.Store(ctx, result.ID, png); err != nil {
		log.Warn().Err(err).Str("resultID", result.ID).Msg("Failed to archive drawing")
	}

	event := dto.ResultGradedEvent{
		ResultID:  result.ID,
		Username:  result.Username,
		Question:  result.Question,
		Caption:   result.Caption,
		Correct:   result.Correct,
		CreatedAt: result.CreatedAt,
	}
	if err := s.publisher.PublishResult(ctx, event); err != nil {
		log.Warn().Err(err).Str("resultID", result.ID).Msg("Failed to publish graded result")
	}
}
