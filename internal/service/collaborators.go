package service

import (
	"context"

	"github.com/lshigami/sketchquiz/internal/dto"
)

// QuestionCache holds the public question list between reads.
type QuestionCache interface {
	GetQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, bool, error)
	SetQuestions(ctx context.Context, questions []dto.QuestionSummaryDTO) error
	Invalidate(ctx context.Context) error
}

// ImageArchive stores the PNG of a graded drawing.
type ImageArchive interface {
	Store(ctx context.Context, resultID string, png []byte) error
}

// ResultPublisher announces results once they are persisted.
type ResultPublisher interface {
	PublishResult(ctx context.Context, event dto.ResultGradedEvent) error
}

type NoopQuestionCache struct{}

func (NoopQuestionCache) GetQuestions(context.Context) ([]dto.QuestionSummaryDTO, bool, error) {
	return nil, false, nil
}

func (NoopQuestionCache) SetQuestions(context.Context, []dto.QuestionSummaryDTO) error { return nil }

func (NoopQuestionCache) Invalidate(context.Context) error { return nil }

type NoopImageArchive struct{}

func (NoopImageArchive) Store(context.Context, string, []byte) error { return nil }

type NoopResultPublisher struct{}

func (NoopResultPublisher) PublishResult(context.Context, dto.ResultGradedEvent) error { return nil }
