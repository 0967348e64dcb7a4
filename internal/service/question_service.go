package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/model"
	"github.com/lshigami/sketchquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type QuestionService interface {
	ListQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, error)
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	ImportQuestions(ctx context.Context, seeds []dto.QuestionSeedDTO) (int, error)
	SeedIfEmpty(ctx context.Context, path string) (int, error)
}

type questionService struct {
	repo  repository.QuestionRepository
	cache QuestionCache
}

func NewQuestionService(repo repository.QuestionRepository, cache QuestionCache) QuestionService {
	if cache == nil {
		cache = NoopQuestionCache{}
	}
	return &questionService{repo: repo, cache: cache}
}

func (s *questionService) ListQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, error) {
	if cached, ok, err := s.cache.GetQuestions(ctx); err != nil {
		log.Warn().Err(err).Msg("Question cache read failed, falling back to database")
	} else if ok {
		return cached, nil
	}

	questions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list questions", Err: err}
	}

	resp := make([]dto.QuestionSummaryDTO, 0, len(questions))
	if err := copier.Copy(&resp, &questions); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}

	if err := s.cache.SetQuestions(ctx, resp); err != nil {
		log.Warn().Err(err).Msg("Question cache write failed")
	}
	return resp, nil
}

// GetQuestion returns ErrQuestionNotFound for unknown ids.
func (s *questionService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, &PersistenceError{Op: "find question", Err: err}
	}
	return question, nil
}

func (s *questionService) ImportQuestions(ctx context.Context, seeds []dto.QuestionSeedDTO) (int, error) {
	questions := make([]model.Question, 0, len(seeds))
	for i, seed := range seeds {
		if strings.TrimSpace(seed.Question) == "" || strings.TrimSpace(seed.ExpectedAnswer) == "" {
			return 0, &ValidationError{
				Field:  fmt.Sprintf("questions[%d]", i),
				Reason: "question and expectedAnswer are required",
			}
		}
		var q model.Question
		if err := copier.Copy(&q, &seed); err != nil {
			return 0, fmt.Errorf("error preparing question data: %w", err)
		}
		questions = append(questions, q)
	}

	if err := s.repo.CreateBatch(ctx, questions); err != nil {
		return 0, &PersistenceError{Op: "import questions", Err: err}
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Question cache invalidation failed")
	}
	return len(questions), nil
}

// SeedIfEmpty imports the seed file only when no question exists yet.
func (s *questionService) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, &PersistenceError{Op: "count questions", Err: err}
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("Questions already present, skipping seed")
		return 0, nil
	}

	seeds, err := LoadQuestionSeed(path)
	if err != nil {
		return 0, err
	}
	n, err := s.ImportQuestions(ctx, seeds)
	if err != nil {
		return 0, err
	}
	log.Info().Int("imported", n).Str("file", path).Msg("Seeded questions")
	return n, nil
}

// LoadQuestionSeed reads a YAML list of questions.
func LoadQuestionSeed(path string) ([]dto.QuestionSeedDTO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seeds []dto.QuestionSeedDTO
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seeds, nil
}
