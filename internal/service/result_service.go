package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/repository"
)

type ResultService interface {
	ListResults(ctx context.Context, username string) ([]dto.ResultDTO, error)
}

type resultService struct {
	repo repository.ResultRepository
}

func NewResultService(repo repository.ResultRepository) ResultService {
	return &resultService{repo: repo}
}

// ListResults returns results newest first; an empty username lists everyone's.
func (s *resultService) ListResults(ctx context.Context, username string) ([]dto.ResultDTO, error) {
	results, err := s.repo.FindAll(ctx, username)
	if err != nil {
		return nil, &PersistenceError{Op: "list results", Err: err}
	}
	resp := make([]dto.ResultDTO, 0, len(results))
	if err := copier.Copy(&resp, &results); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}
