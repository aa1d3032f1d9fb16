package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/application/service"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

type GithubReposUseCase struct {
	lookup service.RepoLookup
	logger logger.Logger
}

func NewGithubReposUseCase(lookup service.RepoLookup, log logger.Logger) *GithubReposUseCase {
	return &GithubReposUseCase{lookup: lookup, logger: log}
}

type GithubReposInput struct {
	Handle string
}

type GithubReposOutput struct {
	Repos []json.RawMessage
}

// Execute does not depend on any stored profile. Failures keep their cause here; the
// HTTP layer decides how much of it a caller gets to see.
func (uc *GithubReposUseCase) Execute(ctx context.Context, input GithubReposInput) (*GithubReposOutput, error) {
	ctx, span := tracer.Start(ctx, "FetchGithubRepos")
	defer span.End()

	repos, err := uc.lookup.FetchPublicRepos(ctx, input.Handle)
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("GitHub repository lookup failed", zap.String("handle", input.Handle), zap.Error(err))
		return nil, fmt.Errorf("fetch repos failed: %w", err)
	}
	if repos == nil {
		repos = []json.RawMessage{}
	}
	return &GithubReposOutput{Repos: repos}, nil
}
