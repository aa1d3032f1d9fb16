package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/application/service"
	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

// ProcessProfileEventUseCase runs in the worker. A deleted profile takes its cached
// repository list with it.
type ProcessProfileEventUseCase struct {
	cache  service.RepoCache
	logger logger.Logger
}

func NewProcessProfileEventUseCase(cache service.RepoCache, log logger.Logger) *ProcessProfileEventUseCase {
	return &ProcessProfileEventUseCase{cache: cache, logger: log}
}

func (uc *ProcessProfileEventUseCase) Execute(ctx context.Context, evt profile.Event) error {
	switch evt.Type {
	case profile.EventDeleted:
		if evt.GithubUsername == "" {
			return nil
		}
		if err := uc.cache.EvictRepos(ctx, evt.GithubUsername); err != nil {
			return fmt.Errorf("evict repo cache failed: %w", err)
		}
		uc.logger.Info("Evicted cached repositories", zap.String("owner_id", evt.OwnerID.String()), zap.String("handle", evt.GithubUsername))
		return nil
	case profile.EventUpserted:
		return nil
	default:
		uc.logger.Warn("Unknown profile event type, skip", zap.String("event_type", string(evt.Type)))
		return nil
	}
}
