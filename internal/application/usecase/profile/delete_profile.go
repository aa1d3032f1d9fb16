package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/application/service"
	"github.com/khoahotran/devconnector-profile/internal/domain/post"
	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/internal/domain/user"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

// DeleteProfileUseCase removes an account: the owner's posts, then the profile, then the
// user record. The user goes last so the owner id stays resolvable while its dependents
// are cleared. A failed step stops the sequence; completed steps are not undone.
type DeleteProfileUseCase struct {
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewDeleteProfileUseCase(
	postRepo post.Repository,
	profileRepo profile.Repository,
	userRepo user.Repository,
	publisher service.EventPublisher,
	log logger.Logger,
) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      log,
	}
}

type DeleteProfileInput struct {
	OwnerID uuid.UUID
}

type DeleteProfileOutput struct {
	PostsDeleted   int64
	ProfileDeleted bool
}

func (uc *DeleteProfileUseCase) Execute(ctx context.Context, input DeleteProfileInput) (*DeleteProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "DeleteProfile")
	defer span.End()

	log := uc.logger.With(zap.String("owner_id", input.OwnerID.String()))

	postsDeleted, err := uc.postRepo.DeleteByOwner(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("delete posts failed: %w", err)
	}

	removed, err := uc.profileRepo.DeleteByOwner(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		log.Warn("Cascade stopped after posts were deleted", zap.Int64("posts_deleted", postsDeleted))
		return nil, fmt.Errorf("delete profile failed: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		log.Warn("Cascade stopped after posts and profile were deleted", zap.Int64("posts_deleted", postsDeleted))
		return nil, fmt.Errorf("delete user failed: %w", err)
	}

	evt := profile.Event{
		Type:       profile.EventDeleted,
		OwnerID:    input.OwnerID,
		OccurredAt: time.Now().UTC(),
	}
	if removed != nil {
		evt.GithubUsername = removed.GithubUsername
	}
	if err := uc.publisher.PublishProfileEvent(ctx, evt); err != nil {
		log.Error("Failed to publish profile event", err, zap.String("event_type", string(evt.Type)))
	}

	log.Info("Account deleted", zap.Int64("posts_deleted", postsDeleted), zap.Bool("profile_deleted", removed != nil))
	return &DeleteProfileOutput{PostsDeleted: postsDeleted, ProfileDeleted: removed != nil}, nil
}
