package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/application/service"
	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, publisher service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		publisher:   publisher,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	p, err := uc.profileRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

// GetProfileByTokenInput carries an owner id exactly as the caller sent it.
type GetProfileByTokenInput struct {
	OwnerToken string
}

// ExecuteGetProfileByToken treats a token that is not a valid id the same as an id
// without a profile.
func (uc *ProfileUseCase) ExecuteGetProfileByToken(ctx context.Context, input GetProfileByTokenInput) (*GetProfileOutput, error) {
	ownerID, err := uuid.Parse(input.OwnerToken)
	if err != nil {
		return nil, apperror.NewNotFound("profile", input.OwnerToken)
	}
	return uc.ExecuteGetProfile(ctx, GetProfileInput{OwnerID: ownerID})
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteListProfiles(ctx context.Context) (*ListProfilesOutput, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}

type UpsertProfileInput struct {
	OwnerID uuid.UUID
	Fields  profile.Fields
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpsertProfile(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	p, err := uc.profileRepo.Upsert(ctx, input.OwnerID, input.Fields.Patch())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upsert profile failed: %w", err)
	}

	evt := profile.Event{
		Type:           profile.EventUpserted,
		OwnerID:        p.OwnerID,
		GithubUsername: p.GithubUsername,
		OccurredAt:     time.Now().UTC(),
	}
	if err := uc.publisher.PublishProfileEvent(ctx, evt); err != nil {
		uc.logger.Error("Failed to publish profile event", err, zap.String("owner_id", input.OwnerID.String()), zap.String("event_type", string(evt.Type)))
	}

	return &UpsertProfileOutput{Profile: p}, nil
}
