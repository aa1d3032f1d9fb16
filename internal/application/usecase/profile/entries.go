package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

// EntryUseCase edits the experience and education lists. Each call loads the aggregate,
// changes one list and writes the whole aggregate back. Two concurrent edits for the same
// owner race and the last write wins.
type EntryUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewEntryUseCase(repo profile.Repository, log logger.Logger) *EntryUseCase {
	return &EntryUseCase{profileRepo: repo, logger: log}
}

type AddExperienceInput struct {
	OwnerID    uuid.UUID
	Experience profile.Experience
}

type AddEducationInput struct {
	OwnerID   uuid.UUID
	Education profile.Education
}

type RemoveEntryInput struct {
	OwnerID uuid.UUID
	EntryID string
}

type EntryOutput struct {
	Profile *profile.Profile
}

func (uc *EntryUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*EntryOutput, error) {
	return uc.edit(ctx, input.OwnerID, "add experience", func(p *profile.Profile) {
		p.AddExperience(input.Experience)
	})
}

func (uc *EntryUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*EntryOutput, error) {
	return uc.edit(ctx, input.OwnerID, "add education", func(p *profile.Profile) {
		p.AddEducation(input.Education)
	})
}

func (uc *EntryUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*EntryOutput, error) {
	return uc.edit(ctx, input.OwnerID, "remove experience", func(p *profile.Profile) {
		if !p.RemoveExperience(input.EntryID) {
			uc.logger.Info("Experience entry not found, list unchanged",
				zap.String("owner_id", input.OwnerID.String()), zap.String("entry_id", input.EntryID))
		}
	})
}

func (uc *EntryUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*EntryOutput, error) {
	return uc.edit(ctx, input.OwnerID, "remove education", func(p *profile.Profile) {
		if !p.RemoveEducation(input.EntryID) {
			uc.logger.Info("Education entry not found, list unchanged",
				zap.String("owner_id", input.OwnerID.String()), zap.String("entry_id", input.EntryID))
		}
	})
}

func (uc *EntryUseCase) edit(ctx context.Context, ownerID uuid.UUID, op string, mutate func(*profile.Profile)) (*EntryOutput, error) {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	p, err := uc.profileRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}

	mutate(p)

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	return &EntryOutput{Profile: p}, nil
}
