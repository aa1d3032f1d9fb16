package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	usecase "github.com/khoahotran/devconnector-profile/internal/application/usecase/profile"
	domain "github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/internal/mocks"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

func TestUpsertProfile(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		fields  domain.Fields
		arrange func(repo *mocks.MockProfileRepository, pub *mocks.MockEventPublisher)
		assert  func(t *testing.T, out *usecase.UpsertProfileOutput, err error)
	}{
		{
			name:   "Should pass only present fields and publish upserted",
			fields: domain.Fields{Status: "Developer", Skills: "go, sql", Twitter: "https://x.com/a"},
			arrange: func(repo *mocks.MockProfileRepository, pub *mocks.MockEventPublisher) {
				repo.EXPECT().Upsert(gomock.Any(), ownerID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domain.Patch) (*domain.Profile, error) {
						require.Equal(t, "Developer", *patch.Status)
						require.Equal(t, []string{"go", "sql"}, *patch.Skills)
						require.Equal(t, "https://x.com/a", *patch.Social.Twitter)
						require.Nil(t, patch.Company)
						require.Nil(t, patch.Social.YouTube)
						return &domain.Profile{OwnerID: ownerID, Status: "Developer", GithubUsername: "octocat"}, nil
					})
				pub.EXPECT().PublishProfileEvent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, evt domain.Event) error {
						require.Equal(t, domain.EventUpserted, evt.Type)
						require.Equal(t, ownerID, evt.OwnerID)
						require.Equal(t, "octocat", evt.GithubUsername)
						return nil
					})
			},
			assert: func(t *testing.T, out *usecase.UpsertProfileOutput, err error) {
				require.NoError(t, err)
				require.Equal(t, "Developer", out.Profile.Status)
			},
		},
		{
			name:   "Should still succeed when publishing fails",
			fields: domain.Fields{Status: "Developer", Skills: "go"},
			arrange: func(repo *mocks.MockProfileRepository, pub *mocks.MockEventPublisher) {
				repo.EXPECT().Upsert(gomock.Any(), ownerID, gomock.Any()).
					Return(&domain.Profile{OwnerID: ownerID, Status: "Developer"}, nil)
				pub.EXPECT().PublishProfileEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			assert: func(t *testing.T, out *usecase.UpsertProfileOutput, err error) {
				require.NoError(t, err)
				require.NotNil(t, out.Profile)
			},
		},
		{
			name:   "Should not publish when the store fails",
			fields: domain.Fields{Status: "Developer", Skills: "go"},
			arrange: func(repo *mocks.MockProfileRepository, _ *mocks.MockEventPublisher) {
				repo.EXPECT().Upsert(gomock.Any(), ownerID, gomock.Any()).
					Return(nil, apperror.NewInternal("db", errors.New("conn refused")))
			},
			assert: func(t *testing.T, out *usecase.UpsertProfileOutput, err error) {
				require.Error(t, err)
				require.Nil(t, out)
				require.ErrorIs(t, err, apperror.ErrInternal)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockProfileRepository(ctrl)
			pub := mocks.NewMockEventPublisher(ctrl)
			tt.arrange(repo, pub)

			uc := usecase.NewProfileUseCase(repo, pub, logger.NewNopLogger())
			out, err := uc.ExecuteUpsertProfile(context.Background(), usecase.UpsertProfileInput{OwnerID: ownerID, Fields: tt.fields})
			tt.assert(t, out, err)
		})
	}
}

func TestGetProfileByToken(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Should treat a malformed id as not found without touching the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		uc := usecase.NewProfileUseCase(repo, mocks.NewMockEventPublisher(ctrl), logger.NewNopLogger())

		_, err := uc.ExecuteGetProfileByToken(context.Background(), usecase.GetProfileByTokenInput{OwnerToken: "not-an-id"})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Should look up a well formed id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(&domain.Profile{OwnerID: ownerID}, nil)
		uc := usecase.NewProfileUseCase(repo, mocks.NewMockEventPublisher(ctrl), logger.NewNopLogger())

		out, err := uc.ExecuteGetProfileByToken(context.Background(), usecase.GetProfileByTokenInput{OwnerToken: ownerID.String()})
		require.NoError(t, err)
		assert.Equal(t, ownerID, out.Profile.OwnerID)
	})

	t.Run("Should pass through not found for an unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(nil, apperror.NewNotFound("profile", ownerID.String()))
		uc := usecase.NewProfileUseCase(repo, mocks.NewMockEventPublisher(ctrl), logger.NewNopLogger())

		_, err := uc.ExecuteGetProfileByToken(context.Background(), usecase.GetProfileByTokenInput{OwnerToken: ownerID.String()})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestListProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProfileRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Profile{{Status: "a"}, {Status: "b"}}, nil)

	uc := usecase.NewProfileUseCase(repo, mocks.NewMockEventPublisher(ctrl), logger.NewNopLogger())
	out, err := uc.ExecuteListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Profiles, 2)
}

func TestEntryUseCase(t *testing.T) {
	ownerID := uuid.New()
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should prepend a new experience and save the aggregate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		existing := &domain.Profile{OwnerID: ownerID}
		existing.AddExperience(domain.Experience{Title: "Old", Company: "A", From: from})

		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(existing, nil)
		repo.EXPECT().Save(gomock.Any(), existing).Return(nil)

		uc := usecase.NewEntryUseCase(repo, logger.NewNopLogger())
		out, err := uc.ExecuteAddExperience(context.Background(), usecase.AddExperienceInput{
			OwnerID:    ownerID,
			Experience: domain.Experience{Title: "New", Company: "B", From: from, To: &to, Current: true},
		})
		require.NoError(t, err)
		require.Len(t, out.Profile.Experience, 2)
		assert.Equal(t, "New", out.Profile.Experience[0].Title)
		assert.Nil(t, out.Profile.Experience[0].To)
		assert.NotEqual(t, out.Profile.Experience[0].ID, out.Profile.Experience[1].ID)
	})

	t.Run("Should fail without saving when there is no profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(nil, apperror.NewNotFound("profile", ownerID.String()))

		uc := usecase.NewEntryUseCase(repo, logger.NewNopLogger())
		_, err := uc.ExecuteAddEducation(context.Background(), usecase.AddEducationInput{
			OwnerID:   ownerID,
			Education: domain.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from},
		})
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Should remove the matching education entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		existing := &domain.Profile{OwnerID: ownerID}
		keep := existing.AddEducation(domain.Education{School: "Keep", Degree: "BSc", FieldOfStudy: "CS", From: from})
		drop := existing.AddEducation(domain.Education{School: "Drop", Degree: "MSc", FieldOfStudy: "CS", From: from})

		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(existing, nil)
		repo.EXPECT().Save(gomock.Any(), existing).Return(nil)

		uc := usecase.NewEntryUseCase(repo, logger.NewNopLogger())
		out, err := uc.ExecuteRemoveEducation(context.Background(), usecase.RemoveEntryInput{OwnerID: ownerID, EntryID: drop.ID.String()})
		require.NoError(t, err)
		require.Len(t, out.Profile.Education, 1)
		assert.Equal(t, keep.ID, out.Profile.Education[0].ID)
	})

	t.Run("Should succeed unchanged for an unknown experience id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		existing := &domain.Profile{OwnerID: ownerID}
		existing.AddExperience(domain.Experience{Title: "Only", Company: "A", From: from})

		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(existing, nil)
		repo.EXPECT().Save(gomock.Any(), existing).Return(nil)

		uc := usecase.NewEntryUseCase(repo, logger.NewNopLogger())
		out, err := uc.ExecuteRemoveExperience(context.Background(), usecase.RemoveEntryInput{OwnerID: ownerID, EntryID: uuid.NewString()})
		require.NoError(t, err)
		require.Len(t, out.Profile.Experience, 1)
	})

	t.Run("Should surface a failed save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().FindByOwner(gomock.Any(), ownerID).Return(&domain.Profile{OwnerID: ownerID}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(apperror.NewInternal("db", errors.New("boom")))

		uc := usecase.NewEntryUseCase(repo, logger.NewNopLogger())
		_, err := uc.ExecuteAddExperience(context.Background(), usecase.AddExperienceInput{
			OwnerID:    ownerID,
			Experience: domain.Experience{Title: "X", Company: "Y", From: from},
		})
		require.ErrorIs(t, err, apperror.ErrInternal)
	})
}

func TestDeleteProfile(t *testing.T) {
	ownerID := uuid.New()

	type deps struct {
		posts    *mocks.MockPostRepository
		profiles *mocks.MockProfileRepository
		users    *mocks.MockUserRepository
		pub      *mocks.MockEventPublisher
	}

	tests := []struct {
		name    string
		arrange func(d deps)
		assert  func(t *testing.T, out *usecase.DeleteProfileOutput, err error)
	}{
		{
			name: "Should delete posts then profile then user",
			arrange: func(d deps) {
				gomock.InOrder(
					d.posts.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(int64(3), nil),
					d.profiles.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(&domain.Profile{OwnerID: ownerID, GithubUsername: "octocat"}, nil),
					d.users.EXPECT().Delete(gomock.Any(), ownerID).Return(nil),
					d.pub.EXPECT().PublishProfileEvent(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, evt domain.Event) error {
							require.Equal(t, domain.EventDeleted, evt.Type)
							require.Equal(t, "octocat", evt.GithubUsername)
							return nil
						}),
				)
			},
			assert: func(t *testing.T, out *usecase.DeleteProfileOutput, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(3), out.PostsDeleted)
				assert.True(t, out.ProfileDeleted)
			},
		},
		{
			name: "Should succeed for an account with no profile and no posts",
			arrange: func(d deps) {
				d.posts.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(int64(0), nil)
				d.profiles.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(nil, nil)
				d.users.EXPECT().Delete(gomock.Any(), ownerID).Return(nil)
				d.pub.EXPECT().PublishProfileEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
			assert: func(t *testing.T, out *usecase.DeleteProfileOutput, err error) {
				require.NoError(t, err)
				assert.False(t, out.ProfileDeleted)
			},
		},
		{
			name: "Should stop before the profile when posts fail",
			arrange: func(d deps) {
				d.posts.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(int64(0), apperror.NewInternal("db", errors.New("boom")))
			},
			assert: func(t *testing.T, out *usecase.DeleteProfileOutput, err error) {
				require.ErrorIs(t, err, apperror.ErrInternal)
				require.Nil(t, out)
			},
		},
		{
			name: "Should keep the user when the profile delete fails",
			arrange: func(d deps) {
				d.posts.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(int64(2), nil)
				d.profiles.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(nil, apperror.NewInternal("db", errors.New("boom")))
			},
			assert: func(t *testing.T, _ *usecase.DeleteProfileOutput, err error) {
				require.Error(t, err)
			},
		},
		{
			name: "Should not publish when the user delete fails",
			arrange: func(d deps) {
				d.posts.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(int64(0), nil)
				d.profiles.EXPECT().DeleteByOwner(gomock.Any(), ownerID).Return(&domain.Profile{OwnerID: ownerID}, nil)
				d.users.EXPECT().Delete(gomock.Any(), ownerID).Return(apperror.NewInternal("db", errors.New("boom")))
			},
			assert: func(t *testing.T, _ *usecase.DeleteProfileOutput, err error) {
				require.ErrorIs(t, err, apperror.ErrInternal)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			d := deps{
				posts:    mocks.NewMockPostRepository(ctrl),
				profiles: mocks.NewMockProfileRepository(ctrl),
				users:    mocks.NewMockUserRepository(ctrl),
				pub:      mocks.NewMockEventPublisher(ctrl),
			}
			tt.arrange(d)

			uc := usecase.NewDeleteProfileUseCase(d.posts, d.profiles, d.users, d.pub, logger.NewNopLogger())
			out, err := uc.Execute(context.Background(), usecase.DeleteProfileInput{OwnerID: ownerID})
			tt.assert(t, out, err)
		})
	}
}

func TestGithubRepos(t *testing.T) {
	t.Run("Should return the upstream records untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := mocks.NewMockRepoLookup(ctrl)
		repos := []json.RawMessage{json.RawMessage(`{"name":"hello","stargazers_count":3}`)}
		lookup.EXPECT().FetchPublicRepos(gomock.Any(), "octocat").Return(repos, nil)

		uc := usecase.NewGithubReposUseCase(lookup, logger.NewNopLogger())
		out, err := uc.Execute(context.Background(), usecase.GithubReposInput{Handle: "octocat"})
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"hello","stargazers_count":3}`, string(out.Repos[0]))
	})

	t.Run("Should return an empty list rather than nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := mocks.NewMockRepoLookup(ctrl)
		lookup.EXPECT().FetchPublicRepos(gomock.Any(), "empty").Return(nil, nil)

		uc := usecase.NewGithubReposUseCase(lookup, logger.NewNopLogger())
		out, err := uc.Execute(context.Background(), usecase.GithubReposInput{Handle: "empty"})
		require.NoError(t, err)
		require.NotNil(t, out.Repos)
		require.Empty(t, out.Repos)
	})

	t.Run("Should keep the upstream status in the error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := mocks.NewMockRepoLookup(ctrl)
		lookup.EXPECT().FetchPublicRepos(gomock.Any(), "ghost").Return(nil, apperror.NewUpstream("github", 404, nil))

		uc := usecase.NewGithubReposUseCase(lookup, logger.NewNopLogger())
		_, err := uc.Execute(context.Background(), usecase.GithubReposInput{Handle: "ghost"})
		require.ErrorIs(t, err, apperror.ErrUpstream)
	})
}

func TestProcessProfileEvent(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Should evict the cached repos of a deleted profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockRepoCache(ctrl)
		cache.EXPECT().EvictRepos(gomock.Any(), "octocat").Return(nil)

		uc := usecase.NewProcessProfileEventUseCase(cache, logger.NewNopLogger())
		err := uc.Execute(context.Background(), domain.Event{Type: domain.EventDeleted, OwnerID: ownerID, GithubUsername: "octocat"})
		require.NoError(t, err)
	})

	t.Run("Should ignore upserts and deletions without a handle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockRepoCache(ctrl)

		uc := usecase.NewProcessProfileEventUseCase(cache, logger.NewNopLogger())
		require.NoError(t, uc.Execute(context.Background(), domain.Event{Type: domain.EventUpserted, OwnerID: ownerID, GithubUsername: "octocat"}))
		require.NoError(t, uc.Execute(context.Background(), domain.Event{Type: domain.EventDeleted, OwnerID: ownerID}))
	})

	t.Run("Should report a failed eviction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockRepoCache(ctrl)
		cache.EXPECT().EvictRepos(gomock.Any(), "octocat").Return(errors.New("redis down"))

		uc := usecase.NewProcessProfileEventUseCase(cache, logger.NewNopLogger())
		err := uc.Execute(context.Background(), domain.Event{Type: domain.EventDeleted, OwnerID: ownerID, GithubUsername: "octocat"})
		require.Error(t, err)
	})
}
