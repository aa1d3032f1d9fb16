package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func selectProfiles() sq.SelectBuilder {
	return psql.Select(
		"p.owner_id", "p.company", "p.website", "p.location", "p.bio", "p.status", "p.github_username",
		"p.skills", "p.social", "p.experience", "p.education", "p.created_at", "p.updated_at",
		"u.name", "u.avatar",
	).
		From("profiles p").
		LeftJoin("users u ON u.id = p.owner_id")
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var socialBytes, experienceBytes, educationBytes []byte
	var ownerName, ownerAvatar *string

	err := row.Scan(
		&p.OwnerID,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.Status,
		&p.GithubUsername,
		&p.Skills,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&ownerName,
		&ownerAvatar,
	)
	if err != nil {
		return nil, err
	}

	// Unmarshal JSONB
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}

	if ownerName != nil {
		p.Owner = &profile.Owner{ID: p.OwnerID, Name: *ownerName}
		if ownerAvatar != nil {
			p.Owner.Avatar = *ownerAvatar
		}
	}

	p.Normalize()
	return p, nil
}

func (r *postgresProfileRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query, args, err := selectProfiles().Where(sq.Eq{"p.owner_id": ownerID}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find profile query", err)
	}

	p, err := r.scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		r.logger.Error("Failed to query profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := selectProfiles().OrderBy("p.created_at ASC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("failed to iterate profiles", err)
	}
	return profiles, nil
}

// buildUpsert renders a single INSERT ... ON CONFLICT statement. Only the fields present
// in the patch appear in the column list and in the update set, so absent fields keep
// their stored value. Social links merge key by key through jsonb concatenation.
func buildUpsert(ownerID uuid.UUID, patch profile.Patch, now time.Time) (string, []any, error) {
	columns := []string{"owner_id"}
	values := []any{ownerID}
	sets := make([]string, 0, 8)

	add := func(column string, v any) {
		columns = append(columns, column)
		values = append(values, v)
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	addString := func(column string, v *string) {
		if v != nil {
			add(column, *v)
		}
	}
	addString("company", patch.Company)
	addString("website", patch.Website)
	addString("location", patch.Location)
	addString("bio", patch.Bio)
	addString("status", patch.Status)
	addString("github_username", patch.GithubUsername)
	if patch.Skills != nil {
		add("skills", *patch.Skills)
	}

	if !patch.Social.IsEmpty() {
		socialBytes, err := json.Marshal(socialPatchMap(patch.Social))
		if err != nil {
			return "", nil, err
		}
		columns = append(columns, "social")
		values = append(values, socialBytes)
		sets = append(sets, "social = profiles.social || EXCLUDED.social")
	}

	columns = append(columns, "created_at", "updated_at")
	values = append(values, now, now)
	sets = append(sets, "updated_at = EXCLUDED.updated_at")

	return psql.Insert("profiles").
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET " + strings.Join(sets, ", ")).
		ToSql()
}

func socialPatchMap(s profile.SocialPatch) map[string]string {
	m := make(map[string]string, 5)
	put := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	put("youtube", s.YouTube)
	put("twitter", s.Twitter)
	put("facebook", s.Facebook)
	put("linkedin", s.LinkedIn)
	put("instagram", s.Instagram)
	return m
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, ownerID uuid.UUID, patch profile.Patch) (*profile.Profile, error) {
	query, args, err := buildUpsert(ownerID, patch, time.Now().UTC())
	if err != nil {
		return nil, apperror.NewInternal("failed to build upsert query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to upsert profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}

	return r.FindByOwner(ctx, ownerID)
}

func buildSave(p *profile.Profile, now time.Time) (string, []any, error) {
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return "", nil, err
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return "", nil, err
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return "", nil, err
	}

	return psql.Update("profiles").
		Set("company", p.Company).
		Set("website", p.Website).
		Set("location", p.Location).
		Set("bio", p.Bio).
		Set("status", p.Status).
		Set("github_username", p.GithubUsername).
		Set("skills", p.Skills).
		Set("social", socialBytes).
		Set("experience", experienceBytes).
		Set("education", educationBytes).
		Set("updated_at", now).
		Where(sq.Eq{"owner_id": p.OwnerID}).
		ToSql()
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	p.Normalize()
	now := time.Now().UTC()

	query, args, err := buildSave(p, now)
	if err != nil {
		return apperror.NewInternal("failed to build save profile query", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to save profile", err, zap.String("owner_id", p.OwnerID.String()))
		return apperror.NewInternal("failed to save profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	p.UpdatedAt = now
	return nil
}

func (r *postgresProfileRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.Delete("profiles").
		Where(sq.Eq{"owner_id": ownerID}).
		Suffix("RETURNING owner_id, status, github_username").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build delete profile query", err)
	}

	p := &profile.Profile{}
	err = r.db.QueryRow(ctx, query, args...).Scan(&p.OwnerID, &p.Status, &p.GithubUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to delete profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to delete profile", err)
	}
	return p, nil
}
