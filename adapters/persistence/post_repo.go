package persistence

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/domain/post"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

type postgresPostRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPostRepo(db *pgxpool.Pool, logger logger.Logger) post.Repository {
	return &postgresPostRepo{db: db, logger: logger}
}

func (r *postgresPostRepo) Save(ctx context.Context, p *post.Post) error {
	if err := p.Validate(); err != nil {
		return apperror.NewInvalidInput(err.Error(), err)
	}

	likes := p.Likes
	if likes == nil {
		likes = []post.Like{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []post.Comment{}
	}

	likesBytes, err := json.Marshal(likes)
	if err != nil {
		return apperror.NewInternal("failed to marshal likes", err)
	}
	commentsBytes, err := json.Marshal(comments)
	if err != nil {
		return apperror.NewInternal("failed to marshal comments", err)
	}

	query, args, err := psql.Insert("posts").
		Columns("id", "owner_id", "text", "name", "avatar", "likes", "comments", "created_at").
		Values(p.ID, p.OwnerID, p.Text, p.Name, p.Avatar, likesBytes, commentsBytes, p.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build save post query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save post", err)
	}
	return nil
}

func (r *postgresPostRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query, args, err := psql.Delete("posts").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build delete posts query", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to delete posts", err, zap.String("owner_id", ownerID.String()))
		return 0, apperror.NewInternal("failed to delete posts", err)
	}
	return tag.RowsAffected(), nil
}
