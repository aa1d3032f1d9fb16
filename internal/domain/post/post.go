package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=post.go -destination=../../mocks/post_repository.go -package=mocks -mock_names=Repository=MockPostRepository

type Like struct {
	UserID uuid.UUID `json:"user_id"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrEmptyPostText = errors.New("post text is required")

func (p *Post) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return ErrEmptyPostText
	}
	return nil
}

// Repository is the slice of post storage this service needs. Save backs the local seed
// script; DeleteByOwner is the first step of account deletion.
type Repository interface {
	Save(ctx context.Context, post *Post) error
	// DeleteByOwner removes every post authored by ownerID and returns how many went.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
