package service

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=repo_lookup.go -destination=../../mocks/repo_lookup.go -package=mocks

// RepoLookup fetches the public repositories of a GitHub handle. Items are passed through
// untouched.
type RepoLookup interface {
	FetchPublicRepos(ctx context.Context, handle string) ([]json.RawMessage, error)
}

// RepoCache forgets whatever is cached for a handle.
type RepoCache interface {
	EvictRepos(ctx context.Context, handle string) error
}
