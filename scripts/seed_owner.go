package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/adapters/persistence"
	"github.com/khoahotran/devconnector-profile/internal/config"
	"github.com/khoahotran/devconnector-profile/internal/domain/post"
	"github.com/khoahotran/devconnector-profile/internal/domain/user"
	"github.com/khoahotran/devconnector-profile/pkg/auth"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

// Seeds one user and a few posts for local development, then prints a bearer token for
// that user. Deleting the account afterwards exercises the whole cascade.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}
	appLogger := logger.NewZapLogger(logger.Options{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed-owner"})

	name := envOr("OWNER_NAME", "Dev Owner")
	email := envOr("OWNER_EMAIL", "owner@example.com")
	avatar := envOr("OWNER_AVATAR", "")
	postCount, err := strconv.Atoi(envOr("OWNER_POSTS", "3"))
	if err != nil || postCount < 0 {
		appLogger.Fatal("OWNER_POSTS must be a non-negative number", err)
	}

	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	ctx := context.Background()

	query := `
		INSERT INTO users (id, name, email, avatar)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, avatar = EXCLUDED.avatar
		RETURNING id
	`
	var ownerID uuid.UUID
	if err := pool.QueryRow(ctx, query, uuid.New(), name, email, avatar).Scan(&ownerID); err != nil {
		appLogger.Fatal("cannot add user", err)
	}

	userRepo := persistence.NewPostgresUserRepo(pool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(pool, appLogger)

	owner, seeded, err := seedPosts(ctx, userRepo, postRepo, ownerID, postCount, time.Now().UTC())
	if err != nil {
		appLogger.Fatal("cannot seed posts", err, zap.Int("seeded", seeded))
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan, cfg.Auth.Issuer)
	token, err := jwtSvc.GenerateToken(owner.ID)
	if err != nil {
		appLogger.Fatal("cannot issue token", err)
	}

	appLogger.Info("added or updated owner",
		zap.String("owner_id", owner.ID.String()),
		zap.String("name", owner.Name),
		zap.String("email", owner.Email),
		zap.Int("posts", seeded),
	)
	fmt.Println(token)
}

// seedPosts reads the stored owner back and writes count posts authored by it, oldest
// first. It returns how many posts were written before any failure.
func seedPosts(ctx context.Context, users user.Repository, posts post.Repository, ownerID uuid.UUID, count int, now time.Time) (*user.User, int, error) {
	owner, err := users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("read back owner: %w", err)
	}

	for i := 0; i < count; i++ {
		p := &post.Post{
			ID:        uuid.New(),
			OwnerID:   owner.ID,
			Text:      fmt.Sprintf("Seed post %d of %d from %s", i+1, count, owner.Name),
			Name:      owner.Name,
			Avatar:    owner.Avatar,
			CreatedAt: now.Add(time.Duration(i-count) * time.Minute),
		}
		if err := posts.Save(ctx, p); err != nil {
			return owner, i, fmt.Errorf("save post %d: %w", i+1, err)
		}
	}
	return owner, count, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
