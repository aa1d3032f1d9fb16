package service

import (
	"context"

	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
)

//go:generate mockgen -source=events.go -destination=../../mocks/event_publisher.go -package=mocks

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt profile.Event) error
}
