package http

import (
	"context"

	"github.com/go-notify-api/internal/domain"
	jwtinfra "github.com/go-notify-api/internal/infrastructure/jwt"
	"github.com/go-notify-api/internal/infrastructure/sns"
)

// LogStore is the engine's single shared mutable resource: the full
// notification log behind a read-all/write-all contract.
type LogStore interface {
	LoadAll(ctx context.Context) ([]domain.Notification, error)
	SaveAll(ctx context.Context, log []domain.Notification) error
}

// Archiver receives pruned notification batches before they leave the log.
type Archiver interface {
	Archive(ctx context.Context, batch []domain.Notification) (string, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	LogStore LogStore
	Entities domain.EntityLookup
	Archiver Archiver            // nil disables archival on prune
	Mirror   sns.EventMirror     // nil disables the publish mirror
	Names    domain.NameResolver // nil renders raw identities in messages
	JWT      *jwtinfra.Provider
}
