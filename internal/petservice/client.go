// Package petservice talks to the authoritative pet service and provides a local simulator of it.
package petservice

import (
	"context"
	"fmt"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// Client is the remote pet service. Every mutation returns the full updated pet.
type Client interface {
	CreatePet(ctx context.Context, owner, name string) (*domain.Pet, error)
	// GetPet returns (nil, nil) when the owner has no pet
	GetPet(ctx context.Context, owner string) (*domain.Pet, error)
	GetCoins(ctx context.Context, owner string) (int64, error)
	Feed(ctx context.Context, owner string) (*domain.Pet, error)
	Play(ctx context.Context, owner string) (*domain.Pet, error)
	Work(ctx context.Context, owner string) (*domain.Pet, error)
	Sleep(ctx context.Context, owner string) (*domain.Pet, error)
	Exercise(ctx context.Context, owner string) (*domain.Pet, error)
	MintGlasses(ctx context.Context, owner string) (*domain.Pet, error)
	// UpdateCoins applies a signed delta and returns the new balance
	UpdateCoins(ctx context.Context, owner string, delta int64) (int64, error)
}

// Perform dispatches an action kind to the matching Client method
func Perform(ctx context.Context, c Client, owner string, kind domain.ActionKind) (*domain.Pet, error) {
	switch kind {
	case domain.ActionFeed:
		return c.Feed(ctx, owner)
	case domain.ActionPlay:
		return c.Play(ctx, owner)
	case domain.ActionWork:
		return c.Work(ctx, owner)
	case domain.ActionSleep:
		return c.Sleep(ctx, owner)
	case domain.ActionExercise:
		return c.Exercise(ctx, owner)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, kind)
	}
}
