// Package repository declares the persistence interfaces consumed by the
// service layer. Implementations live in internal/database/postgres.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/playerdata"
)

// Stats defines the interface for player statistics persistence.
type Stats interface {
	// LoadPlayerInfo reads every stored row for the player into a fresh
	// store. A player with no rows yields an empty store, not an error.
	LoadPlayerInfo(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error)

	// SavePlayerInfo replaces the player's stored rows with the contents of
	// the given store, transactionally per player.
	SavePlayerInfo(ctx context.Context, info *playerdata.PlayerInfo) error

	// AddRow appends a single row for the player without rewriting the rest.
	AddRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error

	// DeletePlayer removes all stored rows for the player.
	DeletePlayer(ctx context.Context, playerID uuid.UUID) error
}
