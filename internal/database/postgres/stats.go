package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/playerdata"
	"github.com/minetally/minetally/internal/record"
	"github.com/minetally/minetally/internal/repository"
)

// StatsRepository implements repository.Stats for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) repository.Stats {
	return &StatsRepository{db: db}
}

// LoadPlayerInfo reads every stored row for the player into a fresh store.
// Rows come back ordered by insertion so the store preserves display order.
func (r *StatsRepository) LoadPlayerInfo(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error) {
	query := `
		SELECT stat, value, fields
		FROM player_stats
		WHERE player_id = $1
		ORDER BY stat, id
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	info := playerdata.New(playerID)
	for rows.Next() {
		var (
			stat      string
			value     float64
			fieldsRaw []byte
		)
		if err := rows.Scan(&stat, &value, &fieldsRaw); err != nil {
			return nil, fmt.Errorf("failed to scan player stat row: %w", err)
		}

		fields := map[string]any{}
		if len(fieldsRaw) > 0 {
			if err := json.Unmarshal(fieldsRaw, &fields); err != nil {
				return nil, fmt.Errorf("failed to unmarshal row fields: %w", err)
			}
		}

		if err := info.AddRow(domain.Stat(stat), record.New(value, fields)); err != nil {
			return nil, fmt.Errorf("failed to add row for stat %s: %w", stat, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player stats: %w", err)
	}

	return info, nil
}

// SavePlayerInfo replaces the player's stored rows with the contents of the
// store. Delete and re-insert run in one transaction so readers never see a
// half-written player.
func (r *StatsRepository) SavePlayerInfo(ctx context.Context, info *playerdata.PlayerInfo) error {
	if info == nil {
		return domain.ErrPlayerInfoNotSet
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM player_stats WHERE player_id = $1`, info.PlayerID()); err != nil {
		return fmt.Errorf("failed to clear player stats: %w", err)
	}

	insert := `
		INSERT INTO player_stats (player_id, stat, value, fields)
		VALUES ($1, $2, $3, $4)
	`
	for stat, statRows := range info.RowsByStat() {
		for _, row := range statRows {
			fieldsJSON, err := marshalRowFields(row)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, insert, info.PlayerID(), string(stat), row.Value(), fieldsJSON); err != nil {
				return fmt.Errorf("failed to insert row for stat %s: %w", stat, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit player stats: %w", err)
	}
	return nil
}

// AddRow appends a single row for the player.
func (r *StatsRepository) AddRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error {
	if !stat.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
	}
	if row == nil {
		return domain.ErrRowNotSet
	}

	fieldsJSON, err := marshalRowFields(row)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO player_stats (player_id, stat, value, fields)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, playerID, string(stat), row.Value(), fieldsJSON); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}
	return nil
}

// DeletePlayer removes all stored rows for the player.
func (r *StatsRepository) DeletePlayer(ctx context.Context, playerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM player_stats WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("failed to delete player stats: %w", err)
	}
	return nil
}

// marshalRowFields serializes the auxiliary fields of a row as jsonb input.
// Concrete record rows expose their fields directly; anything else is stored
// with empty fields since the value column carries the aggregate.
func marshalRowFields(row domain.Row) ([]byte, error) {
	var fields map[string]any
	if rec, ok := row.(*record.Row); ok {
		fields = rec.Fields()
	} else {
		fields = map[string]any{}
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row fields: %w", err)
	}
	return fieldsJSON, nil
}
