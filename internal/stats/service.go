package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/minetally/minetally/internal/describe"
	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/logger"
	"github.com/minetally/minetally/internal/metrics"
	"github.com/minetally/minetally/internal/playerdata"
	"github.com/minetally/minetally/internal/repository"
	"github.com/minetally/minetally/internal/utils"
)

// Service defines the interface for player statistics operations
type Service interface {
	// GetPlayerInfo returns the player's statistics, reconciling the fresh
	// database read with the cached copy when one exists.
	GetPlayerInfo(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error)

	// RecordRow appends a new observation for the player and persists it.
	RecordRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error

	// RemoveRow removes the first stored row equal to the given row and
	// persists the change.
	RemoveRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error

	// StatRows returns the rows stored for one stat of the player.
	StatRows(ctx context.Context, playerID uuid.UUID, stat domain.Stat) ([]domain.Row, error)

	// StatTotal returns the sum of the value field for one stat, filtered
	// by the given predicates and rounded to decimals places (NoRounding
	// disables rounding).
	StatTotal(ctx context.Context, playerID uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error)

	// DescribePlayer renders one human-readable total line per recorded stat.
	DescribePlayer(ctx context.Context, playerID uuid.UUID) ([]string, error)

	// DeletePlayer removes every stored row for the player and drops the
	// cached store.
	DeletePlayer(ctx context.Context, playerID uuid.UUID) error

	// FlushPlayer writes the cached store for the player back to the
	// database. A player with no cached store is a no-op.
	FlushPlayer(ctx context.Context, playerID uuid.UUID) error

	// FlushAll flushes every cached player store.
	FlushAll(ctx context.Context) error
}

// service implements the Service interface.
//
// Cached stores are immutable: once a *playerdata.PlayerInfo has been handed
// to the cache it is never mutated again, only replaced by a clone. Handlers
// holding a store returned earlier keep reading a consistent snapshot while
// writes swap in fresh ones. mu serializes the read-clone-replace cycles so
// concurrent writes cannot drop each other's cache update.
type service struct {
	repo      repository.Stats
	cache     *playerCache
	formatter *describe.Formatter

	mu sync.Mutex
}

// NewService creates a new stats service
func NewService(repo repository.Stats, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:      repo,
		cache:     newPlayerCache(cacheSize, cacheTTL),
		formatter: describe.NewFormatter(language.English),
	}
}

// GetPlayerInfo loads the player's rows from the database and, when a cached
// store exists, reconciles the two so rows recorded since the last flush and
// rows written by other servers both survive.
func (s *service) GetPlayerInfo(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error) {
	log := logger.FromContext(ctx)

	fresh, err := s.repo.LoadPlayerInfo(ctx, playerID)
	if err != nil {
		log.Error(LogMsgFailedToLoadPlayer, "error", err, "player_id", playerID)
		return nil, fmt.Errorf(ErrMsgLoadPlayerFailed, err)
	}
	metrics.RowsLoadedTotal.Add(float64(fresh.TotalRowCount()))

	s.mu.Lock()
	cached, ok := s.cache.Get(playerID)
	if !ok {
		s.cache.Set(playerID, fresh)
		s.mu.Unlock()
		log.Debug(LogMsgPlayerInfoLoaded, "player_id", playerID, "rows", fresh.TotalRowCount())
		return fresh, nil
	}

	merged, err := cached.ResolveConflicts(fresh)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf(ErrMsgReconcileFailed, err)
	}
	conflicts := cached.TotalRowCount() + fresh.TotalRowCount() - merged.TotalRowCount()
	s.cache.Set(playerID, merged)
	s.mu.Unlock()

	metrics.ReconciliationsTotal.Inc()
	if conflicts > 0 {
		metrics.ConflictsResolvedTotal.Add(float64(conflicts))
	}

	log.Debug(LogMsgPlayerInfoMerged, "player_id", playerID, "rows", merged.TotalRowCount())
	return merged, nil
}

// RecordRow validates and persists a new observation, keeping the cached
// store in sync so the next read does not need a reload. The cached store is
// replaced by an extended clone, never mutated in place.
func (s *service) RecordRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error {
	log := logger.FromContext(ctx)

	if !stat.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
	}
	if row == nil {
		return domain.ErrRowNotSet
	}

	if err := s.repo.AddRow(ctx, playerID, stat, row); err != nil {
		log.Error(LogMsgFailedToRecordRow, "error", err, "player_id", playerID, "stat", stat)
		return fmt.Errorf(ErrMsgSaveRowFailed, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache.Get(playerID); ok {
		updated := cached.Clone()
		if err := updated.AddRow(stat, row); err != nil {
			s.mu.Unlock()
			return err
		}
		s.cache.Set(playerID, updated)
	}
	s.mu.Unlock()

	log.Debug(LogMsgRowRecorded, "player_id", playerID, "stat", stat, "value", row.Value())
	return nil
}

// RemoveRow removes the first stored row equal to the given row and writes
// the resulting store back.
func (s *service) RemoveRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error {
	log := logger.FromContext(ctx)

	if !stat.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
	}
	if row == nil {
		return domain.ErrRowNotSet
	}

	info, err := s.GetPlayerInfo(ctx, playerID)
	if err != nil {
		return err
	}

	// info may be the cached store itself; mutate a clone.
	updated := info.Clone()
	if err := updated.RemoveRow(stat, row); err != nil {
		return err
	}

	if err := s.repo.SavePlayerInfo(ctx, updated); err != nil {
		return fmt.Errorf(ErrMsgSavePlayerFailed, err)
	}

	s.mu.Lock()
	s.cache.Set(playerID, updated)
	s.mu.Unlock()

	log.Debug(LogMsgRowRemoved, "player_id", playerID, "stat", stat)
	return nil
}

// StatRows returns the rows stored for one stat of the player.
func (s *service) StatRows(ctx context.Context, playerID uuid.UUID, stat domain.Stat) ([]domain.Row, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
	}

	info, err := s.GetPlayerInfo(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return info.Rows(stat), nil
}

// StatTotal returns the filtered, optionally rounded sum of the value field
// for one stat.
func (s *service) StatTotal(ctx context.Context, playerID uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error) {
	if !stat.Valid() {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
	}

	info, err := s.GetPlayerInfo(ctx, playerID)
	if err != nil {
		return 0, err
	}

	total := info.TotalValueWhere(stat, preds...)
	if decimals >= 0 {
		total = utils.RoundTo(total, decimals)
	}
	return total, nil
}

// DescribePlayer renders one total line per recorded stat.
func (s *service) DescribePlayer(ctx context.Context, playerID uuid.UUID) ([]string, error) {
	info, err := s.GetPlayerInfo(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.formatter.PlayerSummary(info), nil
}

// DeletePlayer removes every stored row for the player. The cached store is
// dropped so a later read does not resurrect the deleted rows.
func (s *service) DeletePlayer(ctx context.Context, playerID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.repo.DeletePlayer(ctx, playerID); err != nil {
		log.Error(LogMsgFailedToDeletePlayer, "error", err, "player_id", playerID)
		return fmt.Errorf(ErrMsgDeletePlayerFailed, playerID, err)
	}

	s.mu.Lock()
	s.cache.Invalidate(playerID)
	s.mu.Unlock()

	log.Info(LogMsgPlayerDeleted, "player_id", playerID)
	return nil
}

// FlushPlayer writes the cached store for the player back to the database.
func (s *service) FlushPlayer(ctx context.Context, playerID uuid.UUID) error {
	log := logger.FromContext(ctx)

	cached, ok := s.cache.Get(playerID)
	if !ok {
		return nil
	}

	if err := s.repo.SavePlayerInfo(ctx, cached); err != nil {
		log.Error(LogMsgFailedToFlushPlayer, "error", err, "player_id", playerID)
		return fmt.Errorf(ErrMsgFlushPlayerFailed, playerID, err)
	}

	for stat, rows := range cached.RowsByStat() {
		metrics.RowsFlushedTotal.WithLabelValues(string(stat)).Add(float64(len(rows)))
	}

	log.Debug(LogMsgPlayerFlushed, "player_id", playerID, "rows", cached.TotalRowCount())
	return nil
}

// FlushAll flushes every cached player store, collecting per-player errors.
func (s *service) FlushAll(ctx context.Context) error {
	var errs []error
	for _, playerID := range s.cache.PlayerIDs() {
		if err := s.FlushPlayer(ctx, playerID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
