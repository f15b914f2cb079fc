// Package services – BatchEUService
//
// This file implements the origin-partitioned batch lifecycle used for
// cross-border distribution. Every operation is additionally scoped by the
// origin country; each origin has its own counter row and its own gap-free
// index sequence.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/averna/go-exposure-backend/internal/domain"
	"github.com/averna/go-exposure-backend/internal/monitoring"
	"github.com/averna/go-exposure-backend/internal/repo"
)

const batchEUTable = "batch_files_eu"

// euIndexField namespaces the counter per origin: e.g. "idx.DK" yields the
// counter row "batch_files_eu.idx.DK".
func euIndexField(origin string) string {
	return fmt.Sprintf("%s.%s", indexField, origin)
}

// BatchEUService implements the use-cases around origin-partitioned
// batches. Same shape as BatchService, with every operation scoped by the
// origin country.
type BatchEUService struct {
	// DB is the database handle used for all batch operations.
	DB *gorm.DB

	// Now supplies "today" for the trailing-window queries.
	// Defaults to time.Now.
	Now func() time.Time
}

// Create assigns the next sequential index within origin and persists a
// new immutable batch record tagged with a fresh batch tag. Index
// uniqueness per origin is enforced by the store; a rejection is returned
// as ErrDuplicateIndex, to be retried with a fresh index, never
// suppressed. The per-origin counter is seeded from the origin's highest
// existing index on first use.
func (s *BatchEUService) Create(ctx context.Context, origin string, in CreateBatchInput) (*domain.BatchFileEU, error) {
	index, err := s.nextIndex(ctx, origin)
	if err != nil {
		return nil, err
	}

	b := &domain.BatchFileEU{
		Index:         index,
		Origin:        origin,
		Keys:          in.Keys,
		PeriodStart:   in.PeriodStart,
		PeriodEnd:     in.PeriodEnd,
		SubBatchIndex: in.SubBatchIndex,
		SubBatchCount: in.SubBatchCount,
		BatchTag:      fmt.Sprintf("%s-%s", origin, uuid.NewString()),
		ClientContent: in.ClientContent,
	}
	if err := repo.InsertBatchEU(ctx, s.DB, b); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: %s/%d", ErrDuplicateIndex, origin, index)
		}
		return nil, err
	}

	monitoring.BatchesCreated.WithLabelValues("eu").Inc()
	log.Info().
		Str("origin", b.Origin).
		Int64("index", b.Index).
		Str("batch_tag", b.BatchTag).
		Int("keys", len(b.Keys)).
		Msg("eu batch created")
	return b, nil
}

// FromIndex returns the origin's batch at the given index, or
// ErrBatchNotFound.
func (s *BatchEUService) FromIndex(ctx context.Context, origin string, index int64) (*domain.BatchFileEU, error) {
	b, err := repo.BatchEUFromIndex(ctx, s.DB, origin, index)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBatchNotFound
	}
	return b, err
}

// LatestInfo returns the period end and index of the origin's most recent
// batch. ok=false means the origin has no batches, which is not an error.
func (s *BatchEUService) LatestInfo(ctx context.Context, origin string) (periodEnd time.Time, index int64, ok bool, err error) {
	return repo.LatestBatchEUInfo(ctx, s.DB, origin)
}

// OldestAndNewestIndexes returns the origin's lowest and highest batch
// index within the trailing day window, or ErrNoBatches.
func (s *BatchEUService) OldestAndNewestIndexes(ctx context.Context, origin string, days int) (oldest, newest int64, err error) {
	oldest, newest, err = repo.OldestAndNewestBatchEUIndexes(ctx, s.DB, origin, days, s.Now)
	if errors.Is(err, repo.ErrNoBatches) {
		return 0, 0, ErrNoBatches
	}
	return oldest, newest, err
}

// PruneOlderThan deletes every batch, across all origins, created at or
// before cutoff and returns the number of deleted rows.
func (s *BatchEUService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := repo.DeleteBatchesEUOlderThan(ctx, s.DB, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("eu batch retention sweep")
	return deleted, nil
}

// nextIndex increments the origin's counter, seeding it from the origin's
// rows on first use.
func (s *BatchEUService) nextIndex(ctx context.Context, origin string) (int64, error) {
	field := euIndexField(origin)
	v, err := repo.NextValue(ctx, s.DB, batchEUTable, field)
	if !errors.Is(err, repo.ErrCounterNotFound) {
		if err == nil {
			monitoring.CounterIncrements.WithLabelValues(domain.CounterID(batchEUTable, field)).Inc()
		}
		return v, err
	}

	max, err := repo.MaxBatchEUIndex(ctx, s.DB, origin)
	if err != nil {
		return 0, err
	}
	if _, err := repo.CreateCounter(ctx, s.DB, batchEUTable, field, max); err != nil {
		return 0, fmt.Errorf("seeding eu batch counter for %s: %w", origin, err)
	}
	log.Info().Int64("start", max).Str("counter", domain.CounterID(batchEUTable, field)).Msg("seeded eu batch counter")
	return repo.NextValue(ctx, s.DB, batchEUTable, field)
}
