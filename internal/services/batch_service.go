// Package services – BatchService
//
// This file implements the globally indexed batch lifecycle: obtaining the
// next sequential index from the monotonic counter (seeding the counter
// from the table on first use), persisting immutable batch records, the
// read-side queries used by the distribution endpoints, and the age-based
// retention sweep.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/averna/go-exposure-backend/internal/domain"
	"github.com/averna/go-exposure-backend/internal/monitoring"
	"github.com/averna/go-exposure-backend/internal/repo"
)

const (
	batchTable = "batch_files"
	indexField = "idx"
)

// CreateBatchInput carries the caller-supplied fields of a new batch.
// The index is never part of the input: it is always assigned from the
// counter.
type CreateBatchInput struct {
	Keys          []domain.TemporaryExposureKey
	PeriodStart   time.Time
	PeriodEnd     time.Time
	SubBatchIndex int
	SubBatchCount int
	ClientContent []byte
}

// BatchService implements the use-cases around globally indexed batches.
// It is context-aware and holds no state beyond the database handle; the
// injectable clock keeps the day-window queries deterministic in tests.
type BatchService struct {
	// DB is the database handle used for all batch operations.
	DB *gorm.DB

	// Now supplies "today" for the trailing-window queries.
	// Defaults to time.Now.
	Now func() time.Time
}

// Create assigns the next sequential index and persists a new immutable
// batch record.
//
// The two steps (counter increment, then insert) are deliberately not
// wrapped in one transaction: the unique index on the batch index converts
// any counter anomaly into an insert rejection, returned as
// ErrDuplicateIndex. Callers must treat that as fatal for this attempt and
// retry with a freshly assigned index, never suppress it.
//
// On the very first call (no counter row yet) the counter is seeded from
// the highest index already present in the table, then the increment is
// retried once. The seeding path is not atomic, but it runs once per
// counter lifetime and the counter's primary key rejects a racing second
// seeding, whose error is surfaced to the caller.
func (s *BatchService) Create(ctx context.Context, in CreateBatchInput) (*domain.BatchFile, error) {
	index, err := s.nextIndex(ctx)
	if err != nil {
		return nil, err
	}

	b := &domain.BatchFile{
		Index:         index,
		Keys:          in.Keys,
		PeriodStart:   in.PeriodStart,
		PeriodEnd:     in.PeriodEnd,
		SubBatchIndex: in.SubBatchIndex,
		SubBatchCount: in.SubBatchCount,
		ClientContent: in.ClientContent,
	}
	if err := repo.InsertBatch(ctx, s.DB, b); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, index)
		}
		return nil, err
	}

	monitoring.BatchesCreated.WithLabelValues("global").Inc()
	log.Info().
		Int64("index", b.Index).
		Int("keys", len(b.Keys)).
		Time("period_start", b.PeriodStart).
		Time("period_end", b.PeriodEnd).
		Msg("batch created")
	return b, nil
}

// FromIndex returns the batch at the given index, or ErrBatchNotFound.
func (s *BatchService) FromIndex(ctx context.Context, index int64) (*domain.BatchFile, error) {
	b, err := repo.BatchFromIndex(ctx, s.DB, index)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBatchNotFound
	}
	return b, err
}

// LatestInfo returns the period end and index of the most recent batch.
// ok=false means the store is empty, which is not an error.
func (s *BatchService) LatestInfo(ctx context.Context) (periodEnd time.Time, index int64, ok bool, err error) {
	return repo.LatestBatchInfo(ctx, s.DB)
}

// OldestAndNewestIndexes returns the lowest and highest batch index whose
// period start falls within the trailing day window. It returns
// ErrNoBatches when the window is empty.
func (s *BatchService) OldestAndNewestIndexes(ctx context.Context, days int) (oldest, newest int64, err error) {
	oldest, newest, err = repo.OldestAndNewestBatchIndexes(ctx, s.DB, days, s.Now)
	if errors.Is(err, repo.ErrNoBatches) {
		return 0, 0, ErrNoBatches
	}
	return oldest, newest, err
}

// PruneOlderThan deletes every batch created at or before cutoff and
// returns the number of deleted rows. Surviving batches keep their
// indexes; retention never renumbers.
func (s *BatchService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := repo.DeleteBatchesOlderThan(ctx, s.DB, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("batch retention sweep")
	return deleted, nil
}

// nextIndex increments the batch counter, seeding it from the table on
// first use.
func (s *BatchService) nextIndex(ctx context.Context) (int64, error) {
	v, err := repo.NextValue(ctx, s.DB, batchTable, indexField)
	if !errors.Is(err, repo.ErrCounterNotFound) {
		if err == nil {
			monitoring.CounterIncrements.WithLabelValues(domain.CounterID(batchTable, indexField)).Inc()
		}
		return v, err
	}

	max, err := repo.MaxBatchIndex(ctx, s.DB)
	if err != nil {
		return 0, err
	}
	if _, err := repo.CreateCounter(ctx, s.DB, batchTable, indexField, max); err != nil {
		// A duplicate here means another worker seeded concurrently;
		// surface it, the request can be retried.
		return 0, fmt.Errorf("seeding batch counter: %w", err)
	}
	log.Info().Int64("start", max).Str("counter", domain.CounterID(batchTable, indexField)).Msg("seeded batch counter")
	return repo.NextValue(ctx, s.DB, batchTable, indexField)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
