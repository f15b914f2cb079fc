// Package repo implements the data persistence layer for the batch
// distribution models, backed by GORM. This file provides the globally
// indexed batch file store.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Index assignment and the counter
// bootstrap fallback live in the service layer.
//
// Error semantics:
//   - When a batch is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - OldestAndNewestIndexes returns ErrNoBatches when the trailing window
//     holds no rows; an empty window is expected during bootstrap and after
//     retention sweeps, so it is distinguished from a missing single record.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. A unique violation on InsertBatch is
//     the store rejecting a duplicate index; callers must treat it as fatal
//     for the current index and retry with a fresh one.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/averna/go-exposure-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrNoBatches is returned by the day-window queries when no batch falls
// inside the requested window.
var ErrNoBatches = errors.New("no batches found")

// indexedRow receives single-column idx scans.
type indexedRow struct {
	Idx int64
}

// InsertBatch persists a new immutable batch record. CreatedAt is stamped
// with the current UTC time unless the caller provided one (retention tests
// seed historical rows). The unique index on idx makes a duplicate index
// surface as a driver error.
func InsertBatch(ctx context.Context, db *gorm.DB, b *domain.BatchFile) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(b).Error
}

// BatchFromIndex fetches a single batch by its index. It returns
// ErrNotFound when no batch has that index.
func BatchFromIndex(ctx context.Context, db *gorm.DB, index int64) (*domain.BatchFile, error) {
	var b domain.BatchFile
	if err := db.WithContext(ctx).Where("idx = ?", index).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// LatestBatchInfo returns the period end and index of the highest-index
// batch. An empty store is reported with ok=false, not an error: "no
// batches yet" is a normal state for a fresh deployment.
//
// The lookup is a descending scan on the unique index with LIMIT 1, so the
// planner answers it from the index alone.
func LatestBatchInfo(ctx context.Context, db *gorm.DB) (periodEnd time.Time, index int64, ok bool, err error) {
	var b domain.BatchFile
	err = db.WithContext(ctx).
		Select("period_end", "idx").
		Order("idx DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, 0, false, nil
	}
	if err != nil {
		return time.Time{}, 0, false, err
	}
	return b.PeriodEnd, b.Index, true, nil
}

// DeleteBatchesOlderThan removes every batch whose creation timestamp is at
// or before cutoff and returns the number of rows deleted. Deletions never
// renumber surviving batches.
func DeleteBatchesOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Delete(&domain.BatchFile{})
	return res.RowsAffected, res.Error
}

// OldestAndNewestBatchIndexes returns the minimum and maximum index among
// batches whose period start falls strictly after UTC midnight of today
// minus days. now supplies "today" and defaults to time.Now.
//
// This is a hot path: it runs as two index-ordered LIMIT 1 scans (ascending
// and descending on idx) over the filtered window instead of min/max
// aggregations, so the sort is satisfied by the existing index. It returns
// ErrNoBatches when the window is empty.
func OldestAndNewestBatchIndexes(ctx context.Context, db *gorm.DB, days int, now func() time.Time) (oldest, newest int64, err error) {
	windowStart := dayWindowStart(days, now)

	var row indexedRow
	res := db.WithContext(ctx).
		Model(&domain.BatchFile{}).
		Where("period_start > ?", windowStart).
		Select("idx").
		Order("idx ASC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, 0, ErrNoBatches
	}
	oldest = row.Idx

	res = db.WithContext(ctx).
		Model(&domain.BatchFile{}).
		Where("period_start > ?", windowStart).
		Select("idx").
		Order("idx DESC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	return oldest, row.Idx, nil
}

// MaxBatchIndex returns the highest assigned index, or 0 when the table is
// empty. It is the bootstrap scan used to seed a missing counter.
func MaxBatchIndex(ctx context.Context, db *gorm.DB) (int64, error) {
	var row indexedRow
	res := db.WithContext(ctx).
		Model(&domain.BatchFile{}).
		Select("idx").
		Order("idx DESC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	return row.Idx, nil
}

// dayWindowStart computes UTC midnight of today minus days.
func dayWindowStart(days int, now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
}
