// Package repo implements the data persistence layer for the batch
// distribution models, backed by GORM. This file provides the
// origin-partitioned batch store used for cross-border distribution: the
// same operations as the global store, each additionally scoped by the
// origin country, with index uniqueness per origin.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/averna/go-exposure-backend/internal/domain"
)

// InsertBatchEU persists a new immutable origin-scoped batch record.
// CreatedAt is stamped with the current UTC time unless already set. The
// (origin, idx) unique index makes a duplicate index within an origin
// surface as a driver error.
func InsertBatchEU(ctx context.Context, db *gorm.DB, b *domain.BatchFileEU) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(b).Error
}

// BatchEUFromIndex fetches a single batch of the given origin by its index.
// It returns ErrNotFound when no such batch exists.
func BatchEUFromIndex(ctx context.Context, db *gorm.DB, origin string, index int64) (*domain.BatchFileEU, error) {
	var b domain.BatchFileEU
	err := db.WithContext(ctx).
		Where("origin = ? AND idx = ?", origin, index).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// LatestBatchEUInfo returns the period end and index of the highest-index
// batch for the given origin, with ok=false when the origin has no batches.
func LatestBatchEUInfo(ctx context.Context, db *gorm.DB, origin string) (periodEnd time.Time, index int64, ok bool, err error) {
	var b domain.BatchFileEU
	err = db.WithContext(ctx).
		Select("period_end", "idx").
		Where("origin = ?", origin).
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

// DeleteBatchesEUOlderThan removes every origin-scoped batch (across all
// origins) whose creation timestamp is at or before cutoff and returns the
// number of rows deleted. Retention is time-based, not per origin.
func DeleteBatchesEUOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Delete(&domain.BatchFileEU{})
	return res.RowsAffected, res.Error
}

// OldestAndNewestBatchEUIndexes returns the minimum and maximum index among
// the origin's batches whose period start falls strictly after UTC midnight
// of today minus days. It returns ErrNoBatches when the window is empty for
// that origin. Same two-ordered-scans shape as the global store, against
// the (origin, period_start) and (origin, idx) indexes.
func OldestAndNewestBatchEUIndexes(ctx context.Context, db *gorm.DB, origin string, days int, now func() time.Time) (oldest, newest int64, err error) {
	windowStart := dayWindowStart(days, now)

	var row indexedRow
	res := db.WithContext(ctx).
		Model(&domain.BatchFileEU{}).
		Where("origin = ? AND period_start > ?", origin, windowStart).
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
		Model(&domain.BatchFileEU{}).
		Where("origin = ? AND period_start > ?", origin, windowStart).
		Select("idx").
		Order("idx DESC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	return oldest, row.Idx, nil
}

// MaxBatchEUIndex returns the highest assigned index for the origin, or 0
// when the origin has no batches. It is the bootstrap scan used to seed a
// missing per-origin counter.
func MaxBatchEUIndex(ctx context.Context, db *gorm.DB, origin string) (int64, error) {
	var row indexedRow
	res := db.WithContext(ctx).
		Model(&domain.BatchFileEU{}).
		Where("origin = ?", origin).
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
