// Package repo implements the data persistence layer for the batch
// distribution models, backed by GORM. This file provides the named
// monotonic counters that assign gap-free sequential batch indexes.
//
// Error semantics:
//   - NextValue on a counter that was never created returns
//     ErrCounterNotFound; callers bootstrap via CreateCounter and retry.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/averna/go-exposure-backend/internal/domain"
)

// ErrCounterNotFound is returned by NextValue when no counter row exists
// for the requested identifier.
var ErrCounterNotFound = errors.New("counter not found")

// CreateCounter inserts a counter row for "{table}.{field}" starting at
// start. The string primary key doubles as a uniqueness constraint: a
// second creation attempt for the same identifier fails with the driver's
// duplicate-key error, which callers must surface, not swallow — it is the
// guard that keeps the one-time bootstrap path safe under racing workers.
func CreateCounter(ctx context.Context, db *gorm.DB, table, field string, start int64) (*domain.Counter, error) {
	c := &domain.Counter{
		ID:    domain.CounterID(table, field),
		Value: start,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// NextValue atomically increments the counter identified by
// "{table}.{field}" and returns the new value.
//
// The increment-and-fetch is a single statement
// (UPDATE ... SET value = value + 1 ... RETURNING value), never a read
// followed by a write, so arbitrary concurrent callers across processes
// receive strictly distinct, increasing values with no duplicates and no
// gaps. No client-side locking or retry loop is needed.
//
// It returns ErrCounterNotFound when no row matches the identifier.
func NextValue(ctx context.Context, db *gorm.DB, table, field string) (int64, error) {
	var c domain.Counter
	res := db.WithContext(ctx).
		Model(&c).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "value"}}}).
		Where("id = ?", domain.CounterID(table, field)).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrCounterNotFound
	}
	return c.Value, nil
}

// CounterValue reads the current value without incrementing, for
// diagnostics. It returns ErrCounterNotFound when the row is missing.
func CounterValue(ctx context.Context, db *gorm.DB, table, field string) (int64, error) {
	var c domain.Counter
	err := db.WithContext(ctx).
		Where("id = ?", domain.CounterID(table, field)).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrCounterNotFound
	}
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}
