package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/averna/go-exposure-backend/internal/domain"
)

func TestNextValue_MissingCounter(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	if _, err := NextValue(context.Background(), db, "batch_files", "idx"); !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("NextValue on missing counter = %v, want ErrCounterNotFound", err)
	}
}

func TestNextValue_StrictlyIncreasing(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 0); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}
	for want := int64(1); want <= 5; want++ {
		got, err := NextValue(ctx, db, "batch_files", "idx")
		if err != nil {
			t.Fatalf("NextValue #%d: %v", want, err)
		}
		if got != want {
			t.Fatalf("NextValue #%d = %d", want, got)
		}
	}
}

func TestNextValue_NonZeroStart(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 41); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}
	got, err := NextValue(ctx, db, "batch_files", "idx")
	if err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	if got != 42 {
		t.Fatalf("NextValue after start 41 = %d, want 42", got)
	}
}

func TestNextValue_ConcurrentCallersGetDistinctValues(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 0); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}

	const n = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := NextValue(ctx, db, "batch_files", "idx")
			if err != nil {
				t.Errorf("NextValue: %v", err)
				return
			}
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("got %d distinct values, want %d", len(seen), n)
	}
	// Exactly {1..n}: no duplicates, no gaps under contention.
	for v := int64(1); v <= n; v++ {
		if _, ok := seen[v]; !ok {
			t.Fatalf("value %d missing from returned set", v)
		}
	}
}

func TestNextValue_CountersAreIndependent(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 0); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}
	if _, err := CreateCounter(ctx, db, "batch_files_eu", "idx.DK", 100); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}

	if v, err := NextValue(ctx, db, "batch_files", "idx"); err != nil || v != 1 {
		t.Fatalf("global counter = %d, %v; want 1", v, err)
	}
	if v, err := NextValue(ctx, db, "batch_files_eu", "idx.DK"); err != nil || v != 101 {
		t.Fatalf("DK counter = %d, %v; want 101", v, err)
	}
}

func TestCreateCounter_DuplicateIdentifierRejected(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 0); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}
	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 7); err == nil {
		t.Fatalf("expected duplicate counter creation to fail")
	}
}

func TestCounterValue(t *testing.T) {
	db := newTestDB(t, &domain.Counter{})
	ctx := context.Background()

	if _, err := CounterValue(ctx, db, "batch_files", "idx"); !errors.Is(err, ErrCounterNotFound) {
		t.Fatalf("CounterValue on missing = %v, want ErrCounterNotFound", err)
	}
	if _, err := CreateCounter(ctx, db, "batch_files", "idx", 3); err != nil {
		t.Fatalf("CreateCounter: %v", err)
	}
	if v, err := CounterValue(ctx, db, "batch_files", "idx"); err != nil || v != 3 {
		t.Fatalf("CounterValue = %d, %v; want 3", v, err)
	}
}
