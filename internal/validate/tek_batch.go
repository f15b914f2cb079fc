package validate

import (
	"fmt"

	"github.com/averna/go-exposure-backend/internal/domain"
)

const (
	// StandardRollingPeriod is the rolling period every conforming client
	// uses: 144 ten-minute intervals, one day per key.
	StandardRollingPeriod = 144

	// MaxKeysPerUpload is the largest number of TEKs a single upload may
	// carry (one key per day of the 14-day retention window).
	MaxKeysPerUpload = 14
)

// TekBatch validates a list of TEKs uploaded together against the
// Exposure Notification constraints.
//
// RollingPeriod and MaxKeys default to the domain constants via NewTekBatch;
// they are injected rather than read from configuration so tests can pin
// them.
type TekBatch struct {
	RollingPeriod int64
	MaxKeys       int
}

// NewTekBatch returns a TekBatch validator with the standard bounds.
func NewTekBatch() TekBatch {
	return TekBatch{RollingPeriod: StandardRollingPeriod, MaxKeys: MaxKeysPerUpload}
}

// Validate applies the batch invariants in order, short-circuiting on the
// first failure. The order is load-bearing: callers and tests rely on the
// reported reason.
//
//  1. An empty batch is vacuously valid.
//  2. Every key's rolling period must equal RollingPeriod, else
//     ErrNonStandardRollingPeriod.
//  3. At most MaxKeys keys, else ErrTooManyKeys (wrapped with the actual
//     count and the maximum).
//  4. The set of rolling start numbers must equal {min + RollingPeriod*i}
//     for i in [0, len(keys)), else ErrUnexpectedRollingStarts. The one
//     check covers gaps, overlaps, and out-of-sequence values. Duplicates
//     collapse under set semantics, so they are only caught indirectly when
//     the resulting set is smaller than the expected one.
func (v TekBatch) Validate(keys []domain.TemporaryExposureKey) error {
	if len(keys) == 0 {
		return nil
	}
	for _, k := range keys {
		if k.RollingPeriod != v.RollingPeriod {
			return fmt.Errorf("%w: %d instead of %d", ErrNonStandardRollingPeriod, k.RollingPeriod, v.RollingPeriod)
		}
	}
	if len(keys) > v.MaxKeys {
		return fmt.Errorf("%w: got %d, maximum allowed is %d", ErrTooManyKeys, len(keys), v.MaxKeys)
	}

	minStart := keys[0].RollingStartNumber
	for _, k := range keys[1:] {
		if k.RollingStartNumber < minStart {
			minStart = k.RollingStartNumber
		}
	}

	actual := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		actual[k.RollingStartNumber] = struct{}{}
	}
	if len(actual) != len(keys) {
		return ErrUnexpectedRollingStarts
	}
	for i := 0; i < len(keys); i++ {
		if _, ok := actual[minStart+v.RollingPeriod*int64(i)]; !ok {
			return ErrUnexpectedRollingStarts
		}
	}
	return nil
}
