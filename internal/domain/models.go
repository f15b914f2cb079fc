// Package domain defines the persistence models for TEK batch distribution:
// temporary exposure keys, the sequentially indexed batch files served to
// clients, and the named counters that assign their indexes. These types are
// mapped with GORM and form the core data layer shared by the
// exposure-notification services.
package domain

import (
	"fmt"
	"time"
)

// tekInterval is the granularity of the Exposure Notification time units:
// rolling start numbers and rolling periods count 10-minute intervals since
// the Unix epoch.
const tekInterval = 10 * time.Minute

// TransmissionRiskLevel is the ordinal risk score attached to a TEK, as
// defined by the Apple/Google Exposure Notification framework.
type TransmissionRiskLevel int

// Transmission risk levels, in framework order.
const (
	RiskUnusedCustom TransmissionRiskLevel = iota
	RiskConfirmedTestLow
	RiskConfirmedTestStandard
	RiskConfirmedTestHigh
	RiskConfirmedClinicalDiagnosis
	RiskSelfReport
	RiskNegativeCase
	RiskRecursiveCase
)

// TemporaryExposureKey represents one rolling key broadcast by a client.
//
// Fields:
//   - KeyData: opaque 16-byte payload, transported base64-encoded.
//   - RollingStartNumber: 10-minute intervals since epoch at which the key
//     became active.
//   - RollingPeriod: 10-minute intervals the key remains valid (144 = 24h
//     for all conforming clients).
//   - TransmissionRiskLevel: ordinal risk score.
//   - CountriesOfInterest: country codes the key is relevant for, used by
//     cross-border distribution only.
//
// Keys are embedded in batch files; they are never stored as standalone rows.
type TemporaryExposureKey struct {
	KeyData               string                `json:"key_data"`
	RollingStartNumber    int64                 `json:"rolling_start_number"`
	RollingPeriod         int64                 `json:"rolling_period"`
	TransmissionRiskLevel TransmissionRiskLevel `json:"transmission_risk_level"`
	CountriesOfInterest   []string              `json:"countries_of_interest,omitempty"`
}

// CreatedAt returns the instant the key became active. The rolling start
// number is a timestamp divided by 10 minutes; multiplying it back gives the
// activation time.
func (k TemporaryExposureKey) CreatedAt() time.Time {
	return time.Unix(0, 0).UTC().Add(time.Duration(k.RollingStartNumber) * tekInterval)
}

// ExpiresAt returns the instant the key stops being used by the client to
// generate rolling proximity identifiers.
func (k TemporaryExposureKey) ExpiresAt() time.Time {
	return k.CreatedAt().Add(time.Duration(k.RollingPeriod) * tekInterval)
}

// BatchFile is an immutable, sequentially numbered container of TEKs
// produced once per distribution cycle and served to clients by index.
//
// Fields:
//   - Index: positive, globally unique sequence number assigned from the
//     batch counter. The unique index makes any counter anomaly surface as
//     an insert rejection instead of a silent overwrite.
//   - Keys: the ordered TEK list, serialized as JSON.
//   - PeriodStart / PeriodEnd: the half-open time window the batch covers;
//     PeriodStart is indexed for the trailing-day-window queries.
//   - SubBatchIndex / SubBatchCount: position within the set of batches
//     covering the same period, for size-limited chunking.
//   - ClientContent: the pre-rendered binary export served to clients,
//     produced upstream and stored opaquely.
//   - CreatedAt: insertion timestamp, the cutoff key for retention sweeps.
//
// Rows are created exactly once, never updated, and deleted only by
// age-based retention. There is deliberately no soft-deletion marker: a
// soft-deleted row would still occupy its unique index slot.
type BatchFile struct {
	ID            uint                   `json:"-"            gorm:"primaryKey"`
	Index         int64                  `json:"index"        gorm:"column:idx;not null;uniqueIndex:ux_batch_idx"`
	Keys          []TemporaryExposureKey `json:"keys"         gorm:"serializer:json"`
	PeriodStart   time.Time              `json:"period_start" gorm:"not null;index:idx_batch_period_start"`
	PeriodEnd     time.Time              `json:"period_end"   gorm:"not null"`
	SubBatchIndex int                    `json:"sub_batch_index"`
	SubBatchCount int                    `json:"sub_batch_count"`
	ClientContent []byte                 `json:"-"            gorm:"type:blob"`
	CreatedAt     time.Time              `json:"created_at"`
}

// TableName returns the database table name for BatchFile.
func (BatchFile) TableName() string { return "batch_files" }

// BatchFileEU is the origin-partitioned batch variant used for cross-border
// distribution: every query is additionally scoped by the origin country,
// and the index is unique per origin rather than globally.
//
// BatchTag carries the federation gateway tag the batch was exchanged
// under, when one exists.
type BatchFileEU struct {
	ID            uint                   `json:"-"            gorm:"primaryKey"`
	Index         int64                  `json:"index"        gorm:"column:idx;not null;uniqueIndex:ux_batch_eu_origin_idx,priority:2"`
	Origin        string                 `json:"origin"       gorm:"type:varchar(2);not null;uniqueIndex:ux_batch_eu_origin_idx,priority:1;index:idx_batch_eu_origin_period,priority:1"`
	Keys          []TemporaryExposureKey `json:"keys"         gorm:"serializer:json"`
	PeriodStart   time.Time              `json:"period_start" gorm:"not null;index:idx_batch_eu_origin_period,priority:2"`
	PeriodEnd     time.Time              `json:"period_end"   gorm:"not null"`
	SubBatchIndex int                    `json:"sub_batch_index"`
	SubBatchCount int                    `json:"sub_batch_count"`
	BatchTag      string                 `json:"batch_tag,omitempty" gorm:"type:varchar(64)"`
	ClientContent []byte                 `json:"-"            gorm:"type:blob"`
	CreatedAt     time.Time              `json:"created_at"`
}

// TableName returns the database table name for BatchFileEU.
func (BatchFileEU) TableName() string { return "batch_files_eu" }

// Counter is a durable named integer used to assign gap-free sequence
// numbers. The primary key is conventionally "{table}.{field}", so one row
// exists per indexed collection (and per origin, for partitioned stores).
//
// Increments must go through the repo's atomic increment-and-fetch; two
// concurrent callers never observe the same value.
type Counter struct {
	ID    string `json:"id"    gorm:"type:varchar(64);primaryKey"`
	Value int64  `json:"value" gorm:"not null"`
}

// TableName returns the database table name for Counter.
func (Counter) TableName() string { return "counters" }

// CounterID builds the conventional "{table}.{field}" counter identifier.
func CounterID(table, field string) string {
	return fmt.Sprintf("%s.%s", table, field)
}

// Models returns every persisted model, for use with AutoMigrate.
func Models() []any {
	return []any{
		&BatchFile{},
		&BatchFileEU{},
		&Counter{},
	}
}
