package dedup

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the matching thresholds.
type Config struct {
	// StrongSimilarityMin is the minimum description similarity (0-100) for a
	// tier-2 strong match.
	StrongSimilarityMin float64
	// FuzzySimilarityMin is the minimum description similarity (0-100) for a
	// tier-3 fuzzy match.
	FuzzySimilarityMin float64
	// DateWindow is how far apart two dates may be for tier-3 proximity.
	DateWindow time.Duration
	// AmountTolerancePct is the tier-3 relative amount tolerance, as a
	// fraction of the larger absolute amount (0.01 = 1%).
	AmountTolerancePct decimal.Decimal
	// StoreTimeout bounds the store query per check. Zero means no timeout.
	StoreTimeout time.Duration
	// BatchConcurrency is the number of transactions checked in parallel by
	// CheckBatch. Values < 1 fall back to the default.
	BatchConcurrency int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		StrongSimilarityMin: 90,
		FuzzySimilarityMin:  70,
		DateWindow:          24 * time.Hour,
		AmountTolerancePct:  decimal.NewFromFloat(0.01),
		StoreTimeout:        0,
		BatchConcurrency:    4,
	}
}
