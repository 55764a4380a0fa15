package model

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDrinkType is used when an entry is recorded without a drink type.
const DefaultDrinkType = "water"

// WaterEntry is a single intake record. Its content never changes once created.
type WaterEntry struct {
	ID        int64
	AmountML  int
	DrinkType string
	Timestamp time.Time
	CreatedAt time.Time
}

// NewWaterEntry creates an entry for amountML at the given time. The id is
// derived from the timestamp so entries recorded on different devices do not
// collide in practice.
func NewWaterEntry(amountML int, drinkType string, at time.Time) WaterEntry {
	if drinkType == "" {
		drinkType = DefaultDrinkType
	}
	at = at.UTC().Truncate(time.Millisecond)
	return WaterEntry{
		ID:        at.UnixNano() / int64(time.Microsecond),
		AmountML:  amountML,
		DrinkType: drinkType,
		Timestamp: at,
		CreatedAt: at,
	}
}

// Validate checks that the entry can be stored.
func (e WaterEntry) Validate() error {
	if e.ID <= 0 {
		return errors.New("water entry id must be positive")
	}
	if e.AmountML <= 0 {
		return fmt.Errorf("water entry %d: amount must be positive, got %d", e.ID, e.AmountML)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("water entry %d: timestamp is required", e.ID)
	}
	return nil
}
