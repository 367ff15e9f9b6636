package repository

import "context"

// SequenceRepository defines the interface for the daily invoice counter
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the given
	// YYMMDD date prefix, starting at 1 for a day's first invoice.
	Next(ctx context.Context, datePrefix string) (int, error)
}
