// Package cursor hands out page offsets from the shared, durable cursor record.
//
// Every call to Allocate returns the current offset and advances the stored
// value by PageSize. Offsets are positional: they index into the natural order
// of the source collection, not into any key.
package cursor

import (
	"context"
	"errors"
	"fmt"
)

// PageSize is both the window length served per read and the cursor step.
const PageSize int64 = 20

var ErrNotFound = errors.New("cursor record not found")

// Strategy selects how the read-modify-write on the cursor is performed.
type Strategy string

const (
	// StrategyAtomic advances with a single find-and-modify; concurrent readers never share an offset.
	StrategyAtomic Strategy = "atomic"
	// StrategyLegacy reads, then writes current+PageSize unconditionally (last write wins).
	// Concurrent readers can receive the same offset and overlapping pages.
	StrategyLegacy Strategy = "legacy"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAtomic:
		return StrategyAtomic, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	}
	return "", fmt.Errorf("unknown cursor strategy %q", s)
}

// Allocator is the contract the item service depends on.
type Allocator interface {
	// Allocate returns the pre-advance offset and moves the cursor forward by PageSize.
	Allocate(ctx context.Context) (int64, error)
	// Peek returns the current offset without moving it.
	Peek(ctx context.Context) (int64, error)
}

// Seeder creates or overwrites the cursor record. The service never does this
// itself; it is used by the seedcursor tool.
type Seeder interface {
	// Seed stores value. Without overwrite an existing record is left untouched
	// and created reports false.
	Seed(ctx context.Context, value int64, overwrite bool) (created bool, err error)
}
