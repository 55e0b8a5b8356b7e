package schedule

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/arbys/arbitrations/internal/timecalc"
	"github.com/arbys/arbitrations/pkg/core"
)

const slotSeconds = int64(time.Hour / time.Second)

// NextUpcoming returns the arbitration of the hour slot after now's. ok is
// false when that slot has no entry.
func (ix *Index) NextUpcoming(now time.Time) (arb *core.Arbitration, ok bool, err error) {
	slot, err := timecalc.NextHour(now.UTC())
	if err != nil {
		return nil, false, err
	}
	arb, ok = ix.entries[slot.Unix()]
	return arb, ok, nil
}

// NextUpcomingByTier walks hour slots from the one containing now and
// returns the first arbitration of tier t. The walk stops past the last key,
// so it always terminates.
func (ix *Index) NextUpcomingByTier(now time.Time, t core.Tier) (arb *core.Arbitration, ok bool, err error) {
	slot, err := timecalc.HourOnly(now.UTC())
	if err != nil {
		return nil, false, err
	}

	maxKey, ok := ix.MaxKey()
	if !ok {
		return nil, false, nil
	}

	for cursor := slot.Unix(); cursor <= maxKey; cursor += slotSeconds {
		if arb, found := ix.entries[cursor]; found && arb.Tier == t {
			return arb, true, nil
		}
		if cursor > math.MaxInt64-slotSeconds {
			break
		}
	}
	return nil, false, nil
}

// Upcoming iterates, in ascending order, every entry whose key is strictly
// after now's unix second. Unlike the point queries it does not align to the
// hour. Each call to the returned sequence walks the index afresh.
func (ix *Index) Upcoming(now time.Time) iter.Seq2[int64, *core.Arbitration] {
	after := now.Unix()
	return func(yield func(int64, *core.Arbitration) bool) {
		start, found := slices.BinarySearch(ix.keys, after)
		if found {
			start++
		}
		for _, k := range ix.keys[start:] {
			if !yield(k, ix.entries[k]) {
				return
			}
		}
	}
}
