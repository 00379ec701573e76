package showcase

import (
	"sort"

	"runoot/models/eventrequest"
)

// Tier is the display label assigned to a showcased quote
type Tier string

const (
	TierBest     Tier = "Best option"
	TierBudget   Tier = "Budget"
	TierBalanced Tier = "Balanced"
	TierPremium  Tier = "Premium"
)

// Entry pairs a quote with its display tier
type Entry struct {
	Quote eventrequest.Quote `json:"quote"`
	Tier  Tier               `json:"tier"`
}

// maxShowcase caps how many quotes are surfaced prominently
const maxShowcase = 3

// Select picks up to three quotes to surface for a request. Agency-marked
// recommended quotes take over the candidate pool when any exist; the pool is
// sorted ascending by total price and tier labels are assigned over the
// selected subset only.
func Select(quotes []eventrequest.Quote) []Entry {
	if len(quotes) == 0 {
		return nil
	}

	pool := make([]eventrequest.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.IsRecommended {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, quotes...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].TotalPrice < pool[j].TotalPrice
	})

	if len(pool) > maxShowcase {
		pool = pool[:maxShowcase]
	}

	entries := make([]Entry, len(pool))
	for i, q := range pool {
		entries[i] = Entry{Quote: q, Tier: tierFor(i, len(pool))}
	}
	return entries
}

func tierFor(idx, total int) Tier {
	if total == 1 {
		return TierBest
	}
	switch idx {
	case 0:
		return TierBudget
	case total - 1:
		return TierPremium
	default:
		return TierBalanced
	}
}
